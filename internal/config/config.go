// Package config holds the settings for both CLIs. Settings come from an
// optional JSON file plus CLI flags; flags set explicitly on the command
// line win. Resolve fills defaults for anything still unset — range
// validation stays with the packages that consume the values, so a bad
// parameter fails at construction instead of being silently clamped.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Gen configures the image → STL generator.
type Gen struct {
	OuterRadius     float64 `json:"outer_radius"`
	HoleRadius      float64 `json:"hole_radius"`
	RadialSegments  int     `json:"radial_segments"`
	AngularSegments int     `json:"angular_segments"`
	BaseThickness   float64 `json:"base_thickness"`
	ReliefScale     float64 `json:"relief_scale"`
	Resolution      int     `json:"resolution"`
	Interp          string  `json:"interp"`
	NoInvert        bool    `json:"no_invert"`
	Workers         int     `json:"workers"`
}

// Resolve fills zero-valued fields with the standard plate defaults.
func (c *Gen) Resolve() {
	if c.OuterRadius == 0 {
		c.OuterRadius = 50
	}
	if c.HoleRadius == 0 {
		c.HoleRadius = 20
	}
	if c.RadialSegments == 0 {
		c.RadialSegments = 64
	}
	if c.AngularSegments == 0 {
		c.AngularSegments = 256
	}
	if c.BaseThickness == 0 {
		c.BaseThickness = 1
	}
	if c.ReliefScale == 0 {
		c.ReliefScale = 5
	}
	if c.Resolution == 0 {
		c.Resolution = 200
	}
	if c.Interp == "" {
		c.Interp = "bilinear"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Verify configures the STL → shadow/render verifier.
type Verify struct {
	PlaneZ      float64 `json:"plane_z"`
	PlaneSize   float64 `json:"plane_size"`
	Resolution  int     `json:"resolution"`
	LightZ      float64 `json:"light_z"`
	Intensity   float64 `json:"intensity"`
	Attenuation float64 `json:"attenuation"`
	CameraX     float64 `json:"camera_x"`
	CameraY     float64 `json:"camera_y"`
	CameraZ     float64 `json:"camera_z"`
	Yaw         float64 `json:"yaw"`
	Pitch       float64 `json:"pitch"`
	FOV         float64 `json:"fov"`
	Supersample int     `json:"supersample"`
	Workers     int     `json:"workers"`
}

// Resolve fills zero-valued fields with the reference verification setup:
// plane 100 mm past the plate, light just inside the hole, camera 80 mm
// up the axis looking straight down.
func (c *Verify) Resolve() {
	if c.PlaneZ == 0 {
		c.PlaneZ = 100
	}
	if c.PlaneSize == 0 {
		c.PlaneSize = 100
	}
	if c.Resolution == 0 {
		c.Resolution = 256
	}
	if c.LightZ == 0 {
		c.LightZ = 1
	}
	if c.Intensity == 0 {
		c.Intensity = 1
	}
	if c.Attenuation == 0 {
		c.Attenuation = 1e-4
	}
	if c.CameraZ == 0 {
		c.CameraZ = 80
	}
	if c.FOV == 0 {
		c.FOV = 60
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Load reads a JSON config file into dst (a *Gen or *Verify).
// Fields absent from the file keep their zero values.
func Load(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}
