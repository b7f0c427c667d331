package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mrchaosbude/stlgen/internal/config"
	"github.com/mrchaosbude/stlgen/internal/scene"
)

func main() {
	configFile := flag.String("config", "", "Path to JSON config file")
	shadowOut := flag.String("shadow", "shadow.png", "Shadow image output path (.png or .webp)")
	renderOut := flag.String("render", "render.png", "Angled render output path (.png or .webp)")
	planeZ := flag.Float64("plane-z", 0, "Shadow plane height along the disk axis in mm (default: 100)")
	planeSize := flag.Float64("plane-size", 0, "Shadow plane side length in mm (default: 100)")
	resolution := flag.Int("resolution", 0, "Output image resolution (default: 256)")
	lightZ := flag.Float64("light-z", 0, "Light height on the disk axis in mm (default: 1, hole height)")
	intensity := flag.Float64("intensity", 0, "Light intensity (default: 1)")
	attenuation := flag.Float64("attenuation", 0, "Inverse-square falloff coefficient per mm² (default: 1e-4)")
	cameraX := flag.Float64("camera-x", 0, "Camera x offset in mm")
	cameraY := flag.Float64("camera-y", 0, "Camera y offset in mm")
	cameraZ := flag.Float64("camera-z", 0, "Camera height in mm (default: 80)")
	yaw := flag.Float64("yaw", 0, "Camera yaw around the disk axis in degrees")
	pitch := flag.Float64("pitch", 0, "Camera tilt in degrees")
	fov := flag.Float64("fov", 0, "Vertical field of view in degrees (default: 60)")
	supersample := flag.Int("supersample", 0, "Render supersampling factor (default: 2)")
	workers := flag.Int("workers", 0, "Worker goroutines (default: NumCPU)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: stlverify [flags] input.stl\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	var cfg config.Verify
	if *configFile != "" {
		if err := config.Load(*configFile, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override the config file.
	if *planeZ != 0 {
		cfg.PlaneZ = *planeZ
	}
	if *planeSize != 0 {
		cfg.PlaneSize = *planeSize
	}
	if *resolution != 0 {
		cfg.Resolution = *resolution
	}
	if *lightZ != 0 {
		cfg.LightZ = *lightZ
	}
	if *intensity != 0 {
		cfg.Intensity = *intensity
	}
	if *attenuation != 0 {
		cfg.Attenuation = *attenuation
	}
	if *cameraX != 0 {
		cfg.CameraX = *cameraX
	}
	if *cameraY != 0 {
		cfg.CameraY = *cameraY
	}
	if *cameraZ != 0 {
		cfg.CameraZ = *cameraZ
	}
	if *yaw != 0 {
		cfg.Yaw = *yaw
	}
	if *pitch != 0 {
		cfg.Pitch = *pitch
	}
	if *fov != 0 {
		cfg.FOV = *fov
	}
	if *supersample != 0 {
		cfg.Supersample = *supersample
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}
	cfg.Resolve()

	start := time.Now()
	if err := scene.VerifyFile(flag.Arg(0), *shadowOut, *renderOut, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Shadow saved to %s\n", *shadowOut)
	fmt.Printf("Render saved to %s\n", *renderOut)
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())
}
