// Package scene wires the pipeline ends together: image → sampler → disk
// mesh → STL on the generator side, STL → traced shadow and preview images
// on the verifier side. It owns no algorithm of its own beyond deriving
// light, plane, and camera placement from the configuration.
package scene

import (
	"image"

	"github.com/mrchaosbude/stlgen/internal/config"
	"github.com/mrchaosbude/stlgen/internal/heightfield"
	"github.com/mrchaosbude/stlgen/internal/imaging"
	"github.com/mrchaosbude/stlgen/internal/mathutil"
	"github.com/mrchaosbude/stlgen/internal/mesh"
	"github.com/mrchaosbude/stlgen/internal/stl"
	"github.com/mrchaosbude/stlgen/internal/trace"
)

// Generate runs the full generator pipeline for one image and writes the
// STL to outPath. Nothing is written when any validation fails.
func Generate(inPath, outPath string, cfg config.Gen) (*mesh.Mesh, error) {
	m, err := BuildFromImage(inPath, cfg)
	if err != nil {
		return nil, err
	}
	if err := stl.WriteFile(outPath, m); err != nil {
		return nil, err
	}
	return m, nil
}

// BuildFromImage constructs the relief disk mesh for an image without
// serializing it.
func BuildFromImage(inPath string, cfg config.Gen) (*mesh.Mesh, error) {
	field, err := imaging.LoadLuminance(inPath, cfg.Resolution)
	if err != nil {
		return nil, err
	}
	if !cfg.NoInvert {
		// Dark pixels become tall relief so they block more light.
		field = field.Invert()
	}

	interp, err := heightfield.ParseInterp(cfg.Interp)
	if err != nil {
		return nil, err
	}
	sampler, err := heightfield.NewSampler(field, cfg.OuterRadius, cfg.BaseThickness, cfg.ReliefScale, interp)
	if err != nil {
		return nil, err
	}

	return mesh.BuildDisk(mesh.DiskParams{
		OuterRadius:     cfg.OuterRadius,
		HoleRadius:      cfg.HoleRadius,
		RadialSegments:  cfg.RadialSegments,
		AngularSegments: cfg.AngularSegments,
	}, sampler)
}

// Outputs holds the two verification images.
type Outputs struct {
	Shadow *image.Gray
	Render *image.Gray
}

// Verify traces both passes over a frozen mesh. The light sits on the disk
// axis at the hole's z-height; the camera hangs at the configured offset
// with yaw (around the disk axis) and pitch (tilt) in degrees, looking
// along its local −z toward the plate.
func Verify(m *mesh.Mesh, cfg config.Verify) (Outputs, error) {
	sc, err := trace.NewScene(m)
	if err != nil {
		return Outputs{}, err
	}

	light := trace.Light{
		Pos:         mathutil.Vec3{0, 0, cfg.LightZ},
		Intensity:   cfg.Intensity,
		Attenuation: cfg.Attenuation,
	}

	shadowBuf, err := sc.Shadow(light, trace.ShadowPlane{Z: cfg.PlaneZ, Size: cfg.PlaneSize}, cfg.Resolution, cfg.Workers)
	if err != nil {
		return Outputs{}, err
	}

	cam := trace.Camera{
		Pos:    mathutil.Vec3{cfg.CameraX, cfg.CameraY, cfg.CameraZ},
		Orient: mathutil.Mat3Mul(mathutil.RotZ(mathutil.Deg2Rad(cfg.Yaw)), mathutil.RotX(mathutil.Deg2Rad(cfg.Pitch))),
		FOV:    mathutil.Deg2Rad(cfg.FOV),
	}

	ss := cfg.Supersample
	if ss < 1 {
		ss = 1
	}
	renderBuf, err := sc.Render(light, cam, cfg.Resolution*ss, cfg.Workers)
	if err != nil {
		return Outputs{}, err
	}

	render := imaging.GrayImage(renderBuf, cfg.Resolution*ss, cfg.Resolution*ss)
	if ss > 1 {
		render = imaging.Downsample(render, cfg.Resolution)
	}

	return Outputs{
		Shadow: imaging.GrayImage(shadowBuf, cfg.Resolution, cfg.Resolution),
		Render: render,
	}, nil
}

// VerifyFile reads an STL, traces it, and writes both images.
func VerifyFile(stlPath, shadowPath, renderPath string, cfg config.Verify) error {
	m, err := stl.ReadFile(stlPath)
	if err != nil {
		return err
	}
	out, err := Verify(m, cfg)
	if err != nil {
		return err
	}
	if err := imaging.WriteImage(shadowPath, out.Shadow); err != nil {
		return err
	}
	return imaging.WriteImage(renderPath, out.Render)
}
