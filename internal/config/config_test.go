package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenResolveDefaults(t *testing.T) {
	var c Gen
	c.Resolve()

	if c.OuterRadius != 50 || c.HoleRadius != 20 {
		t.Errorf("radii = %g/%g, want 50/20", c.OuterRadius, c.HoleRadius)
	}
	if c.RadialSegments != 64 || c.AngularSegments != 256 {
		t.Errorf("segments = %d/%d, want 64/256", c.RadialSegments, c.AngularSegments)
	}
	if c.BaseThickness != 1 || c.ReliefScale != 5 {
		t.Errorf("thickness = %g/%g, want 1/5", c.BaseThickness, c.ReliefScale)
	}
	if c.Resolution != 200 || c.Interp != "bilinear" {
		t.Errorf("resolution %d interp %q, want 200 bilinear", c.Resolution, c.Interp)
	}
	if c.Workers < 1 {
		t.Errorf("workers %d, want ≥ 1", c.Workers)
	}
}

func TestGenResolveKeepsExplicit(t *testing.T) {
	c := Gen{OuterRadius: 80, AngularSegments: 12, Interp: "nearest"}
	c.Resolve()
	if c.OuterRadius != 80 || c.AngularSegments != 12 || c.Interp != "nearest" {
		t.Fatalf("explicit values overwritten: %+v", c)
	}
	if c.HoleRadius != 20 {
		t.Fatalf("unset hole radius = %g, want default 20", c.HoleRadius)
	}
}

func TestVerifyResolveDefaults(t *testing.T) {
	var c Verify
	c.Resolve()

	if c.PlaneZ != 100 || c.PlaneSize != 100 || c.Resolution != 256 {
		t.Errorf("plane %g/%g res %d, want 100/100/256", c.PlaneZ, c.PlaneSize, c.Resolution)
	}
	if c.LightZ != 1 || c.Intensity != 1 || c.Attenuation != 1e-4 {
		t.Errorf("light %g/%g/%g, want 1/1/1e-4", c.LightZ, c.Intensity, c.Attenuation)
	}
	if c.CameraZ != 80 || c.FOV != 60 || c.Supersample != 2 {
		t.Errorf("camera z %g fov %g ss %d, want 80/60/2", c.CameraZ, c.FOV, c.Supersample)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{"outer_radius": 75, "angular_segments": 90, "interp": "nearest"}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	var c Gen
	if err := Load(path, &c); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.OuterRadius != 75 || c.AngularSegments != 90 || c.Interp != "nearest" {
		t.Fatalf("loaded %+v", c)
	}
	c.Resolve()
	if c.HoleRadius != 20 {
		t.Fatalf("hole radius after resolve = %g, want 20", c.HoleRadius)
	}
}

func TestLoadErrors(t *testing.T) {
	var c Gen
	if err := Load(filepath.Join(t.TempDir(), "missing.json"), &c); err == nil {
		t.Fatal("missing file accepted")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Load(bad, &c); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}
