package scene

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrchaosbude/stlgen/internal/config"
	"github.com/mrchaosbude/stlgen/internal/stl"
)

// writeUniformPNG writes a size×size image of a single gray level.
func writeUniformPNG(t *testing.T, dir, name string, size int, level uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, size, size))
	for i := range img.Pix {
		img.Pix[i] = level
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func genConfig() config.Gen {
	return config.Gen{
		OuterRadius:     60,
		HoleRadius:      20,
		RadialSegments:  8,
		AngularSegments: 48,
		BaseThickness:   1,
		ReliefScale:     5,
		Resolution:      64,
		Interp:          "bilinear",
		NoInvert:        true,
		Workers:         2,
	}
}

func TestGenerateWhiteImage(t *testing.T) {
	// A fully white 64×64 input with inversion off: luminance 1 everywhere,
	// so every top vertex sits at baseThickness + reliefScale = 6 mm.
	dir := t.TempDir()
	inPath := writeUniformPNG(t, dir, "white.png", 64, 255)
	outPath := filepath.Join(dir, "plate.stl")

	m, err := Generate(inPath, outPath, genConfig())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, v := range m.Verts {
		if v[2] > 1e-6 && math.Abs(v[2]-6) > 1e-6 {
			t.Fatalf("vertex height %g, want 0 (bottom) or 6 (top)", v[2])
		}
	}

	// The serialized plate reads back with the same shape.
	got, err := stl.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got.Tris) != len(m.Tris) {
		t.Fatalf("file holds %d triangles, mesh has %d", len(got.Tris), len(m.Tris))
	}
	maxZ := 0.0
	for _, v := range got.Verts {
		if v[2] > maxZ {
			maxZ = v[2]
		}
	}
	if math.Abs(maxZ-6) > 1e-4 {
		t.Fatalf("max height after round trip %g, want 6", maxZ)
	}
}

func TestGenerateFailsWithoutOutput(t *testing.T) {
	dir := t.TempDir()
	inPath := writeUniformPNG(t, dir, "white.png", 16, 255)
	outPath := filepath.Join(dir, "plate.stl")

	cfg := genConfig()
	cfg.HoleRadius = cfg.OuterRadius // collapsed annulus

	if _, err := Generate(inPath, outPath, cfg); err == nil {
		t.Fatal("collapsed annulus accepted")
	}
	if _, err := os.Stat(outPath); !os.IsNotExist(err) {
		t.Fatal("partial output written despite geometry error")
	}
}

func TestVerifyShadowAndRender(t *testing.T) {
	dir := t.TempDir()
	inPath := writeUniformPNG(t, dir, "white.png", 64, 255)

	m, err := BuildFromImage(inPath, genConfig())
	if err != nil {
		t.Fatal(err)
	}

	// Light far up the axis and the plane just below the plate give a
	// near-vertical projection of the annulus.
	cfg := config.Verify{
		PlaneZ:      -1,
		PlaneSize:   280,
		Resolution:  141,
		LightZ:      2000,
		Intensity:   1,
		Attenuation: 1e-4,
		CameraZ:     100,
		FOV:         60,
		Supersample: 1,
		Workers:     2,
	}
	out, err := Verify(m, cfg)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if got := out.Shadow.Bounds().Dx(); got != 141 {
		t.Fatalf("shadow width %d, want 141", got)
	}
	if got := out.Render.Bounds().Dx(); got != 141 {
		t.Fatalf("render width %d, want 141", got)
	}

	// Plane spans [-140, 140] over 141 pixels: 2 mm per pixel.
	shadowAt := func(x, y float64) uint8 {
		ix := int(math.Round((x/280 + 0.5) * 140))
		iy := int(math.Round((y/280 + 0.5) * 140))
		return out.Shadow.GrayAt(ix, iy).Y
	}

	if shadowAt(0, 0) != 255 {
		t.Error("hole center is shadowed")
	}
	for _, angle := range []float64{0, 60, 120, 180, 240, 300} {
		rad := angle * math.Pi / 180
		// Mid-annulus radius 40: under the solid, dark.
		if v := shadowAt(40*math.Cos(rad), 40*math.Sin(rad)); v != 0 {
			t.Errorf("annulus shadow at %g° = %d, want 0", angle, v)
		}
		// Radius 100, outside the projected plate: lit.
		if v := shadowAt(100*math.Cos(rad), 100*math.Sin(rad)); v != 255 {
			t.Errorf("outside shadow at %g° = %d, want 255", angle, v)
		}
	}
}

func TestVerifyFileWritesImages(t *testing.T) {
	dir := t.TempDir()
	inPath := writeUniformPNG(t, dir, "white.png", 32, 255)
	stlPath := filepath.Join(dir, "plate.stl")

	cfg := genConfig()
	cfg.RadialSegments = 2
	cfg.AngularSegments = 24
	if _, err := Generate(inPath, stlPath, cfg); err != nil {
		t.Fatal(err)
	}

	shadowPath := filepath.Join(dir, "shadow.png")
	renderPath := filepath.Join(dir, "render.png")
	vcfg := config.Verify{
		PlaneZ:      100,
		PlaneSize:   100,
		Resolution:  32,
		LightZ:      1,
		Intensity:   1,
		Attenuation: 1e-4,
		CameraZ:     80,
		FOV:         60,
		Supersample: 2,
		Workers:     2,
	}
	if err := VerifyFile(stlPath, shadowPath, renderPath, vcfg); err != nil {
		t.Fatalf("VerifyFile: %v", err)
	}

	for _, p := range []string{shadowPath, renderPath} {
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("output %s missing: %v", p, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", p, err)
		}
		if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 32 {
			t.Fatalf("%s is %v, want 32×32", p, img.Bounds())
		}
	}
}

func TestVerifyEmptyMesh(t *testing.T) {
	cfg := config.Verify{}
	cfg.Resolve()
	if _, err := Verify(nil, cfg); err == nil {
		t.Fatal("nil mesh accepted")
	}
}
