package stl

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrchaosbude/stlgen/internal/heightfield"
	"github.com/mrchaosbude/stlgen/internal/mesh"
)

func buildDisk(t *testing.T) *mesh.Mesh {
	t.Helper()
	f, err := heightfield.NewField(2, 2, []float64{0.2, 0.8, 0.5, 1})
	if err != nil {
		t.Fatal(err)
	}
	s, err := heightfield.NewSampler(f, 50, 1, 5, heightfield.Bilinear)
	if err != nil {
		t.Fatal(err)
	}
	m, err := mesh.BuildDisk(mesh.DiskParams{
		OuterRadius:     50,
		HoleRadius:      20,
		RadialSegments:  3,
		AngularSegments: 12,
	}, s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRoundTrip(t *testing.T) {
	m := buildDisk(t)

	var buf bytes.Buffer
	if err := Write(&buf, m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	wantSize := 84 + 50*len(m.Tris)
	if buf.Len() != wantSize {
		t.Fatalf("file size %d, want %d", buf.Len(), wantSize)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if len(got.Tris) != len(m.Tris) {
		t.Fatalf("triangle count %d, want %d", len(got.Tris), len(m.Tris))
	}

	// Facet order is preserved; compare corner positions within float32
	// quantization of millimeter coordinates.
	const tol = 1e-5
	for i, tri := range m.Tris {
		for v := 0; v < 3; v++ {
			a := m.Verts[tri[v]]
			b := got.Verts[got.Tris[i][v]]
			for c := 0; c < 3; c++ {
				if math.Abs(a[c]-b[c]) > tol {
					t.Fatalf("triangle %d vertex %d coord %d: %g vs %g", i, v, c, a[c], b[c])
				}
			}
		}
	}

	// Vertex deduplication on read restores a watertight indexed mesh.
	if err := got.Validate(); err != nil {
		t.Fatalf("round-tripped mesh not manifold: %v", err)
	}
	if len(got.Verts) != len(m.Verts) {
		t.Errorf("vertex count %d after dedup, want %d", len(got.Verts), len(m.Verts))
	}
}

func TestFileRoundTrip(t *testing.T) {
	m := buildDisk(t)
	path := filepath.Join(t.TempDir(), "plate.stl")

	if err := WriteFile(path, m); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got.Tris) != len(m.Tris) {
		t.Fatalf("triangle count %d, want %d", len(got.Tris), len(m.Tris))
	}
}

func TestReadFileRejectsCorrupt(t *testing.T) {
	dir := t.TempDir()

	short := filepath.Join(dir, "short.stl")
	if err := os.WriteFile(short, make([]byte, 50), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(short); err == nil {
		t.Fatal("truncated header accepted")
	}

	// Header claims one facet but the record is cut off.
	bad := make([]byte, 84+30)
	bad[80] = 1
	trunc := filepath.Join(dir, "trunc.stl")
	if err := os.WriteFile(trunc, bad, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFile(trunc); err == nil {
		t.Fatal("truncated facet accepted")
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.stl")); err == nil {
		t.Fatal("missing file accepted")
	}
}
