// Package stl reads and writes binary STL: an 80-byte header, a uint32
// little-endian triangle count, then 50-byte facet records (normal and
// three vertices as float32 triples plus a uint16 attribute word).
package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/mrchaosbude/stlgen/internal/mathutil"
	"github.com/mrchaosbude/stlgen/internal/mesh"
)

const (
	headerSize = 80
	facetSize  = 50 // 12 f32 + u16 attribute
)

var header = []byte("Created by disk_shadow_generator")

// Write serializes the mesh. Facet normals are recomputed from the winding
// so the file stays consistent with the geometry.
func Write(w io.Writer, m *mesh.Mesh) error {
	bw := bufio.NewWriter(w)

	var hdr [headerSize]byte
	copy(hdr[:], header)
	for i := len(header); i < headerSize; i++ {
		hdr[i] = ' '
	}
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("stl: write header: %w", err)
	}

	var u32 [4]byte
	binary.LittleEndian.PutUint32(u32[:], uint32(len(m.Tris)))
	if _, err := bw.Write(u32[:]); err != nil {
		return fmt.Errorf("stl: write count: %w", err)
	}

	var facet [facetSize]byte
	for i, t := range m.Tris {
		n := m.Normal(i)
		putVec3(facet[0:], n)
		putVec3(facet[12:], m.Verts[t[0]])
		putVec3(facet[24:], m.Verts[t[1]])
		putVec3(facet[36:], m.Verts[t[2]])
		facet[48], facet[49] = 0, 0
		if _, err := bw.Write(facet[:]); err != nil {
			return fmt.Errorf("stl: write facet %d: %w", i, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("stl: flush: %w", err)
	}
	return nil
}

// WriteFile writes the mesh to path, truncating any existing file.
func WriteFile(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("stl: create %s: %w", path, err)
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("stl: close %s: %w", path, err)
	}
	return nil
}

// Read parses a binary STL and rebuilds an indexed mesh, deduplicating
// identical vertices so shared edges are shared indices again. The stored
// facet normals are discarded; winding defines orientation.
func Read(r io.Reader) (*mesh.Mesh, error) {
	br := bufio.NewReader(r)

	var hdr [headerSize + 4]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("stl: read header: %w", err)
	}
	count := binary.LittleEndian.Uint32(hdr[headerSize:])

	m := &mesh.Mesh{
		Verts: make([]mathutil.Vec3, 0, count/2),
		Tris:  make([][3]int, 0, count),
	}
	vertIndex := make(map[[3]float32]int, count/2)

	var facet [facetSize]byte
	for i := 0; i < int(count); i++ {
		if _, err := io.ReadFull(br, facet[:]); err != nil {
			return nil, fmt.Errorf("stl: facet %d of %d: %w", i, count, err)
		}
		var tri [3]int
		for v := 0; v < 3; v++ {
			var key [3]float32
			for c := 0; c < 3; c++ {
				// Skip the 12-byte normal at the front of the record.
				key[c] = math.Float32frombits(binary.LittleEndian.Uint32(facet[12+12*v+4*c:]))
			}
			idx, ok := vertIndex[key]
			if !ok {
				idx = len(m.Verts)
				m.Verts = append(m.Verts, mathutil.Vec3{float64(key[0]), float64(key[1]), float64(key[2])})
				vertIndex[key] = idx
			}
			tri[v] = idx
		}
		m.Tris = append(m.Tris, tri)
	}
	return m, nil
}

// ReadFile reads a binary STL from path, validating the triangle count
// against the file size.
func ReadFile(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stl: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stl: stat %s: %w", path, err)
	}
	if info.Size() < headerSize+4 {
		return nil, fmt.Errorf("stl: %s: truncated header (%d bytes)", path, info.Size())
	}
	if rem := (info.Size() - headerSize - 4) % facetSize; rem != 0 {
		return nil, fmt.Errorf("stl: %s: %d trailing bytes after last facet", path, rem)
	}

	m, err := Read(f)
	if err != nil {
		return nil, err
	}
	if want := (info.Size() - headerSize - 4) / facetSize; int64(len(m.Tris)) != want {
		return nil, fmt.Errorf("stl: %s: header count %d, file holds %d facets", path, len(m.Tris), want)
	}
	return m, nil
}

func putVec3(b []byte, v mathutil.Vec3) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v[0])))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v[1])))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v[2])))
}
