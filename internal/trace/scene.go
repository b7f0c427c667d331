// Package trace casts rays against a frozen triangle mesh. A linear scan
// over all triangles per ray is deliberate: the disk meshes this tool
// produces are small enough that a spatial index would not pay for itself,
// and skipping one keeps intersection results trivially deterministic.
package trace

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/mrchaosbude/stlgen/internal/mathutil"
	"github.com/mrchaosbude/stlgen/internal/mesh"
)

// ErrConfig reports an unusable tracing setup (empty mesh, bad resolution).
var ErrConfig = errors.New("invalid trace configuration")

// epsilon bounds both the parallel-ray determinant test and the minimum
// accepted hit distance, matching the reference tracer.
const epsilon = 1e-9

// Scene holds a read-only mesh with per-triangle edge vectors precomputed
// once. After NewScene returns, tracing only reads, so rays may be cast
// from any number of goroutines.
type Scene struct {
	Mesh *mesh.Mesh

	v0, e1, e2 []mathutil.Vec3
	normals    []mathutil.Vec3
}

// NewScene freezes a mesh for tracing.
func NewScene(m *mesh.Mesh) (*Scene, error) {
	if m == nil || len(m.Tris) == 0 {
		return nil, fmt.Errorf("trace: mesh has no triangles: %w", ErrConfig)
	}
	s := &Scene{
		Mesh:    m,
		v0:      make([]mathutil.Vec3, len(m.Tris)),
		e1:      make([]mathutil.Vec3, len(m.Tris)),
		e2:      make([]mathutil.Vec3, len(m.Tris)),
		normals: make([]mathutil.Vec3, len(m.Tris)),
	}
	for i, t := range m.Tris {
		s.v0[i] = m.Verts[t[0]]
		s.e1[i] = m.Verts[t[1]].Sub(m.Verts[t[0]])
		s.e2[i] = m.Verts[t[2]].Sub(m.Verts[t[0]])
		s.normals[i] = s.e1[i].Cross(s.e2[i]).Normalize()
	}
	return s, nil
}

// intersectTri runs the Möller–Trumbore test for one triangle.
// Rays parallel to the triangle plane miss; hits need t > epsilon.
func (s *Scene) intersectTri(i int, orig, dir mathutil.Vec3) (float64, bool) {
	h := dir.Cross(s.e2[i])
	det := s.e1[i].Dot(h)
	if det > -epsilon && det < epsilon {
		return 0, false
	}
	invDet := 1 / det
	sv := orig.Sub(s.v0[i])
	u := invDet * sv.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}
	q := sv.Cross(s.e1[i])
	v := invDet * dir.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := invDet * s.e2[i].Dot(q)
	if t <= epsilon {
		return 0, false
	}
	return t, true
}

// Intersect returns the nearest hit along the ray, scanning triangles in
// index order with a strict comparison so equal distances resolve to the
// lowest triangle index. Casting the same ray twice gives the same answer.
func (s *Scene) Intersect(orig, dir mathutil.Vec3) (t float64, tri int, ok bool) {
	tri = -1
	for i := range s.v0 {
		if ti, hit := s.intersectTri(i, orig, dir); hit && (!ok || ti < t) {
			t, tri, ok = ti, i, true
		}
	}
	return t, tri, ok
}

// Occluded reports whether anything blocks the ray before maxT.
// Unlike Intersect it stops at the first blocker.
func (s *Scene) Occluded(orig, dir mathutil.Vec3, maxT float64) bool {
	for i := range s.v0 {
		if t, hit := s.intersectTri(i, orig, dir); hit && t < maxT-epsilon {
			return true
		}
	}
	return false
}

// forEachRow fans rows out to a worker pool. Every row writes a disjoint
// slice of the output buffer, so no synchronization beyond the WaitGroup
// is needed and the result is identical to a sequential run.
func forEachRow(rows, workers int, fn func(row int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		for y := 0; y < rows; y++ {
			fn(y)
		}
		return
	}

	rowCh := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rowCh {
				fn(y)
			}
		}()
	}
	for y := 0; y < rows; y++ {
		rowCh <- y
	}
	close(rowCh)
	wg.Wait()
}
