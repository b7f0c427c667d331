package mesh

import (
	"errors"
	"fmt"

	"github.com/mrchaosbude/stlgen/internal/mathutil"
)

// Error kinds. ErrConfig covers invalid build parameters, ErrGeometry a
// degenerate or non-manifold result.
var (
	ErrConfig   = errors.New("invalid mesh parameters")
	ErrGeometry = errors.New("degenerate geometry")
)

// Mesh is an indexed triangle surface. Vertices are deduplicated; triangles
// hold index triples wound so the right-hand-rule normal faces outward.
// A Mesh is frozen after construction: the tracer and the STL writer only
// ever read it.
type Mesh struct {
	Verts []mathutil.Vec3
	Tris  [][3]int
}

// Normal returns the unit right-hand-rule normal of triangle i.
// Zero-area triangles yield the zero vector.
func (m *Mesh) Normal(i int) mathutil.Vec3 {
	t := m.Tris[i]
	e1 := m.Verts[t[1]].Sub(m.Verts[t[0]])
	e2 := m.Verts[t[2]].Sub(m.Verts[t[0]])
	return e1.Cross(e2).Normalize()
}

// area2 returns twice the area of triangle i.
func (m *Mesh) area2(i int) float64 {
	t := m.Tris[i]
	e1 := m.Verts[t[1]].Sub(m.Verts[t[0]])
	e2 := m.Verts[t[2]].Sub(m.Verts[t[0]])
	return e1.Cross(e2).Len()
}

// Validate checks the watertightness invariants: every edge shared by
// exactly two triangles and no zero-area triangle.
func (m *Mesh) Validate() error {
	if len(m.Tris) == 0 {
		return fmt.Errorf("mesh: no triangles: %w", ErrGeometry)
	}

	const minArea2 = 1e-12
	edges := make(map[[2]int]int, len(m.Tris)*3/2)
	for i, t := range m.Tris {
		if m.area2(i) < minArea2 {
			return fmt.Errorf("mesh: triangle %d has zero area: %w", i, ErrGeometry)
		}
		for e := 0; e < 3; e++ {
			a, b := t[e], t[(e+1)%3]
			if a > b {
				a, b = b, a
			}
			edges[[2]int{a, b}]++
		}
	}
	for e, n := range edges {
		if n != 2 {
			return fmt.Errorf("mesh: edge %d-%d shared by %d triangles: %w", e[0], e[1], n, ErrGeometry)
		}
	}
	return nil
}
