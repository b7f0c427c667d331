package mesh

import (
	"fmt"
	"math"

	"github.com/mrchaosbude/stlgen/internal/heightfield"
	"github.com/mrchaosbude/stlgen/internal/mathutil"
)

// DiskParams describes the annular plate geometry. All lengths in millimeters.
type DiskParams struct {
	OuterRadius     float64
	HoleRadius      float64
	RadialSegments  int
	AngularSegments int
}

// Validate reports the first invalid parameter as ErrConfig. A hole radius
// indistinguishable from the outer radius is ErrGeometry: the annulus
// collapses and every triangle would be degenerate.
func (p DiskParams) Validate() error {
	if p.HoleRadius <= 0 {
		return fmt.Errorf("mesh: hole radius %g must be positive: %w", p.HoleRadius, ErrConfig)
	}
	if p.OuterRadius <= 0 {
		return fmt.Errorf("mesh: outer radius %g must be positive: %w", p.OuterRadius, ErrConfig)
	}
	if p.RadialSegments < 1 {
		return fmt.Errorf("mesh: radial segments %d, need at least 1: %w", p.RadialSegments, ErrConfig)
	}
	if p.AngularSegments < 3 {
		return fmt.Errorf("mesh: angular segments %d, need at least 3: %w", p.AngularSegments, ErrConfig)
	}
	if p.HoleRadius > p.OuterRadius {
		return fmt.Errorf("mesh: hole radius %g exceeds outer radius %g: %w", p.HoleRadius, p.OuterRadius, ErrConfig)
	}
	if p.OuterRadius-p.HoleRadius < 1e-9 {
		return fmt.Errorf("mesh: hole radius %g equals outer radius %g, annulus collapses: %w",
			p.HoleRadius, p.OuterRadius, ErrGeometry)
	}
	return nil
}

// BuildDisk tessellates the annulus into a closed solid: relief top surface
// sampled from s, flat bottom at z=0, and inner/outer rims stitching the two.
// The angular dimension wraps, so both boundaries are closed loops.
//
// Each call is independent; the returned mesh shares no state with the
// builder or with other meshes.
func BuildDisk(p DiskParams, s *heightfield.Sampler) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("mesh: nil sampler: %w", ErrConfig)
	}

	nr, na := p.RadialSegments, p.AngularSegments
	ringVerts := (nr + 1) * na

	m := &Mesh{
		Verts: make([]mathutil.Vec3, 0, 2*ringVerts),
		Tris:  make([][3]int, 0, 4*na*(nr+1)),
	}

	// Vertex grid: top ring vertices first, then the matching bottom grid
	// at z=0. Index (i, j) = radial ring i, angular column j.
	top := func(i, j int) int { return i*na + (j % na) }
	bot := func(i, j int) int { return ringVerts + i*na + (j % na) }

	for i := 0; i <= nr; i++ {
		u := float64(i) / float64(nr)
		r := p.HoleRadius + u*(p.OuterRadius-p.HoleRadius)
		for j := 0; j < na; j++ {
			v := float64(j) / float64(na)
			theta := v * 2 * math.Pi
			x := r * math.Cos(theta)
			y := r * math.Sin(theta)
			m.Verts = append(m.Verts, mathutil.Vec3{x, y, s.Height(r/p.OuterRadius, v)})
		}
	}
	for i := 0; i <= nr; i++ {
		u := float64(i) / float64(nr)
		r := p.HoleRadius + u*(p.OuterRadius-p.HoleRadius)
		for j := 0; j < na; j++ {
			theta := float64(j) / float64(na) * 2 * math.Pi
			m.Verts = append(m.Verts, mathutil.Vec3{r * math.Cos(theta), r * math.Sin(theta), 0})
		}
	}

	// Top surface: counterclockwise seen from +z.
	for i := 0; i < nr; i++ {
		for j := 0; j < na; j++ {
			a, b := top(i, j), top(i+1, j)
			c, d := top(i+1, j+1), top(i, j+1)
			m.Tris = append(m.Tris, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}

	// Bottom surface: reversed winding so the normal points down.
	for i := 0; i < nr; i++ {
		for j := 0; j < na; j++ {
			a, b := bot(i, j), bot(i+1, j)
			c, d := bot(i+1, j+1), bot(i, j+1)
			m.Tris = append(m.Tris, [3]int{a, d, c}, [3]int{a, c, b})
		}
	}

	// Outer rim: normals point away from the axis.
	for j := 0; j < na; j++ {
		tj, tj1 := top(nr, j), top(nr, j+1)
		bj, bj1 := bot(nr, j), bot(nr, j+1)
		m.Tris = append(m.Tris, [3]int{tj, bj, bj1}, [3]int{tj, bj1, tj1})
	}

	// Inner rim: normals point toward the axis, into the hole.
	for j := 0; j < na; j++ {
		tj, tj1 := top(0, j), top(0, j+1)
		bj, bj1 := bot(0, j), bot(0, j+1)
		m.Tris = append(m.Tris, [3]int{tj, bj1, bj}, [3]int{tj, tj1, bj1})
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
