package trace

import (
	"fmt"

	"github.com/mrchaosbude/stlgen/internal/mathutil"
)

// ShadowPlane is the horizontal projection plane the shadow falls on,
// a Size×Size square centered on the z axis at height Z.
type ShadowPlane struct {
	Z    float64
	Size float64
}

// Shadow casts one ray from the light toward every plane sample and marks
// the sample dark when the mesh blocks it first. The returned buffer is
// res×res row-major, 1 for lit and 0 for shadowed.
func (s *Scene) Shadow(light Light, plane ShadowPlane, res, workers int) ([]float64, error) {
	if res < 2 {
		return nil, fmt.Errorf("trace: shadow resolution %d: %w", res, ErrConfig)
	}
	if plane.Size <= 0 {
		return nil, fmt.Errorf("trace: shadow plane size %g: %w", plane.Size, ErrConfig)
	}

	buf := make([]float64, res*res)
	forEachRow(res, workers, func(iy int) {
		y := (float64(iy)/float64(res-1) - 0.5) * plane.Size
		row := buf[iy*res:]
		for ix := 0; ix < res; ix++ {
			x := (float64(ix)/float64(res-1) - 0.5) * plane.Size
			target := mathutil.Vec3{x, y, plane.Z}
			dir := target.Sub(light.Pos)
			dist := dir.Len()
			if s.Occluded(light.Pos, dir.Normalize(), dist) {
				row[ix] = 0
			} else {
				row[ix] = 1
			}
		}
	})
	return buf, nil
}
