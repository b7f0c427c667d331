package trace

import (
	"fmt"
	"math"

	"github.com/mrchaosbude/stlgen/internal/mathutil"
)

// Camera is a perspective pinhole camera. Orient rotates camera space into
// world space; the camera looks along its local −z axis with +y up.
// FOV is the vertical field of view in radians.
type Camera struct {
	Pos    mathutil.Vec3
	Orient mathutil.Mat3
	FOV    float64
}

// Background is the pixel value for rays that miss the mesh.
const Background = 0.0

// Render traces the angled preview: nearest hit per pixel, flat Lambertian
// shading against the point light with inverse-square falloff. Normals are
// flipped toward the ray so rim faces seen from behind still shade.
// The returned buffer is res×res row-major in [0,1].
func (s *Scene) Render(light Light, cam Camera, res, workers int) ([]float64, error) {
	if res < 2 {
		return nil, fmt.Errorf("trace: render resolution %d: %w", res, ErrConfig)
	}
	if cam.FOV <= 0 || cam.FOV >= math.Pi {
		return nil, fmt.Errorf("trace: field of view %g rad: %w", cam.FOV, ErrConfig)
	}

	screenDist := 1 / math.Tan(cam.FOV/2)

	buf := make([]float64, res*res)
	forEachRow(res, workers, func(iy int) {
		py := 1 - 2*(float64(iy)+0.5)/float64(res)
		row := buf[iy*res:]
		for ix := 0; ix < res; ix++ {
			px := 2*(float64(ix)+0.5)/float64(res) - 1
			dir := cam.Orient.MulVec3(mathutil.Vec3{px, py, -screenDist}).Normalize()

			t, tri, ok := s.Intersect(cam.Pos, dir)
			if !ok {
				row[ix] = Background
				continue
			}

			point := cam.Pos.Add(dir.Scale(t))
			normal := s.normals[tri]
			if normal.Dot(dir) > 0 {
				normal = normal.Scale(-1)
			}

			toLight := light.Pos.Sub(point)
			dist := toLight.Len()
			lambert := normal.Dot(toLight.Normalize())
			if lambert < 0 {
				lambert = 0
			}

			v := lambert * light.energyAt(dist)
			if v > 1 {
				v = 1
			}
			row[ix] = v
		}
	})
	return buf, nil
}
