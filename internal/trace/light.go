package trace

import "github.com/mrchaosbude/stlgen/internal/mathutil"

// Light is a point emitter. Attenuation is the inverse-square coefficient
// applied per squared millimeter of light-to-surface distance; zero
// disables falloff entirely.
type Light struct {
	Pos         mathutil.Vec3
	Intensity   float64
	Attenuation float64
}

// energyAt returns the light energy arriving at distance d.
func (l Light) energyAt(d float64) float64 {
	return l.Intensity / (1 + l.Attenuation*d*d)
}
