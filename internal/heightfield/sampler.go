package heightfield

import (
	"fmt"
	"math"
)

// Interp selects the resampling filter used when mapping polar samples
// onto the luminance grid.
type Interp int

const (
	Bilinear Interp = iota
	Nearest
)

// ParseInterp maps a CLI string to an Interp value.
func ParseInterp(s string) (Interp, error) {
	switch s {
	case "bilinear", "":
		return Bilinear, nil
	case "nearest":
		return Nearest, nil
	}
	return 0, fmt.Errorf("heightfield: unknown interpolation %q: %w", s, ErrConfig)
}

// Sampler maps normalized polar coordinates on the disk to relief heights.
//
// Projection: planar. The disk is inscribed in the image square, so a point
// at polar (r, θ) samples the pixel under its Cartesian position
// (x, y) = (r·cosθ, r·sinθ) with x ∈ [−outer, outer] spanning the image
// width. The printed plate therefore reads like the picture when viewed
// face-on. There is no angular unwrap and no wraparound; samples outside
// the image clamp to the edge.
type Sampler struct {
	field         *Field
	outerRadius   float64
	baseThickness float64
	reliefScale   float64
	interp        Interp
}

// NewSampler validates the relief parameters and binds them to a field.
// baseThickness must be positive so every point of the plate has material.
func NewSampler(f *Field, outerRadius, baseThickness, reliefScale float64, interp Interp) (*Sampler, error) {
	if f == nil || f.W <= 0 || f.H <= 0 {
		return nil, fmt.Errorf("heightfield: empty field: %w", ErrConfig)
	}
	if outerRadius <= 0 {
		return nil, fmt.Errorf("heightfield: outer radius %g: %w", outerRadius, ErrConfig)
	}
	if baseThickness <= 0 {
		return nil, fmt.Errorf("heightfield: base thickness %g must be positive: %w", baseThickness, ErrConfig)
	}
	if reliefScale < 0 {
		return nil, fmt.Errorf("heightfield: relief scale %g: %w", reliefScale, ErrConfig)
	}
	return &Sampler{
		field:         f,
		outerRadius:   outerRadius,
		baseThickness: baseThickness,
		reliefScale:   reliefScale,
		interp:        interp,
	}, nil
}

// Height returns the plate height at radial fraction u ∈ [0,1] and angular
// fraction v ∈ [0,1): baseThickness + luminance × reliefScale.
func (s *Sampler) Height(u, v float64) float64 {
	r := u * s.outerRadius
	theta := v * 2 * math.Pi
	x := r * math.Cos(theta)
	y := r * math.Sin(theta)

	// Map [−outer, outer] onto [0, W−1] / [0, H−1].
	px := (x/s.outerRadius + 1) / 2 * float64(s.field.W-1)
	py := (y/s.outerRadius + 1) / 2 * float64(s.field.H-1)

	var lum float64
	if s.interp == Nearest {
		lum = s.field.Nearest(px, py)
	} else {
		lum = s.field.Bilinear(px, py)
	}
	return s.baseThickness + lum*s.reliefScale
}

// Base returns the minimum plate thickness.
func (s *Sampler) Base() float64 { return s.baseThickness }
