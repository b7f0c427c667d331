package heightfield

import (
	"errors"
	"fmt"
)

// ErrConfig reports an unusable luminance grid or sampler parameters.
var ErrConfig = errors.New("invalid heightfield configuration")

// Field is an immutable grid of normalized luminance values in [0,1],
// row-major, width × height. The generator reads it, never writes it.
type Field struct {
	W, H int
	Lum  []float64
}

// NewField wraps a luminance slice. The slice is not copied; callers must
// not mutate it after handing it over.
func NewField(w, h int, lum []float64) (*Field, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("heightfield: %dx%d image: %w", w, h, ErrConfig)
	}
	if len(lum) != w*h {
		return nil, fmt.Errorf("heightfield: %d values for %dx%d grid: %w", len(lum), w, h, ErrConfig)
	}
	return &Field{W: w, H: h, Lum: lum}, nil
}

// Invert returns a new field with every luminance flipped (1−l).
// The original plate encoding makes dark pixels tall so they block more light.
func (f *Field) Invert() *Field {
	inv := make([]float64, len(f.Lum))
	for i, l := range f.Lum {
		inv[i] = 1 - l
	}
	return &Field{W: f.W, H: f.H, Lum: inv}
}

// at reads the grid with edge clamping (no wraparound).
func (f *Field) at(x, y int) float64 {
	if x < 0 {
		x = 0
	} else if x >= f.W {
		x = f.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= f.H {
		y = f.H - 1
	}
	return f.Lum[y*f.W+x]
}

// Nearest samples the grid at fractional pixel coordinates by rounding.
func (f *Field) Nearest(px, py float64) float64 {
	return f.at(int(px+0.5), int(py+0.5))
}

// Bilinear samples the grid at fractional pixel coordinates with bilinear
// filtering, clamping at the edges.
func (f *Field) Bilinear(px, py float64) float64 {
	if px < 0 {
		px = 0
	} else if px > float64(f.W-1) {
		px = float64(f.W - 1)
	}
	if py < 0 {
		py = 0
	} else if py > float64(f.H-1) {
		py = float64(f.H - 1)
	}
	x0 := int(px)
	y0 := int(py)
	dx := px - float64(x0)
	dy := py - float64(y0)

	l00 := f.at(x0, y0)
	l10 := f.at(x0+1, y0)
	l01 := f.at(x0, y0+1)
	l11 := f.at(x0+1, y0+1)

	top := l00*(1-dx) + l10*dx
	bot := l01*(1-dx) + l11*dx
	return top*(1-dy) + bot*dy
}
