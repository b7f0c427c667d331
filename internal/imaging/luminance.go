// Package imaging is the boundary to image files: it decodes rasters into
// normalized luminance grids and encodes gray render buffers back out.
// The geometry and tracing packages never touch an image format directly.
package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
	"golang.org/x/image/draw"

	"github.com/mrchaosbude/stlgen/internal/heightfield"
)

// LoadLuminance decodes an image file, resamples it to a resolution×resolution
// square (CatmullRom), and collapses it to a Rec. 601 luminance field in [0,1].
func LoadLuminance(path string, resolution int) (*heightfield.Field, error) {
	if resolution < 2 {
		return nil, fmt.Errorf("imaging: resolution %d: %w", resolution, heightfield.ErrConfig)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: open %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode %s: %w", path, err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("imaging: %s is %dx%d: %w", path, b.Dx(), b.Dy(), heightfield.ErrConfig)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, resolution, resolution))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, b, draw.Src, nil)

	lum := make([]float64, resolution*resolution)
	for y := 0; y < resolution; y++ {
		off := y * scaled.Stride
		for x := 0; x < resolution; x++ {
			i := off + x*4
			r := float64(scaled.Pix[i])
			g := float64(scaled.Pix[i+1])
			bl := float64(scaled.Pix[i+2])
			lum[y*resolution+x] = (0.299*r + 0.587*g + 0.114*bl) / 255
		}
	}
	return heightfield.NewField(resolution, resolution, lum)
}
