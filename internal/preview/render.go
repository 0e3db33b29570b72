package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gruppe-adler/meh-grid/internal/grid"
	"github.com/gruppe-adler/meh-grid/internal/terrainrgb"
)

// Mode selects how cell values are mapped to colors.
type Mode string

const (
	// Gray stretches valid values linearly from black (min) to white (max).
	Gray Mode = "gray"
	// TerrainRGB encodes values as Mapbox Terrain-RGB heights.
	TerrainRGB Mode = "terrainrgb"
)

// ParseMode validates a mode name given on the command line.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(name); m {
	case Gray, TerrainRGB:
		return m, nil
	}
	return "", fmt.Errorf("unknown preview mode %q (want %q or %q)", name, Gray, TerrainRGB)
}

// Render draws a width x height sample into an image. Masked cells are transparent.
func Render(sample *grid.Sample, width, height int, mode Mode) (*image.NRGBA, error) {
	if sample.Len() != width*height {
		return nil, fmt.Errorf("%w: %d values for %dx%d image", grid.ErrLengthMismatch, sample.Len(), width, height)
	}

	var colorOf func(v float64) color.NRGBA
	switch mode {
	case Gray:
		min, max, _ := sample.MinMax()
		colorOf = func(v float64) color.NRGBA {
			var level uint8
			if max > min {
				level = uint8((v - min) / (max - min) * 255)
			}
			return color.NRGBA{R: level, G: level, B: level, A: 255}
		}
	case TerrainRGB:
		colorOf = terrainrgb.HeightToRgb
	default:
		return nil, fmt.Errorf("unknown preview mode %q", mode)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, v := range sample.Values {
		if !sample.Valid(i) {
			continue
		}
		img.SetNRGBA(i%width, i/width, colorOf(v))
	}
	return img, nil
}
