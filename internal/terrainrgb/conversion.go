package terrainrgb

import (
	"image/color"
	"math"
)

/*
	Mapbox Terrain-RGB decodes heights with

	height = -10000 + ((R * 256 * 256 + G * 256 + B) * 0.1)

	Writing (R * 256 * 256 + G * 256 + B) as x and solving for it gives
	x = 10 * height + 100000

	x is a three digit number in base 256: digit 2 is r, digit 1 is g and digit 0 is b.
*/

const (
	baseHeight = -10000.0
	resolution = 0.1
	maxX       = 256*256*256 - 1
)

// MinHeight and MaxHeight are the heights representable by Terrain-RGB.
const (
	MinHeight = baseHeight
	MaxHeight = baseHeight + maxX*resolution
)

// HeightToRgb encodes a height as an opaque Terrain-RGB color.
// Heights outside [MinHeight, MaxHeight] are clamped.
func HeightToRgb(height float64) color.NRGBA {
	x := int64(math.Round((height - baseHeight) / resolution))
	if x < 0 {
		x = 0
	}
	if x > maxX {
		x = maxX
	}

	return color.NRGBA{
		R: uint8(x >> 16),
		G: uint8(x >> 8),
		B: uint8(x),
		A: 255,
	}
}

// RgbToHeight decodes a Terrain-RGB color into a height.
func RgbToHeight(c color.NRGBA) float64 {
	x := int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)

	return baseHeight + float64(x)*resolution
}
