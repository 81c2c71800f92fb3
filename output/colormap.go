package output

import "image/color"

// Colormap maps a normalized value in [0, 1] to a color.
type Colormap interface {
	At(t float64) color.RGBA
}

// LinearColormap interpolates linearly between a sequence of colors
// spread evenly over [0, 1].
type LinearColormap struct {
	colors []color.RGBA
}

func (c LinearColormap) At(t float64) color.RGBA {
	if t <= 0 {
		return c.colors[0]
	}
	if t >= 1 {
		return c.colors[len(c.colors)-1]
	}

	idx := t * float64(len(c.colors)-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= len(c.colors) {
		upper = len(c.colors) - 1
	}
	frac := idx - float64(lower)
	return interpolate(c.colors[lower], c.colors[upper], frac)
}

func interpolate(c1, c2 color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c1.R) + t*(float64(c2.R)-float64(c1.R))),
		G: uint8(float64(c1.G) + t*(float64(c2.G)-float64(c1.G))),
		B: uint8(float64(c1.B) + t*(float64(c2.B)-float64(c1.B))),
		A: 255,
	}
}

// Viridis is the matplotlib viridis colormap, the default for
// classified mask rendering.
var Viridis = LinearColormap{
	colors: []color.RGBA{
		{68, 1, 84, 255},
		{72, 35, 116, 255},
		{64, 67, 135, 255},
		{52, 94, 141, 255},
		{41, 120, 142, 255},
		{32, 144, 140, 255},
		{34, 167, 132, 255},
		{68, 190, 112, 255},
		{121, 209, 81, 255},
		{189, 222, 38, 255},
		{253, 231, 37, 255},
	},
}

// RdBu is a diverging red-white-blue colormap used for index bands
// such as NDWI.
var RdBu = LinearColormap{
	colors: []color.RGBA{
		{103, 0, 31, 255},
		{178, 24, 43, 255},
		{214, 96, 77, 255},
		{244, 165, 130, 255},
		{253, 219, 199, 255},
		{247, 247, 247, 255},
		{209, 229, 240, 255},
		{146, 197, 222, 255},
		{67, 147, 195, 255},
		{33, 102, 172, 255},
		{5, 48, 97, 255},
	},
}
