package render

import "image/color"

// Palette cycles through the route leg colors by leg index.
var Palette = []color.NRGBA{
	{R: 0, G: 100, B: 0, A: 255},     // dark green
	{R: 220, G: 20, B: 60, A: 255},   // crimson
	{R: 65, G: 105, B: 225, A: 255},  // royal blue
	{R: 255, G: 140, B: 0, A: 255},   // dark orange
	{R: 147, G: 112, B: 219, A: 255}, // medium purple
	{R: 0, G: 128, B: 128, A: 255},   // teal
	{R: 184, G: 134, B: 11, A: 255},  // dark goldenrod
}

var (
	white     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black     = color.NRGBA{A: 255}
	darkGray  = color.NRGBA{R: 169, G: 169, B: 169, A: 255}
	labelFill = color.NRGBA{R: 255, G: 255, B: 255, A: 217}
)

// LegColor returns the palette color for the i-th leg of a route.
func LegColor(i int) color.NRGBA {
	return Palette[i%len(Palette)]
}

// darker scales brightness down by 30%.
func darker(c color.NRGBA) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * 0.7),
		G: uint8(float64(c.G) * 0.7),
		B: uint8(float64(c.B) * 0.7),
		A: c.A,
	}
}
