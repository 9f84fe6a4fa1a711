package render

import (
	"image"
	"image/color"

	"github.com/samirrijal/campusroute/internal/pkg/geospatial"
)

// Command is one immediate-mode draw call. The set is closed: Clear, Image, Line,
// Polygon, Circle and Label.
type Command interface {
	command()
}

// Clear resets the whole surface to transparent.
type Clear struct {
	Size Size
}

// Image draws the background scaled into the viewport.
type Image struct {
	Src      image.Image
	Viewport Viewport
}

// Line strokes a straight line.
type Line struct {
	From, To geospatial.Vec
	Color    color.NRGBA
	Width    float64
}

// Polygon fills a closed polygon.
type Polygon struct {
	Points []geospatial.Vec
	Fill   color.NRGBA
}

// Circle fills and outlines a circle.
type Circle struct {
	Center      geospatial.Vec
	Radius      float64
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
}

// Label is a rounded-rectangle callout with text drawn from its baseline origin.
type Label struct {
	Text         string
	X, Y         float64
	Width        float64
	Height       float64
	CornerRadius float64
	Fill         color.NRGBA
	Border       color.NRGBA
	BorderWidth  float64
	TextColor    color.NRGBA
	TextOrigin   geospatial.Vec
}

func (Clear) command()   {}
func (Image) command()   {}
func (Line) command()    {}
func (Polygon) command() {}
func (Circle) command()  {}
func (Label) command()   {}
