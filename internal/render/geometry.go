package render

import (
	"image"
	"math"
	"strings"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/pkg/geospatial"
)

// Size is a drawing surface size in pixels.
type Size struct {
	Width  float64
	Height float64
}

func (s Size) valid() bool { return s.Width > 0 && s.Height > 0 }

// Viewport is the rectangle the campus map occupies on the surface.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// Letterbox fits an image of the given bounds inside size, centered, keeping its
// aspect ratio. Without an image the viewport covers the whole surface.
func Letterbox(size Size, img image.Image) Viewport {
	if img == nil {
		return Viewport{Width: size.Width, Height: size.Height}
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw <= 0 || ih <= 0 {
		return Viewport{Width: size.Width, Height: size.Height}
	}
	scale := math.Min(size.Width/iw, size.Height/ih)
	w, h := iw*scale, ih*scale
	return Viewport{
		X:      (size.Width - w) / 2,
		Y:      (size.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

// ToPixel maps a normalized campus coordinate into surface pixels.
func (v Viewport) ToPixel(c domain.CampusCoordinate) geospatial.Vec {
	return geospatial.Vec{X: v.X + c.X*v.Width, Y: v.Y + c.Y*v.Height}
}

// EdgeKey identifies the undirected, case-insensitive building pair of a segment.
func EdgeKey(from, to string) string {
	a, b := strings.ToLower(from), strings.ToLower(to)
	if a <= b {
		return a + "->" + b
	}
	return b + "->" + a
}

// CanonicalPerpendicular returns the unit perpendicular of the line between a and b,
// always measured from the endpoint whose code sorts first (ignoring case), so a leg
// and its return leg are offset along the same vector.
func CanonicalPerpendicular(a, b geospatial.Vec, codeA, codeB string) geospatial.Vec {
	if strings.ToLower(codeA) <= strings.ToLower(codeB) {
		return geospatial.Perpendicular(a, b)
	}
	return geospatial.Perpendicular(b, a)
}

// SpreadOffset is the signed distance of member index among total parallel lines.
func SpreadOffset(index, total int, spacing float64) float64 {
	if total <= 1 {
		return 0
	}
	return (float64(index) - float64(total-1)/2) * spacing
}
