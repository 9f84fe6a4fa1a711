package geospatial

import "math"

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-6

// Vec is a 2D vector in whatever plane the caller works in (normalized map units or pixels).
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec       { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec       { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(k float64) Vec { return Vec{v.X * k, v.Y * k} }
func (v Vec) Len() float64        { return math.Hypot(v.X, v.Y) }

// Unit returns v scaled to length 1, or the zero vector when v is degenerate.
func (v Vec) Unit() Vec {
	l := v.Len()
	if l < Epsilon {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// Euclidean returns the straight-line distance between two points.
func Euclidean(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Perpendicular returns the unit vector (-dy, dx)/len for the direction a->b,
// or the zero vector when a and b coincide.
func Perpendicular(a, b Vec) Vec {
	d := b.Sub(a)
	l := d.Len()
	if l < Epsilon {
		return Vec{}
	}
	return Vec{-d.Y / l, d.X / l}
}

// Direction returns the unit vector from a toward b, or zero when they coincide.
func Direction(a, b Vec) Vec {
	return b.Sub(a).Unit()
}
