package domain

import "fmt"

// CampusCoordinate is a point on the campus map, normalized to [0,1] on both axes.
// x grows to the right and y grows downward, matching image space.
type CampusCoordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Center is the placeholder location used for buildings without known coordinates.
var Center = CampusCoordinate{X: 0.5, Y: 0.5}

// NewCampusCoordinate validates both components against [0,1].
func NewCampusCoordinate(x, y float64) (CampusCoordinate, error) {
	if !(x >= 0 && x <= 1) {
		return CampusCoordinate{}, fmt.Errorf("%w: x must be within [0,1], got %v", ErrInvalidArgument, x)
	}
	if !(y >= 0 && y <= 1) {
		return CampusCoordinate{}, fmt.Errorf("%w: y must be within [0,1], got %v", ErrInvalidArgument, y)
	}
	return CampusCoordinate{X: x, Y: y}, nil
}

// ClampedCoordinate clamps x and y into [0,1]. Used when normalizing pixel positions.
func ClampedCoordinate(x, y float64) CampusCoordinate {
	return CampusCoordinate{X: clamp01(x), Y: clamp01(y)}
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
