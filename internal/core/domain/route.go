package domain

import (
	"fmt"
	"time"
)

// RouteSegment is one directed walking leg between two buildings.
type RouteSegment struct {
	From           *Building `json:"from"`
	To             *Building `json:"to"`
	DistanceMeters float64   `json:"distance_meters"`
}

// NewRouteSegment rejects missing endpoints and negative or NaN distances.
func NewRouteSegment(from, to *Building, meters float64) (RouteSegment, error) {
	if from == nil || to == nil {
		return RouteSegment{}, fmt.Errorf("%w: segment endpoints are required", ErrInvalidArgument)
	}
	if meters < 0 || meters != meters {
		return RouteSegment{}, fmt.Errorf("%w: negative segment distance %v", ErrInvalidArgument, meters)
	}
	return RouteSegment{From: from, To: to, DistanceMeters: meters}, nil
}

// RoutePath is a day's stop sequence with its walking legs.
type RoutePath struct {
	Stops               []*Building    `json:"stops"`
	Segments            []RouteSegment `json:"segments"`
	TotalDistanceMeters float64        `json:"total_distance_meters"`
}

// NewRoutePath computes the total from the segments. A path never has more
// segments than stops minus one.
func NewRoutePath(stops []*Building, segments []RouteSegment) (*RoutePath, error) {
	if len(segments) > 0 && len(segments) > len(stops)-1 {
		return nil, fmt.Errorf("%w: %d segments for %d stops", ErrInvalidArgument, len(segments), len(stops))
	}
	p := &RoutePath{
		Stops:    append([]*Building{}, stops...),
		Segments: append([]RouteSegment{}, segments...),
	}
	for _, s := range p.Segments {
		p.TotalDistanceMeters += s.DistanceMeters
	}
	return p, nil
}

// IsEmpty reports whether the path has no stops.
func (p *RoutePath) IsEmpty() bool { return p == nil || len(p.Stops) == 0 }

// RouteVisualizationModel is everything the renderer needs to draw one day.
type RouteVisualizationModel struct {
	Day       time.Weekday      `json:"day"`
	Offerings []*CourseOffering `json:"offerings"`
	Buildings []*Building       `json:"buildings"`
	Path      *RoutePath        `json:"path"`
	Summary   []string          `json:"summary"`
}

// EmptyModel is the model for a day with nothing to draw.
func EmptyModel(day time.Weekday) *RouteVisualizationModel {
	return &RouteVisualizationModel{
		Day:       day,
		Offerings: []*CourseOffering{},
		Buildings: []*Building{},
		Path:      &RoutePath{Stops: []*Building{}, Segments: []RouteSegment{}},
		Summary:   []string{},
	}
}
