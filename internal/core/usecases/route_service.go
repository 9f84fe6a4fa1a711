package usecases

import (
	"fmt"
	"math"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

// DistanceFunc measures the walking distance between two buildings.
type DistanceFunc interface {
	Distance(a, b *domain.Building) float64
}

// RoutePlanner turns an itinerary into a drawable route with summary text.
type RoutePlanner struct {
	distance DistanceFunc
}

// NewRoutePlanner creates a new RoutePlanner.
func NewRoutePlanner(distance DistanceFunc) *RoutePlanner {
	return &RoutePlanner{distance: distance}
}

// BuildVisualization plans the day's route. Entries are re-sorted by start time
// so the result does not depend on the caller's ordering. It fails only when the
// distance function yields a negative or NaN distance.
func (p *RoutePlanner) BuildVisualization(it *domain.DailyItinerary) (*domain.RouteVisualizationModel, error) {
	entries := make([]domain.ItineraryEntry, len(it.Entries))
	copy(entries, it.Entries)
	domain.SortEntries(entries)

	path, err := p.buildPath(entries)
	if err != nil {
		return nil, err
	}

	offerings := []*domain.CourseOffering{}
	seenOffering := make(map[*domain.CourseOffering]struct{})
	for _, e := range entries {
		if _, ok := seenOffering[e.Offering]; ok {
			continue
		}
		seenOffering[e.Offering] = struct{}{}
		offerings = append(offerings, e.Offering)
	}

	buildings := []*domain.Building{}
	seenBuilding := make(map[string]struct{})
	for _, b := range path.Stops {
		if _, ok := seenBuilding[b.Code]; ok {
			continue
		}
		seenBuilding[b.Code] = struct{}{}
		buildings = append(buildings, b)
	}

	return &domain.RouteVisualizationModel{
		Day:       it.Day,
		Offerings: offerings,
		Buildings: buildings,
		Path:      path,
		Summary:   summaryLines(it.Day, offerings, len(buildings), path.TotalDistanceMeters),
	}, nil
}

// buildPath appends every building as a stop and emits a segment only when the
// building differs from the previous stop.
func (p *RoutePlanner) buildPath(entries []domain.ItineraryEntry) (*domain.RoutePath, error) {
	var (
		stops    []*domain.Building
		segments []domain.RouteSegment
		last     *domain.Building
	)
	for _, e := range entries {
		current := e.Building()
		if current == nil {
			continue
		}
		stops = append(stops, current)
		if last != nil && !domain.SameBuilding(last, current) {
			seg, err := domain.NewRouteSegment(last, current, p.distance.Distance(last, current))
			if err != nil {
				return nil, fmt.Errorf("leg %s -> %s: %w", last.Code, current.Code, err)
			}
			segments = append(segments, seg)
		}
		last = current
	}
	return domain.NewRoutePath(stops, segments)
}

func summaryLines(day fmt.Stringer, offerings []*domain.CourseOffering, buildingCount int, meters float64) []string {
	lines := []string{
		"Selected Day: " + day.String(),
		fmt.Sprintf("Number of Courses = %d", len(offerings)),
	}
	for _, o := range offerings {
		lines = append(lines, "• "+o.Course().Code+": "+o.Course().Title)
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Number of Different Buildings = %d", buildingCount),
		"",
		// %.0f rounds half to even, summary rounds half away from zero.
		fmt.Sprintf("Distance Traveled = %.0f m", math.Round(meters)),
	)
	return lines
}
