package domain

import "time"

// RoutePlanned is emitted every time a daily route is planned.
type RoutePlanned struct {
	Day            string    `json:"day"`
	CRNs           []string  `json:"crns"`
	MissingCRNs    []string  `json:"missing_crns,omitempty"`
	Stops          []string  `json:"stops"`
	Segments       int       `json:"segments"`
	DistanceMeters float64   `json:"distance_meters"`
	PlannedAt      time.Time `json:"planned_at"`
}

// NewRoutePlanned summarizes a model for publishing.
func NewRoutePlanned(m *RouteVisualizationModel, crns, missing []string, at time.Time) RoutePlanned {
	ev := RoutePlanned{
		Day:         m.Day.String(),
		CRNs:        crns,
		MissingCRNs: missing,
		Stops:       []string{},
		PlannedAt:   at.UTC(),
	}
	if m.Path != nil {
		for _, b := range m.Path.Stops {
			ev.Stops = append(ev.Stops, b.Code)
		}
		ev.Segments = len(m.Path.Segments)
		ev.DistanceMeters = m.Path.TotalDistanceMeters
	}
	return ev
}
