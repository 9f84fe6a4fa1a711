package http

import (
	"time"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/core/usecases"
)

type sessionResponse struct {
	Day      string `json:"day"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Activity string `json:"activity"`
	Building string `json:"building"`
	Room     string `json:"room"`
	Floor    int    `json:"floor"`
}

type offeringResponse struct {
	CRN          string             `json:"crn"`
	Section      string             `json:"section"`
	DeliveryMode string             `json:"delivery_mode"`
	Course       *domain.Course     `json:"course"`
	Instructor   *domain.Instructor `json:"instructor,omitempty"`
	Sessions     []sessionResponse  `json:"sessions"`
}

type entryResponse struct {
	CRN    string `json:"crn"`
	Course string `json:"course"`
	Title  string `json:"title"`
	sessionResponse
}

type itineraryResponse struct {
	Day         string          `json:"day"`
	Entries     []entryResponse `json:"entries"`
	MissingCRNs []string        `json:"missing_crns"`
}

type segmentResponse struct {
	From           string  `json:"from"`
	To             string  `json:"to"`
	DistanceMeters float64 `json:"distance_meters"`
}

type routeResponse struct {
	Day                 string             `json:"day"`
	Stops               []*domain.Building `json:"stops"`
	Segments            []segmentResponse  `json:"segments"`
	TotalDistanceMeters float64            `json:"total_distance_meters"`
	Buildings           []*domain.Building `json:"buildings"`
	Offerings           []offeringResponse `json:"offerings"`
	Summary             []string           `json:"summary"`
	MissingCRNs         []string           `json:"missing_crns"`
}

func toSession(s domain.MeetingSession) sessionResponse {
	out := sessionResponse{
		Day:      s.Day.String(),
		Start:    domain.FormatClock(s.Slot.Start),
		End:      domain.FormatClock(s.Slot.End),
		Activity: string(s.Activity),
	}
	if s.Room != nil {
		out.Room = s.Room.Number
		out.Floor = s.Room.Floor
	}
	if b := s.Building(); b != nil {
		out.Building = b.Code
	}
	return out
}

func toOffering(o *domain.CourseOffering) offeringResponse {
	out := offeringResponse{
		CRN:          o.CRN(),
		Section:      o.Section(),
		DeliveryMode: string(o.DeliveryMode()),
		Course:       o.Course(),
		Sessions:     []sessionResponse{},
	}
	if in, ok := o.Instructor(); ok {
		out.Instructor = in
	}
	for _, s := range o.Sessions() {
		out.Sessions = append(out.Sessions, toSession(s))
	}
	return out
}

func toItinerary(it *domain.DailyItinerary, day time.Weekday, missing []string) itineraryResponse {
	out := itineraryResponse{Day: day.String(), Entries: []entryResponse{}, MissingCRNs: nonNil(missing)}
	if it == nil {
		return out
	}
	for _, e := range it.Entries {
		out.Entries = append(out.Entries, entryResponse{
			CRN:             e.Offering.CRN(),
			Course:          e.Offering.Course().Code,
			Title:           e.Offering.Course().Title,
			sessionResponse: toSession(e.Session),
		})
	}
	return out
}

func toRoute(plan *usecases.RoutePlan) routeResponse {
	m := plan.Model
	out := routeResponse{
		Day:         m.Day.String(),
		Stops:       []*domain.Building{},
		Segments:    []segmentResponse{},
		Buildings:   nonNilBuildings(m.Buildings),
		Offerings:   []offeringResponse{},
		Summary:     m.Summary,
		MissingCRNs: nonNil(plan.MissingCRNs),
	}
	if m.Path != nil {
		out.Stops = nonNilBuildings(m.Path.Stops)
		out.TotalDistanceMeters = m.Path.TotalDistanceMeters
		for _, s := range m.Path.Segments {
			out.Segments = append(out.Segments, segmentResponse{
				From:           s.From.Code,
				To:             s.To.Code,
				DistanceMeters: s.DistanceMeters,
			})
		}
	}
	for _, o := range m.Offerings {
		out.Offerings = append(out.Offerings, toOffering(o))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilBuildings(b []*domain.Building) []*domain.Building {
	if b == nil {
		return []*domain.Building{}
	}
	return b
}
