package usecases

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/core/ports"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
	"github.com/samirrijal/campusroute/internal/pkg/metrics"
)

// ScheduleService answers questions about the term schedule.
type ScheduleService struct {
	schedules ports.ScheduleProvider
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(schedules ports.ScheduleProvider) *ScheduleService {
	return &ScheduleService{schedules: schedules}
}

// Offering returns a single offering or ErrNotFound.
func (s *ScheduleService) Offering(ctx context.Context, crn string) (*domain.CourseOffering, error) {
	ts, err := s.schedules.TermSchedule(ctx)
	if err != nil {
		return nil, err
	}
	o, ok := ts.FindByCrn(crn)
	if !ok {
		return nil, fmt.Errorf("offering %q: %w", crn, domain.ErrNotFound)
	}
	return o, nil
}

// OfferingsByCrns returns the offerings for the given CRNs in request order, skipping unknown ones.
func (s *ScheduleService) OfferingsByCrns(ctx context.Context, crns []string) ([]*domain.CourseOffering, error) {
	ts, err := s.schedules.TermSchedule(ctx)
	if err != nil {
		return nil, err
	}
	return ts.FindAllByCrns(crns), nil
}

// MissingCrns returns the requested CRNs that are not in the schedule, in request order.
func (s *ScheduleService) MissingCrns(ctx context.Context, crns []string) ([]string, error) {
	ts, err := s.schedules.TermSchedule(ctx)
	if err != nil {
		return nil, err
	}
	return missingCrns(ts, crns), nil
}

func missingCrns(ts *domain.TermSchedule, crns []string) []string {
	var missing []string
	for _, crn := range crns {
		if _, ok := ts.FindByCrn(crn); !ok {
			missing = append(missing, crn)
		}
	}
	return missing
}

// DailyItinerary resolves the CRNs and builds the itinerary for day.
// Unknown CRNs are logged and skipped.
func (s *ScheduleService) DailyItinerary(ctx context.Context, crns []string, day time.Weekday) (*domain.DailyItinerary, []string, error) {
	ts, err := s.schedules.TermSchedule(ctx)
	if err != nil {
		return nil, nil, err
	}

	missing := missingCrns(ts, crns)
	if len(missing) > 0 {
		metrics.UnknownCRNs.Add(float64(len(missing)))
		logging.FromContext(ctx).Warn("unknown CRNs requested", "crns", missing)
	}

	it, err := BuildItinerary(ts.FindAllByCrns(crns), day)
	if err != nil {
		return nil, missing, err
	}
	return it, missing, nil
}

// ListCourseCodes returns the distinct course codes, sorted case-insensitively.
func (s *ScheduleService) ListCourseCodes(ctx context.Context) ([]string, error) {
	return s.distinctCourseField(ctx, func(c *domain.Course) string { return c.Code })
}

// ListCourseTitles returns the distinct course titles, sorted case-insensitively.
func (s *ScheduleService) ListCourseTitles(ctx context.Context) ([]string, error) {
	return s.distinctCourseField(ctx, func(c *domain.Course) string { return c.Title })
}

func (s *ScheduleService) distinctCourseField(ctx context.Context, field func(*domain.Course) string) ([]string, error) {
	ts, err := s.schedules.TermSchedule(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, o := range ts.AllOfferings() {
		v := field(o.Course())
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out, nil
}

// BuildItinerary emits one entry per session held on day and stable-sorts them by start time.
// An empty offering list gives an empty itinerary.
func BuildItinerary(offerings []*domain.CourseOffering, day time.Weekday) (*domain.DailyItinerary, error) {
	if !domain.ValidWeekday(day) {
		return nil, fmt.Errorf("%w: weekday %d", domain.ErrInvalidArgument, day)
	}

	var entries []domain.ItineraryEntry
	for _, o := range offerings {
		if o == nil {
			continue
		}
		for _, session := range o.SessionsOn(day) {
			entries = append(entries, domain.ItineraryEntry{Offering: o, Session: session})
		}
	}

	it, err := domain.NewDailyItinerary(day, entries)
	if err != nil {
		return nil, err
	}
	it.SortByStartTime()
	return it, nil
}
