package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

// --- Mock OfferingSource ---

type mockOfferingSource struct {
	loadFn func(ctx context.Context) ([]*domain.CourseOffering, error)
}

func (m *mockOfferingSource) LoadOfferings(ctx context.Context) ([]*domain.CourseOffering, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx)
	}
	return nil, nil
}

// --- Mock ScheduleProvider ---

type mockScheduleProvider struct {
	scheduleFn func(ctx context.Context) (*domain.TermSchedule, error)
	calls      int
}

func (m *mockScheduleProvider) TermSchedule(ctx context.Context) (*domain.TermSchedule, error) {
	m.calls++
	if m.scheduleFn != nil {
		return m.scheduleFn(ctx)
	}
	return domain.NewTermSchedule(nil), nil
}

func staticSchedule(offerings ...*domain.CourseOffering) *mockScheduleProvider {
	ts := domain.NewTermSchedule(offerings)
	return &mockScheduleProvider{
		scheduleFn: func(ctx context.Context) (*domain.TermSchedule, error) { return ts, nil },
	}
}

// --- Mock CacheService ---

type mockCache struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl int) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, context.Canceled
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl int) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error { return nil }

// --- Mock EventPublisher ---

type mockPublisher struct {
	publishFn func(ctx context.Context, ev *domain.RoutePlanned) error
}

func (m *mockPublisher) PublishRoutePlanned(ctx context.Context, ev *domain.RoutePlanned) error {
	if m.publishFn != nil {
		return m.publishFn(ctx, ev)
	}
	return nil
}

// --- Mock BuildingLookup ---

type mockLookup map[string]*domain.Building

func (m mockLookup) Get(code string) (*domain.Building, bool) {
	b, ok := m[code]
	return b, ok
}

// --- Fixtures ---

type session struct {
	day        time.Weekday
	start, end time.Duration
	building   *domain.Building
}

func at(day time.Weekday, h, m, durationMin int, b *domain.Building) session {
	start := domain.ClockTime(h, m)
	return session{day: day, start: start, end: start + time.Duration(durationMin)*time.Minute, building: b}
}

func mustBuilding(t *testing.T, code string, x, y float64) *domain.Building {
	t.Helper()
	b, err := domain.NewBuilding(code, "Building "+code, domain.CampusCoordinate{X: x, Y: y})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func mustOffering(t *testing.T, crn, code, title string, sessions ...session) *domain.CourseOffering {
	t.Helper()
	course, err := domain.NewCourse(code, title, "DEPT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o, err := domain.NewCourseOffering(crn, "01", domain.DeliveryLecture, course, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range sessions {
		slot, err := domain.NewTimeSlot(s.start, s.end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		room, err := domain.NewRoom("101", s.building)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ms, err := domain.NewMeetingSession(s.day, slot, domain.ActivityLecture, room)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		o.AddSession(ms)
	}
	return o
}
