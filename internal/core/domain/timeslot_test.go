package domain_test

import (
	"errors"
	"testing"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

func TestNewTimeSlot_InvertedRange(t *testing.T) {
	_, err := domain.NewTimeSlot(domain.ClockTime(10, 0), domain.ClockTime(9, 0))
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	_, err = domain.NewTimeSlot(domain.ClockTime(9, 0), domain.ClockTime(9, 0))
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty slot, got %v", err)
	}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	a, _ := domain.NewTimeSlot(domain.ClockTime(9, 0), domain.ClockTime(9, 50))
	b, _ := domain.NewTimeSlot(domain.ClockTime(9, 30), domain.ClockTime(10, 20))
	c, _ := domain.NewTimeSlot(domain.ClockTime(9, 50), domain.ClockTime(10, 40))

	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Error("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Error("adjacent slots must not overlap")
	}
	if a.String() != "09:00 - 09:50" {
		t.Errorf("unexpected string %q", a.String())
	}
	if a.Duration().Minutes() != 50 {
		t.Errorf("expected 50 minutes, got %v", a.Duration())
	}
}
