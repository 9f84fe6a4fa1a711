package domain

import (
	"fmt"
	"time"
)

// TimeSlot is a wall-clock window measured from midnight. End is exclusive.
type TimeSlot struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

// ClockTime builds a time-of-day offset.
func ClockTime(hour, minute int) time.Duration {
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute
}

// NewTimeSlot requires 0 <= start < end <= 24h.
func NewTimeSlot(start, end time.Duration) (TimeSlot, error) {
	if start < 0 || end > 24*time.Hour {
		return TimeSlot{}, fmt.Errorf("%w: time slot %s-%s outside of a day", ErrInvalidArgument, FormatClock(start), FormatClock(end))
	}
	if start >= end {
		return TimeSlot{}, fmt.Errorf("%w: end time %s must be after start time %s", ErrInvalidArgument, FormatClock(end), FormatClock(start))
	}
	return TimeSlot{Start: start, End: end}, nil
}

func (t TimeSlot) Duration() time.Duration { return t.End - t.Start }

// Overlaps reports whether the two windows intersect.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	return t.Start < other.End && other.Start < t.End
}

func (t TimeSlot) String() string {
	return FormatClock(t.Start) + " - " + FormatClock(t.End)
}

// FormatClock renders an offset from midnight as HH:MM.
func FormatClock(d time.Duration) string {
	m := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
