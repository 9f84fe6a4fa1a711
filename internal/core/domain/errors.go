package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidArgument marks a construction or precondition failure.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound marks a lookup miss surfaced to a caller that requires a hit.
	ErrNotFound = errors.New("not found")

	// ErrLoadFailed marks an unreadable schedule source.
	ErrLoadFailed = errors.New("schedule load failed")

	// ErrNoSessions is returned when an itinerary for the requested day is empty.
	ErrNoSessions = errors.New("no sessions for day")
)

// NoSessionsMessage is the user-facing text for a day without sessions.
func NoSessionsMessage(day time.Weekday) string {
	return fmt.Sprintf("No sessions found for %s with the selected CRNs.", day)
}
