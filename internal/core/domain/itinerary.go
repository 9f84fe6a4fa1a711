package domain

import (
	"fmt"
	"sort"
	"time"
)

// ItineraryEntry pairs an offering with one of its sessions.
type ItineraryEntry struct {
	Offering *CourseOffering `json:"offering"`
	Session  MeetingSession  `json:"session"`
}

func (e ItineraryEntry) Start() time.Duration { return e.Session.Slot.Start }
func (e ItineraryEntry) End() time.Duration   { return e.Session.Slot.End }
func (e ItineraryEntry) Building() *Building  { return e.Session.Building() }

// DailyItinerary is the ordered set of sessions a student attends on one weekday.
type DailyItinerary struct {
	Day     time.Weekday     `json:"day"`
	Entries []ItineraryEntry `json:"entries"`
}

// NewDailyItinerary rejects values outside Sunday..Saturday.
func NewDailyItinerary(day time.Weekday, entries []ItineraryEntry) (*DailyItinerary, error) {
	if !ValidWeekday(day) {
		return nil, fmt.Errorf("%w: weekday %d", ErrInvalidArgument, day)
	}
	if entries == nil {
		entries = []ItineraryEntry{}
	}
	return &DailyItinerary{Day: day, Entries: entries}, nil
}

// SortByStartTime orders entries by start time in place. Ties keep their relative order.
func (d *DailyItinerary) SortByStartTime() {
	SortEntries(d.Entries)
}

// IsEmpty reports whether the day has no sessions.
func (d *DailyItinerary) IsEmpty() bool { return len(d.Entries) == 0 }

// SortEntries stable-sorts entries by session start time.
func SortEntries(entries []ItineraryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start() < entries[j].Start()
	})
}
