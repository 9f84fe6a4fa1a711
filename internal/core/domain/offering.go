package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MeetingSession is one weekly recurring meeting of an offering.
type MeetingSession struct {
	Day      time.Weekday `json:"day"`
	Slot     TimeSlot     `json:"slot"`
	Activity ActivityType `json:"activity"`
	Room     *Room        `json:"room"`
}

// NewMeetingSession requires a valid weekday and a room.
func NewMeetingSession(day time.Weekday, slot TimeSlot, activity ActivityType, room *Room) (MeetingSession, error) {
	if !ValidWeekday(day) {
		return MeetingSession{}, fmt.Errorf("%w: weekday %d", ErrInvalidArgument, day)
	}
	if room == nil {
		return MeetingSession{}, fmt.Errorf("%w: session room is required", ErrInvalidArgument)
	}
	if activity == "" {
		activity = ActivityOther
	}
	return MeetingSession{Day: day, Slot: slot, Activity: activity, Room: room}, nil
}

// Building resolves the session's building through its room. Nil when no room is attached.
func (s MeetingSession) Building() *Building {
	if s.Room == nil {
		return nil
	}
	return s.Room.Building
}

// CourseOffering is one CRN worth of scheduling data. Sessions are append-only and the
// instructor may be filled in once after construction.
// An offering is built by a single ingestion goroutine and read-only afterwards.
type CourseOffering struct {
	crn        string
	section    string
	mode       DeliveryMode
	course     *Course
	instructor *Instructor
	sessions   []MeetingSession
}

// NewCourseOffering validates the CRN and course. The instructor may be nil.
func NewCourseOffering(crn, section string, mode DeliveryMode, course *Course, instructor *Instructor) (*CourseOffering, error) {
	crn = strings.TrimSpace(crn)
	if crn == "" {
		return nil, fmt.Errorf("%w: crn is required", ErrInvalidArgument)
	}
	if course == nil {
		return nil, fmt.Errorf("%w: offering %s has no course", ErrInvalidArgument, crn)
	}
	if mode == "" {
		mode = DeliveryOther
	}
	return &CourseOffering{
		crn:        crn,
		section:    strings.TrimSpace(section),
		mode:       mode,
		course:     course,
		instructor: instructor,
	}, nil
}

func (o *CourseOffering) CRN() string                { return o.crn }
func (o *CourseOffering) Section() string            { return o.section }
func (o *CourseOffering) DeliveryMode() DeliveryMode { return o.mode }
func (o *CourseOffering) Course() *Course            { return o.course }

// Instructor returns the assigned instructor and whether one is set.
func (o *CourseOffering) Instructor() (*Instructor, bool) {
	return o.instructor, o.instructor != nil
}

// PatchInstructor assigns the instructor only when none is set yet.
// It reports whether the write happened; at most one call ever succeeds.
func (o *CourseOffering) PatchInstructor(i *Instructor) bool {
	if i == nil || o.instructor != nil {
		return false
	}
	o.instructor = i
	return true
}

// AddSession appends a meeting session.
func (o *CourseOffering) AddSession(s MeetingSession) {
	o.sessions = append(o.sessions, s)
}

// Sessions returns a copy of the sessions in insertion order.
func (o *CourseOffering) Sessions() []MeetingSession {
	out := make([]MeetingSession, len(o.sessions))
	copy(out, o.sessions)
	return out
}

// SessionsOn returns the sessions held on the given weekday, in insertion order.
func (o *CourseOffering) SessionsOn(day time.Weekday) []MeetingSession {
	var out []MeetingSession
	for _, s := range o.sessions {
		if s.Day == day {
			out = append(out, s)
		}
	}
	return out
}

func (o *CourseOffering) String() string {
	return o.crn + " " + o.course.Code + " (" + o.section + ")"
}

type offeringJSON struct {
	CRN          string           `json:"crn"`
	Section      string           `json:"section"`
	DeliveryMode DeliveryMode     `json:"delivery_mode"`
	Course       *Course          `json:"course"`
	Instructor   *Instructor      `json:"instructor,omitempty"`
	Sessions     []MeetingSession `json:"sessions"`
}

func (o *CourseOffering) MarshalJSON() ([]byte, error) {
	return json.Marshal(offeringJSON{
		CRN:          o.crn,
		Section:      o.section,
		DeliveryMode: o.mode,
		Course:       o.course,
		Instructor:   o.instructor,
		Sessions:     o.Sessions(),
	})
}
