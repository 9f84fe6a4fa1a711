package domain

import (
	"fmt"
	"strings"
)

// ActivityType classifies a single meeting session.
type ActivityType string

const (
	ActivityLecture    ActivityType = "LECTURE"
	ActivityLab        ActivityType = "LAB"
	ActivityInternship ActivityType = "INTERNSHIP"
	ActivityOther      ActivityType = "OTHER"
)

// DeliveryMode classifies a course offering as a whole.
type DeliveryMode string

const (
	DeliveryLecture    DeliveryMode = "LECTURE"
	DeliveryLab        DeliveryMode = "LAB"
	DeliveryInternship DeliveryMode = "INTERNSHIP"
	DeliveryOther      DeliveryMode = "OTHER"
)

// ParseModality maps a spreadsheet modality token (LEC, LAB, INT, ...) to both enums.
func ParseModality(token string) (DeliveryMode, ActivityType) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "LEC", "LECT":
		return DeliveryLecture, ActivityLecture
	case "LAB":
		return DeliveryLab, ActivityLab
	case "COP", "INT":
		return DeliveryInternship, ActivityInternship
	default:
		return DeliveryOther, ActivityOther
	}
}

// Building is a campus building. Code is the identity; a building is created once
// by the registry and shared by pointer everywhere else.
type Building struct {
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Location  CampusCoordinate   `json:"location"`
	Entrances []CampusCoordinate `json:"entrances,omitempty"`
}

// NewBuilding trims and validates code and name. A blank name falls back to the code.
func NewBuilding(code, name string, location CampusCoordinate, entrances ...CampusCoordinate) (*Building, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: building code is required", ErrInvalidArgument)
	}
	if _, err := NewCampusCoordinate(location.X, location.Y); err != nil {
		return nil, fmt.Errorf("building %s location: %w", code, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = code
	}
	b := &Building{Code: code, Name: name, Location: location}
	if len(entrances) > 0 {
		b.Entrances = append([]CampusCoordinate(nil), entrances...)
	}
	return b, nil
}

// SameBuilding compares building codes case-insensitively. Nil never matches.
func SameBuilding(a, b *Building) bool {
	if a == nil || b == nil {
		return false
	}
	return strings.EqualFold(a.Code, b.Code)
}

func (b *Building) String() string {
	return b.Code + " (" + b.Name + ")"
}

// Course is a catalog entry.
type Course struct {
	Code       string `json:"code"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

// NewCourse requires every field to be non-blank.
func NewCourse(code, title, department string) (*Course, error) {
	c := &Course{
		Code:       strings.TrimSpace(code),
		Title:      strings.TrimSpace(title),
		Department: strings.TrimSpace(department),
	}
	switch {
	case c.Code == "":
		return nil, fmt.Errorf("%w: course code is required", ErrInvalidArgument)
	case c.Title == "":
		return nil, fmt.Errorf("%w: course title is required", ErrInvalidArgument)
	case c.Department == "":
		return nil, fmt.Errorf("%w: department is required", ErrInvalidArgument)
	}
	return c, nil
}

func (c *Course) String() string { return c.Code + " - " + c.Title }

// Instructor teaches an offering. Email is optional.
type Instructor struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func NewInstructor(name, email string) (*Instructor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: instructor name is required", ErrInvalidArgument)
	}
	return &Instructor{Name: name, Email: strings.TrimSpace(email)}, nil
}

func (i *Instructor) String() string {
	if i.Email == "" {
		return i.Name
	}
	return i.Name + " (" + i.Email + ")"
}

// Room belongs to exactly one building.
type Room struct {
	Number   string    `json:"number"`
	Floor    int       `json:"floor"`
	Building *Building `json:"building"`
}

// NewRoom derives the floor from the first digit in the room token (0 when none).
func NewRoom(number string, building *Building) (*Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, fmt.Errorf("%w: room number is required", ErrInvalidArgument)
	}
	if building == nil {
		return nil, fmt.Errorf("%w: room %s has no building", ErrInvalidArgument, number)
	}
	return &Room{Number: number, Floor: FloorOf(number), Building: building}, nil
}

// FloorOf returns the first decimal digit found in the room token, or 0.
func FloorOf(room string) int {
	for _, r := range room {
		if r >= '0' && r <= '9' {
			return int(r - '0')
		}
	}
	return 0
}

func (r *Room) String() string { return r.Building.Code + "-" + r.Number }
