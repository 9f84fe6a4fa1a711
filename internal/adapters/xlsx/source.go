package xlsx

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/core/ports"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
)

// Source implements ports.OfferingSource over a registrar spreadsheet export.
// Buildings referenced by the sheet are resolved through the registry.
type Source struct {
	path      string
	buildings ports.BuildingRegistry
}

// NewSource creates a new Source reading the workbook at path.
func NewSource(path string, buildings ports.BuildingRegistry) *Source {
	return &Source{path: path, buildings: buildings}
}

// LoadOfferings reads the first sheet of the workbook.
func (s *Source) LoadOfferings(ctx context.Context) ([]*domain.CourseOffering, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()
	return readWorkbook(ctx, f, s.buildings)
}

// ReadOfferings parses a workbook from r.
func ReadOfferings(ctx context.Context, r io.Reader, buildings ports.BuildingRegistry) ([]*domain.CourseOffering, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(ctx, f, buildings)
}

func readWorkbook(ctx context.Context, f *excelize.File, buildings ports.BuildingRegistry) ([]*domain.CourseOffering, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	b := newBuilder(buildings)
	skipped := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ok, err := b.addRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if !ok {
			skipped++
		}
	}

	logging.FromContext(ctx).Info("workbook parsed",
		"sheet", sheets[0],
		"rows", len(rows)-1,
		"skipped", skipped,
		"offerings", len(b.offerings),
		"courses", len(b.courses),
	)
	return b.offerings, nil
}

// builder accumulates offerings across rows, sharing one Course per code and one
// Instructor per name.
type builder struct {
	buildings   ports.BuildingRegistry
	courses     map[string]*domain.Course
	instructors map[string]*domain.Instructor
	byCRN       map[string]*domain.CourseOffering
	offerings   []*domain.CourseOffering
}

func newBuilder(buildings ports.BuildingRegistry) *builder {
	return &builder{
		buildings:   buildings,
		courses:     make(map[string]*domain.Course),
		instructors: make(map[string]*domain.Instructor),
		byCRN:       make(map[string]*domain.CourseOffering),
	}
}

// addRow reports false for rows skipped for a blank CRN, an unreadable time slot or
// a missing building.
func (b *builder) addRow(row []string) (bool, error) {
	crn := cell(row, colCRN)
	if crn == "" {
		return false, nil
	}

	course, err := b.course(cell(row, colCourseCode), cell(row, colTitle), cell(row, colDepartment))
	if err != nil {
		return false, err
	}
	instructor := b.instructor(cell(row, colInstructor))
	mode, activity := domain.ParseModality(cell(row, colModality))

	start, okStart := parseClock(cell(row, colStart))
	end, okEnd := parseClock(cell(row, colEnd))
	if !okStart || !okEnd {
		return false, nil
	}
	slot, err := domain.NewTimeSlot(start, end)
	if err != nil {
		return false, nil
	}

	buildingCode := cell(row, colBuilding)
	if buildingCode == "" {
		return false, nil
	}
	building, err := b.buildings.GetOrCreate(buildingCode, "", nil)
	if err != nil {
		return false, err
	}
	roomNumber := cell(row, colRoom)
	if roomNumber == "" {
		roomNumber = "Unknown"
	}
	room, err := domain.NewRoom(roomNumber, building)
	if err != nil {
		return false, err
	}

	offering, ok := b.byCRN[crn]
	if !ok {
		offering, err = domain.NewCourseOffering(crn, cell(row, colSection), mode, course, instructor)
		if err != nil {
			return false, err
		}
		b.byCRN[crn] = offering
		b.offerings = append(b.offerings, offering)
	}
	offering.PatchInstructor(instructor)

	for _, day := range domain.ParseDayLetters(cell(row, colDays)) {
		session, err := domain.NewMeetingSession(day, slot, activity, room)
		if err != nil {
			return false, err
		}
		offering.AddSession(session)
	}
	return true, nil
}

func (b *builder) course(code, title, department string) (*domain.Course, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = "UNKNOWN"
	}
	if c, ok := b.courses[code]; ok {
		return c, nil
	}
	if strings.TrimSpace(title) == "" {
		title = code
	}
	if strings.TrimSpace(department) == "" {
		department = "N/A"
	}
	c, err := domain.NewCourse(code, title, department)
	if err != nil {
		return nil, err
	}
	b.courses[code] = c
	return c, nil
}

func (b *builder) instructor(name string) *domain.Instructor {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if i, ok := b.instructors[name]; ok {
		return i
	}
	i, err := domain.NewInstructor(name, "")
	if err != nil {
		return nil
	}
	b.instructors[name] = i
	return i
}
