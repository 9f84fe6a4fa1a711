package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/core/ports"
)

// OfferingRepo implements ports.OfferingRepository. Loading resolves buildings
// through the registry so every session shares the registry's instance.
type OfferingRepo struct {
	db        *DB
	buildings ports.BuildingRegistry
}

// NewOfferingRepo creates a new OfferingRepo.
func NewOfferingRepo(db *DB, buildings ports.BuildingRegistry) *OfferingRepo {
	return &OfferingRepo{db: db, buildings: buildings}
}

// UpsertBatch replaces the stored offerings, courses and sessions in one transaction.
// Offerings absent from the batch are deleted along with their sessions, and
// courses no longer offered go with them. Offering order is preserved through
// the ordinal column.
func (r *OfferingRepo) UpsertBatch(ctx context.Context, offerings []*domain.CourseOffering) error {
	batch := &pgx.Batch{}
	queued := 0
	crns := make([]string, 0, len(offerings))
	codes := make([]string, 0, len(offerings))
	seenCourses := make(map[string]struct{})
	for i, o := range offerings {
		crns = append(crns, o.CRN())
		c := o.Course()
		if _, ok := seenCourses[c.Code]; !ok {
			seenCourses[c.Code] = struct{}{}
			codes = append(codes, c.Code)
			batch.Queue(`
				INSERT INTO courses (code, title, department) VALUES ($1, $2, $3)
				ON CONFLICT (code) DO UPDATE SET title = EXCLUDED.title, department = EXCLUDED.department
			`, c.Code, c.Title, c.Department)
			queued++
		}

		var name, email *string
		if in, ok := o.Instructor(); ok {
			name, email = &in.Name, &in.Email
		}
		batch.Queue(`
			INSERT INTO offerings (crn, ordinal, section, delivery_mode, course_code, instructor_name, instructor_email)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (crn) DO UPDATE
			SET ordinal = EXCLUDED.ordinal, section = EXCLUDED.section,
			    delivery_mode = EXCLUDED.delivery_mode, course_code = EXCLUDED.course_code,
			    instructor_name = EXCLUDED.instructor_name, instructor_email = EXCLUDED.instructor_email,
			    updated_at = now()
		`, o.CRN(), i, o.Section(), string(o.DeliveryMode()), c.Code, name, email)
		batch.Queue(`DELETE FROM sessions WHERE crn = $1`, o.CRN())
		queued += 2

		for _, s := range o.Sessions() {
			batch.Queue(`
				INSERT INTO sessions (crn, weekday, start_minute, end_minute, activity, building_code, room)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
			`, o.CRN(), int16(s.Day), int(s.Slot.Start/time.Minute), int(s.Slot.End/time.Minute),
				string(s.Activity), s.Building().Code, s.Room.Number)
			queued++
		}
	}

	batch.Queue(`DELETE FROM offerings WHERE crn <> ALL($1)`, crns)
	batch.Queue(`DELETE FROM courses WHERE code <> ALL($1)`, codes)
	queued += 2

	return r.db.InTx(ctx, func(tx pgx.Tx) error {
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < queued; i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("batch exec: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("batch close: %w", err)
		}
		return nil
	})
}

// LoadOfferings reads every offering with its sessions in stored order.
func (r *OfferingRepo) LoadOfferings(ctx context.Context) ([]*domain.CourseOffering, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT o.crn, o.section, o.delivery_mode,
		       c.code, c.title, c.department,
		       COALESCE(o.instructor_name, ''), COALESCE(o.instructor_email, ''),
		       s.weekday, s.start_minute, s.end_minute, s.activity, s.building_code, s.room,
		       b.name, b.x, b.y
		FROM offerings o
		JOIN courses c ON c.code = o.course_code
		LEFT JOIN sessions s ON s.crn = o.crn
		LEFT JOIN buildings b ON b.code = s.building_code
		ORDER BY o.ordinal, s.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make(map[string]*domain.Course)
	instructors := make(map[string]*domain.Instructor)
	byCRN := make(map[string]*domain.CourseOffering)
	var offerings []*domain.CourseOffering

	for rows.Next() {
		var (
			crn, section, mode     string
			code, title, dept      string
			instName, instEmail    string
			weekday                *int16
			startMin, endMin       *int32
			activity, buildingCode *string
			room, buildingName     *string
			bx, by                 *float64
		)
		if err := rows.Scan(
			&crn, &section, &mode,
			&code, &title, &dept,
			&instName, &instEmail,
			&weekday, &startMin, &endMin, &activity, &buildingCode, &room,
			&buildingName, &bx, &by,
		); err != nil {
			return nil, err
		}

		o, ok := byCRN[crn]
		if !ok {
			course, ok := courses[code]
			if !ok {
				if course, err = domain.NewCourse(code, title, dept); err != nil {
					return nil, err
				}
				courses[code] = course
			}
			var instructor *domain.Instructor
			if instName != "" {
				if instructor, ok = instructors[instName]; !ok {
					if instructor, err = domain.NewInstructor(instName, instEmail); err != nil {
						return nil, err
					}
					instructors[instName] = instructor
				}
			}
			if o, err = domain.NewCourseOffering(crn, section, domain.DeliveryMode(mode), course, instructor); err != nil {
				return nil, err
			}
			byCRN[crn] = o
			offerings = append(offerings, o)
		}

		if weekday == nil {
			continue // offering without sessions
		}
		session, err := r.session(*weekday, *startMin, *endMin, *activity, *buildingCode, *room, buildingName, bx, by)
		if err != nil {
			return nil, fmt.Errorf("offering %s: %w", crn, err)
		}
		o.AddSession(session)
	}
	return offerings, rows.Err()
}

func (r *OfferingRepo) session(
	weekday int16, startMin, endMin int32, activity, buildingCode, room string,
	buildingName *string, bx, by *float64,
) (domain.MeetingSession, error) {
	var (
		name string
		loc  *domain.CampusCoordinate
	)
	if buildingName != nil && bx != nil && by != nil {
		name = *buildingName
		c := domain.ClampedCoordinate(*bx, *by)
		loc = &c
	}
	building, err := r.buildings.GetOrCreate(buildingCode, name, loc)
	if err != nil {
		return domain.MeetingSession{}, err
	}
	rm, err := domain.NewRoom(room, building)
	if err != nil {
		return domain.MeetingSession{}, err
	}
	slot, err := domain.NewTimeSlot(time.Duration(startMin)*time.Minute, time.Duration(endMin)*time.Minute)
	if err != nil {
		return domain.MeetingSession{}, err
	}
	return domain.NewMeetingSession(time.Weekday(weekday), slot, domain.ActivityType(activity), rm)
}
