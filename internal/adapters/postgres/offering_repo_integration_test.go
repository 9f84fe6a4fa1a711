//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/samirrijal/campusroute/internal/adapters/postgres"
	"github.com/samirrijal/campusroute/internal/adapters/registry"
	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/pkg/config"
)

// setupTestDB connects to the database configured through CAMPUSROUTE_DATABASE_*.
// The schema in migrations/ must already be applied.
func setupTestDB(t *testing.T) *postgres.DB {
	cfg, err := config.Load("campusroute-test")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.ValidateDatabase(); err != nil {
		t.Fatalf("database config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := postgres.New(ctx, cfg.Database.DSN(), 4)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func offering(t *testing.T, crn, code string, b *domain.Building) *domain.CourseOffering {
	t.Helper()
	course, err := domain.NewCourse(code, "Course "+code, "ENG")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o, err := domain.NewCourseOffering(crn, "01", domain.DeliveryLecture, course, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	room, err := domain.NewRoom("101", b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slot, err := domain.NewTimeSlot(domain.ClockTime(9, 0), domain.ClockTime(9, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := domain.NewMeetingSession(time.Monday, slot, domain.ActivityLecture, room)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o.AddSession(s)
	return o
}

func TestOfferingRepo_Integration_ReingestDropsRemovedOfferings(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	reg := registry.New()
	b, err := reg.GetOrCreate("A", "Library", &domain.CampusCoordinate{X: 0.25, Y: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := postgres.NewBuildingRepo(db).UpsertBatch(ctx, reg.All()); err != nil {
		t.Fatalf("seed buildings: %v", err)
	}

	repo := postgres.NewOfferingRepo(db, reg)
	kept := offering(t, "20001", "CS 101", b)
	dropped := offering(t, "20002", "CS 202", b)

	if err := repo.UpsertBatch(ctx, []*domain.CourseOffering{kept, dropped}); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	if err := repo.UpsertBatch(ctx, []*domain.CourseOffering{kept}); err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	loaded, err := repo.LoadOfferings(ctx)
	if err != nil {
		t.Fatalf("load offerings: %v", err)
	}
	if len(loaded) != 1 || loaded[0].CRN() != "20001" {
		t.Fatalf("expected only offering 20001, got %d offerings", len(loaded))
	}
	if n := len(loaded[0].Sessions()); n != 1 {
		t.Errorf("expected 1 session for 20001, got %d", n)
	}

	var sessions, courses int
	if err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM sessions WHERE crn = $1`, "20002").Scan(&sessions); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if sessions != 0 {
		t.Errorf("expected sessions of 20002 to be deleted, got %d", sessions)
	}
	if err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM courses WHERE code = $1`, "CS 202").Scan(&courses); err != nil {
		t.Fatalf("count courses: %v", err)
	}
	if courses != 0 {
		t.Errorf("expected course CS 202 to be deleted, got %d", courses)
	}
}
