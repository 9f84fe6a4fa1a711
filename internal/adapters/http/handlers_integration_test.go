//go:build integration
// +build integration

package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	handler "github.com/samirrijal/campusroute/internal/adapters/http"
	"github.com/samirrijal/campusroute/internal/adapters/postgres"
	"github.com/samirrijal/campusroute/internal/adapters/registry"
	"github.com/samirrijal/campusroute/internal/core/usecases"
	"github.com/samirrijal/campusroute/internal/pkg/config"
	"github.com/samirrijal/campusroute/internal/render"
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

// seedCampus stores the in-memory fixture through the repositories, the same path
// the ingestor takes.
func seedCampus(t *testing.T, db *postgres.DB) {
	ctx := context.Background()
	reg, offerings := campus(t)
	if err := postgres.NewBuildingRepo(db).UpsertBatch(ctx, reg.All()); err != nil {
		t.Fatalf("seed buildings: %v", err)
	}
	if err := postgres.NewOfferingRepo(db, reg).UpsertBatch(ctx, offerings); err != nil {
		t.Fatalf("seed offerings: %v", err)
	}
}

// setupTestDeps wires the Postgres schedule source into the real services.
func setupTestDeps(t *testing.T, db *postgres.DB) *handler.Dependencies {
	reg := registry.New()
	schedules := usecases.NewScheduleRepository(postgres.NewOfferingRepo(db, reg))
	schedule := usecases.NewScheduleService(schedules)

	calc, err := usecases.NewDistanceCalculator(usecases.DefaultMetersPerUnit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	renderer, canvas, err := render.NewPipeline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &handler.Dependencies{
		Schedules:     schedules,
		Schedule:      schedule,
		Visualization: usecases.NewVisualizationService(schedule, usecases.NewRoutePlanner(calc), renderer, canvas, nil),
		Buildings:     reg,
		DB:            db,
	}
}

func TestRoute_Integration_PostgresSource(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()
	seedCampus(t, db)

	app := setupApp(setupTestDeps(t, db))

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/routes?crns=10001,10002&day=monday", nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var r struct {
		TotalDistanceMeters float64 `json:"total_distance_meters"`
		Segments            []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"segments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(r.Segments) != 1 || r.Segments[0].From != "A" || r.Segments[0].To != "B" {
		t.Errorf("unexpected segments: %+v", r.Segments)
	}
	if r.TotalDistanceMeters < 449.999 || r.TotalDistanceMeters > 450.001 {
		t.Errorf("expected 450 m, got %f", r.TotalDistanceMeters)
	}
}

func TestReady_Integration_WithDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	defer db.Close()
	seedCampus(t, db)

	app := setupApp(setupTestDeps(t, db))

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/ready", nil), -1)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
