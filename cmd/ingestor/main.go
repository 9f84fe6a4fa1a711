package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samirrijal/campusroute/internal/adapters/postgres"
	"github.com/samirrijal/campusroute/internal/app"
	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/core/ports"
	"github.com/samirrijal/campusroute/internal/pkg/config"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
)

// The ingestor reads the term spreadsheet and the buildings CSV and stores them
// in Postgres, so the API can run with campus.schedule_source=postgres.
//
//	ingestor [schedule.xlsx [buildings.csv]]
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("campusroute-ingestor")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.ValidateDatabase(); err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	cc := cfg.Campus
	cc.ScheduleSource = config.SourceXLSX
	if len(os.Args) > 1 {
		cc.ScheduleFile = os.Args[1]
	}
	if len(os.Args) > 2 {
		cc.BuildingsFile = os.Args[2]
	}

	ctx := context.Background()

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	start := time.Now()

	campus, err := app.Build(ctx, cc, nil)
	if err != nil {
		log.Fatalf("campus: %v", err)
	}
	ts, err := campus.Schedules.TermSchedule(ctx)
	if err != nil {
		log.Fatalf("schedule: %v", err)
	}

	nb, no, err := ingest(ctx,
		postgres.NewBuildingRepo(db),
		postgres.NewOfferingRepo(db, campus.Buildings),
		campus.Buildings.All(),
		ts.AllOfferings(),
	)
	if err != nil {
		log.Fatalf("ingest: %v", err)
	}
	log.Printf("buildings: %d upserted", nb)
	log.Printf("offerings: %d upserted from %s", no, cc.ScheduleFile)
	log.Printf("ingestion complete in %s", time.Since(start).Round(time.Millisecond))
}

// ingest stores buildings before offerings. Placeholders created while reading
// the sheet are stored too; sessions reference them by code.
func ingest(
	ctx context.Context,
	buildings ports.BuildingRepository,
	offerings ports.OfferingRepository,
	bs []*domain.Building,
	offs []*domain.CourseOffering,
) (int, int, error) {
	if err := buildings.UpsertBatch(ctx, bs); err != nil {
		return 0, 0, fmt.Errorf("buildings: %w", err)
	}
	if err := offerings.UpsertBatch(ctx, offs); err != nil {
		return len(bs), 0, fmt.Errorf("offerings: %w", err)
	}
	return len(bs), len(offs), nil
}
