// Package app assembles the campus pipeline (building registry, schedule source,
// calibrated planner and renderer) shared by the API server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"

	"github.com/fogleman/gg"

	"github.com/samirrijal/campusroute/internal/adapters/postgres"
	"github.com/samirrijal/campusroute/internal/adapters/registry"
	"github.com/samirrijal/campusroute/internal/adapters/xlsx"
	"github.com/samirrijal/campusroute/internal/core/ports"
	"github.com/samirrijal/campusroute/internal/core/usecases"
	"github.com/samirrijal/campusroute/internal/pkg/config"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
	"github.com/samirrijal/campusroute/internal/render"
)

// Campus is the wired pipeline.
type Campus struct {
	Buildings     *registry.Registry
	Schedules     *usecases.ScheduleRepository
	Schedule      *usecases.ScheduleService
	Planner       *usecases.RoutePlanner
	Renderer      *render.Renderer
	Canvas        *render.Canvas
	Background    image.Image
	MetersPerUnit float64
}

// Build seeds buildings, picks the schedule source and calibrates distances.
// db is only required for the postgres source.
//
// Buildings must be registered before the schedule loads: sessions capture the
// registry's building pointers at load time.
func Build(ctx context.Context, cc config.CampusConfig, db *postgres.DB) (*Campus, error) {
	log := logging.FromContext(ctx)

	background, mapW, mapH := loadBackground(ctx, cc)

	reg := registry.New()
	if cc.ScheduleSource == config.SourcePostgres {
		if db == nil {
			return nil, fmt.Errorf("postgres schedule source needs a database")
		}
		stored, err := postgres.NewBuildingRepo(db).List(ctx)
		if err != nil {
			return nil, fmt.Errorf("load buildings: %w", err)
		}
		for _, b := range stored {
			reg.Register(b)
		}
	}
	if cc.BuildingsFile != "" {
		_, err := registry.SeedFile(ctx, reg, cc.BuildingsFile, mapW, mapH)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Warn("buildings file not found, buildings will be placed at the map center", "path", cc.BuildingsFile)
		case err != nil:
			return nil, fmt.Errorf("seed buildings: %w", err)
		}
	}

	var source ports.OfferingSource
	switch cc.ScheduleSource {
	case config.SourcePostgres:
		source = postgres.NewOfferingRepo(db, reg)
	default:
		source = xlsx.NewSource(cc.ScheduleFile, reg)
	}
	schedules := usecases.NewScheduleRepository(source)

	scale := usecases.Calibrate(ctx, reg, cc.CalibrationFrom, cc.CalibrationTo, cc.CalibrationMeters, cc.DefaultMetersPerUnit)
	calc, err := usecases.NewDistanceCalculator(scale)
	if err != nil {
		return nil, fmt.Errorf("distance: %w", err)
	}

	renderer, canvas, err := render.NewPipeline()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return &Campus{
		Buildings:     reg,
		Schedules:     schedules,
		Schedule:      usecases.NewScheduleService(schedules),
		Planner:       usecases.NewRoutePlanner(calc),
		Renderer:      renderer,
		Canvas:        canvas,
		Background:    background,
		MetersPerUnit: scale,
	}, nil
}

// Visualization builds the visualization service over this campus.
func (c *Campus) Visualization(opts ...usecases.VisualizationOption) *usecases.VisualizationService {
	return usecases.NewVisualizationService(c.Schedule, c.Planner, c.Renderer, c.Canvas, c.Background, opts...)
}

// loadBackground reads the campus map. Without it, routes are drawn on a blank
// surface and pixel coordinates are normalized against the configured map size.
func loadBackground(ctx context.Context, cc config.CampusConfig) (image.Image, float64, float64) {
	w, h := float64(cc.MapWidth), float64(cc.MapHeight)
	if cc.MapImage == "" {
		return nil, w, h
	}
	img, err := gg.LoadImage(cc.MapImage)
	if err != nil {
		logging.FromContext(ctx).Warn("campus map unavailable", "path", cc.MapImage, "error", err)
		return nil, w, h
	}
	b := img.Bounds()
	return img, float64(b.Dx()), float64(b.Dy())
}
