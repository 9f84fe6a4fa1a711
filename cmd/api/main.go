package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/samirrijal/campusroute/internal/adapters/http"
	natsadapter "github.com/samirrijal/campusroute/internal/adapters/nats"
	"github.com/samirrijal/campusroute/internal/adapters/postgres"
	"github.com/samirrijal/campusroute/internal/adapters/valkey"
	"github.com/samirrijal/campusroute/internal/app"
	"github.com/samirrijal/campusroute/internal/core/usecases"
	"github.com/samirrijal/campusroute/internal/pkg/config"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
	"github.com/samirrijal/campusroute/internal/pkg/metrics"
	"github.com/samirrijal/campusroute/internal/pkg/telemetry"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load("campusroute-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Database (required only for the postgres schedule source)
	var db *postgres.DB
	if cfg.Campus.ScheduleSource == config.SourcePostgres {
		db, err = postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		go reportPoolStats(ctx, db)
	}

	campus, err := app.Build(ctx, cfg.Campus, db)
	if err != nil {
		log.Fatalf("campus: %v", err)
	}

	var opts []usecases.VisualizationOption

	// Cache
	var cache *valkey.Cache
	if cfg.Valkey.Addr != "" {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable, map caching disabled", "error", err)
			cache = nil
		} else {
			defer cache.Close()
			opts = append(opts, usecases.WithMapCache(cache, cfg.Render.CacheTTLSeconds))
		}
	}

	// NATS
	var events *natsadapter.Publisher
	if cfg.NATS.URL != "" {
		events, err = natsadapter.NewPublisher(cfg.NATS.URL, cfg.NATS.Stream)
		if err != nil {
			slog.Warn("nats unavailable, route events disabled", "error", err)
			events = nil
		} else {
			defer events.Close()
			opts = append(opts, usecases.WithEvents(events))
		}
	}

	// Live route events for WebSocket clients
	var feed http.RouteFeed
	if cfg.NATS.URL != "" {
		sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable, route event socket disabled", "error", err)
		} else {
			defer sub.Close()
			feed = sub
		}
	}

	// Warm the schedule so the first request does not pay for ingestion.
	go func() {
		if _, err := campus.Schedules.TermSchedule(ctx); err != nil {
			slog.Error("schedule preload failed", "error", err)
		}
	}()

	deps := &http.Dependencies{
		Schedules:     campus.Schedules,
		Schedule:      campus.Schedule,
		Visualization: campus.Visualization(opts...),
		Buildings:     campus.Buildings,
		Render: http.RenderLimits{
			DefaultWidth:  cfg.Render.Width,
			DefaultHeight: cfg.Render.Height,
			MaxWidth:      cfg.Render.MaxWidth,
			MaxHeight:     cfg.Render.MaxHeight,
		},
		DB:     db,
		Events: events,
		Cache:  cache,
		Feed:   feed,
	}

	// Fiber
	fiberApp := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "CampusRoute API",
	})
	fiberApp.Use(recover.New())
	if cfg.Log.Format == "text" {
		// Colored one-line access log for local runs; JSON deployments rely on the slog access log.
		fiberApp.Use(logger.New())
	}
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept",
		ExposeHeaders: "X-Missing-CRNs, ETag, Link",
		MaxAge:        3600,
	}))

	http.SetupRoutes(fiberApp, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "schedule_source", cfg.Campus.ScheduleSource)
		if err := fiberApp.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

// reportPoolStats samples pgxpool stats into the DB pool gauges.
func reportPoolStats(ctx context.Context, db *postgres.DB) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(db.Pool.Stat())
		}
	}
}
