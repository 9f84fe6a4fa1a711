package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports liveness only.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"uptime":  time.Since(startedAt).Round(time.Second).String(),
			"version": "dev",
		})
	}
}

// probe is one readiness dependency. Only gating probes can fail readiness.
type probe struct {
	name   string
	gating bool
	check  func(ctx context.Context) error // nil when the dependency is not configured
}

func (d *Dependencies) probes(c *fiber.Ctx) []probe {
	ps := []probe{{
		name:   "schedule",
		gating: true,
		check: func(ctx context.Context) error {
			ts, err := d.Schedules.TermSchedule(ctx)
			if err == nil {
				c.Set("X-Offerings", strconv.Itoa(ts.Len()))
			}
			return err
		},
	}}
	db := probe{name: "database", gating: true}
	if d.DB != nil {
		db.check = d.DB.Ping
	}
	events := probe{name: "nats"}
	if d.Events != nil {
		events.check = func(context.Context) error { return d.Events.Ping() }
	}
	cache := probe{name: "cache"}
	if d.Cache != nil {
		cache.check = d.Cache.Ping
	}
	return append(ps, db, events, cache)
}

// ReadyHandler loads the term schedule on first call. The schedule and, when
// configured, the database gate readiness; NATS and the cache are reported only.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		checks := make(map[string]string)
		ready := true
		for _, p := range deps.probes(c) {
			if p.check == nil {
				checks[p.name] = "not configured"
				continue
			}
			if err := p.check(ctx); err != nil {
				checks[p.name] = "error: " + err.Error()
				ready = ready && !p.gating
				continue
			}
			checks[p.name] = "ok"
		}

		status, code := "ready", fiber.StatusOK
		if !ready {
			status, code = "not ready", fiber.StatusServiceUnavailable
		}
		c.Set("Cache-Control", "no-cache")
		return c.Status(code).JSON(fiber.Map{"status": status, "checks": checks})
	}
}
