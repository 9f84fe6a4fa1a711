package http

import (
	natsadapter "github.com/samirrijal/campusroute/internal/adapters/nats"
	"github.com/samirrijal/campusroute/internal/adapters/postgres"
	"github.com/samirrijal/campusroute/internal/adapters/valkey"
	"github.com/samirrijal/campusroute/internal/core/ports"
	"github.com/samirrijal/campusroute/internal/core/usecases"
)

// RenderLimits bounds the map sizes a client may request.
type RenderLimits struct {
	DefaultWidth  int
	DefaultHeight int
	MaxWidth      int
	MaxHeight     int
}

// RouteFeed streams raw route events published on a NATS subject.
type RouteFeed interface {
	SubscribeRoutes(subject string, fn func(data []byte)) (cancel func(), err error)
}

// Dependencies holds all services needed by HTTP handlers.
// DB, Events and Cache are optional and only consulted by readiness checks.
// Without a Feed the route event socket answers 503.
type Dependencies struct {
	Schedules     ports.ScheduleProvider
	Schedule      *usecases.ScheduleService
	Visualization *usecases.VisualizationService
	Buildings     ports.BuildingRegistry
	Render        RenderLimits
	DB            *postgres.DB
	Events        *natsadapter.Publisher
	Cache         *valkey.Cache
	Feed          RouteFeed
}

func (d *Dependencies) limits() RenderLimits {
	l := d.Render
	if l.DefaultWidth <= 0 {
		l.DefaultWidth = 1280
	}
	if l.DefaultHeight <= 0 {
		l.DefaultHeight = 960
	}
	if l.MaxWidth < l.DefaultWidth {
		l.MaxWidth = l.DefaultWidth
	}
	if l.MaxHeight < l.DefaultHeight {
		l.MaxHeight = l.DefaultHeight
	}
	return l
}
