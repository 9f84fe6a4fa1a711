package usecases

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/core/ports"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
	"github.com/samirrijal/campusroute/internal/pkg/metrics"
	"github.com/samirrijal/campusroute/internal/pkg/telemetry"
	"github.com/samirrijal/campusroute/internal/render"
	"go.opentelemetry.io/otel/attribute"
)

// RoutePlan is a planned day together with the CRNs that could not be resolved.
type RoutePlan struct {
	Itinerary   *domain.DailyItinerary          `json:"itinerary"`
	Model       *domain.RouteVisualizationModel `json:"model"`
	MissingCRNs []string                        `json:"missing_crns"`
}

// VisualizationService plans a student's day and renders it onto the campus map.
type VisualizationService struct {
	schedules  *ScheduleService
	planner    *RoutePlanner
	renderer   *render.Renderer
	canvas     *render.Canvas
	background image.Image
	cache      ports.CacheService
	events     ports.EventPublisher
	cacheTTL   int
	now        func() time.Time
}

// VisualizationOption configures optional collaborators.
type VisualizationOption func(*VisualizationService)

// WithMapCache caches rendered PNGs for ttlSeconds.
func WithMapCache(cache ports.CacheService, ttlSeconds int) VisualizationOption {
	return func(s *VisualizationService) {
		s.cache = cache
		s.cacheTTL = ttlSeconds
	}
}

// WithEvents publishes a RoutePlanned event for every plan.
func WithEvents(events ports.EventPublisher) VisualizationOption {
	return func(s *VisualizationService) { s.events = events }
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) VisualizationOption {
	return func(s *VisualizationService) { s.now = now }
}

// NewVisualizationService creates a new VisualizationService. background may be nil.
func NewVisualizationService(
	schedules *ScheduleService,
	planner *RoutePlanner,
	renderer *render.Renderer,
	canvas *render.Canvas,
	background image.Image,
	opts ...VisualizationOption,
) *VisualizationService {
	s := &VisualizationService{
		schedules:  schedules,
		planner:    planner,
		renderer:   renderer,
		canvas:     canvas,
		background: background,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan builds the route model for crns on day. It fails with ErrNoSessions when
// none of the resolved offerings meet that day.
func (s *VisualizationService) Plan(ctx context.Context, crns []string, day time.Weekday) (*RoutePlan, error) {
	if len(crns) == 0 {
		return nil, fmt.Errorf("%w: at least one CRN is required", domain.ErrInvalidArgument)
	}

	ctx, span := telemetry.Start(ctx, "route.plan")
	defer span.End()
	span.SetAttributes(attribute.String("day", day.String()), attribute.Int("crns", len(crns)))

	it, missing, err := s.schedules.DailyItinerary(ctx, crns, day)
	if err != nil {
		return nil, err
	}
	if it.IsEmpty() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoSessions, domain.NoSessionsMessage(day))
	}

	model, err := s.planner.BuildVisualization(it)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("plan route: %w", err)
	}
	metrics.RoutesPlanned.WithLabelValues(day.String()).Inc()
	metrics.RouteDistance.Observe(model.Path.TotalDistanceMeters)

	logging.FromContext(ctx).Info("route planned",
		"day", day.String(),
		"stops", len(model.Path.Stops),
		"segments", len(model.Path.Segments),
		"distance_m", model.Path.TotalDistanceMeters,
	)

	s.publish(ctx, model, crns, missing)

	if missing == nil {
		missing = []string{}
	}
	return &RoutePlan{Itinerary: it, Model: model, MissingCRNs: missing}, nil
}

func (s *VisualizationService) publish(ctx context.Context, model *domain.RouteVisualizationModel, crns, missing []string) {
	if s.events == nil {
		return
	}
	ev := domain.NewRoutePlanned(model, crns, missing, s.now())
	if err := s.events.PublishRoutePlanned(ctx, &ev); err != nil {
		metrics.EventPublishErrors.Inc()
		logging.FromContext(ctx).Warn("publish route event failed", "error", err)
	}
}

// RenderPNG plans the route and draws it at width x height. Results are cached by
// CRNs, day and size.
func (s *VisualizationService) RenderPNG(ctx context.Context, crns []string, day time.Weekday, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface size %dx%d", domain.ErrInvalidArgument, width, height)
	}

	cacheKey := fmt.Sprintf("routes:png:%s:%s:%dx%d", strings.Join(crns, ","), day, width, height)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && len(data) > 0 {
			metrics.CacheHits.WithLabelValues("route_png").Inc()
			return data, nil
		}
		metrics.CacheMisses.WithLabelValues("route_png").Inc()
	}

	plan, err := s.Plan(ctx, crns, day)
	if err != nil {
		return nil, err
	}

	data, err := s.Draw(ctx, plan.Model, width, height)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, data, s.cacheTTL)
	}
	return data, nil
}

// Draw renders a model as PNG. A nil model draws the bare map.
func (s *VisualizationService) Draw(ctx context.Context, model *domain.RouteVisualizationModel, width, height int) ([]byte, error) {
	_, span := telemetry.Start(ctx, "route.render")
	defer span.End()

	start := time.Now()
	cmds := s.renderer.Render(model, render.Size{Width: float64(width), Height: float64(height)}, s.background)

	var buf bytes.Buffer
	if err := s.canvas.EncodePNG(&buf, cmds, width, height); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("encode route map: %w", err)
	}
	metrics.RenderDuration.Observe(time.Since(start).Seconds())
	return buf.Bytes(), nil
}
