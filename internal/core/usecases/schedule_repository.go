package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/core/ports"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
	"github.com/samirrijal/campusroute/internal/pkg/metrics"
	"github.com/samirrijal/campusroute/internal/pkg/telemetry"
)

// ScheduleRepository loads the term schedule from its source once and serves
// the cached result afterwards. A failed load is not cached.
type ScheduleRepository struct {
	source ports.OfferingSource

	mu       sync.Mutex
	schedule *domain.TermSchedule
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(source ports.OfferingSource) *ScheduleRepository {
	return &ScheduleRepository{source: source}
}

// TermSchedule returns the memoized schedule, loading it under the lock on first use.
// Concurrent callers block until the first load finishes and share its result.
func (r *ScheduleRepository) TermSchedule(ctx context.Context) (*domain.TermSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schedule != nil {
		return r.schedule, nil
	}

	ctx, span := telemetry.Start(ctx, "schedule.load")
	defer span.End()

	log := logging.FromContext(ctx)
	offerings, err := r.source.LoadOfferings(ctx)
	if err != nil {
		metrics.ScheduleLoads.WithLabelValues("error").Inc()
		span.RecordError(err)
		log.Error("schedule load failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrLoadFailed, err)
	}

	r.schedule = domain.NewTermSchedule(offerings)
	metrics.ScheduleLoads.WithLabelValues("ok").Inc()
	metrics.OfferingsLoaded.Set(float64(r.schedule.Len()))
	log.Info("schedule loaded", "offerings", r.schedule.Len())
	return r.schedule, nil
}

// Loaded reports whether a schedule has been loaded successfully.
func (r *ScheduleRepository) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.schedule != nil
}
