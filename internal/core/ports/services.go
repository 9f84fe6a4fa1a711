package ports

import (
	"context"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishRoutePlanned(ctx context.Context, event *domain.RoutePlanned) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}

// ScheduleProvider hands out the term schedule, loading it on first use.
type ScheduleProvider interface {
	TermSchedule(ctx context.Context) (*domain.TermSchedule, error)
}
