package ports

import (
	"context"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

// OfferingSource produces the term's offerings. It is the ingestion collaborator:
// a spreadsheet, a database, or a fixture.
type OfferingSource interface {
	LoadOfferings(ctx context.Context) ([]*domain.CourseOffering, error)
}

// BuildingRegistry creates buildings once per code and hands out the shared instance.
type BuildingRegistry interface {
	// GetOrCreate returns the building for code, creating it when unseen.
	// A nil location creates a placeholder at the map center.
	GetOrCreate(code, name string, location *domain.CampusCoordinate) (*domain.Building, error)
	Get(code string) (*domain.Building, bool)
	All() []*domain.Building
}

// BuildingRepository persists buildings.
type BuildingRepository interface {
	UpsertBatch(ctx context.Context, buildings []*domain.Building) error
	GetByCode(ctx context.Context, code string) (*domain.Building, error)
	List(ctx context.Context) ([]*domain.Building, error)
}

// OfferingRepository persists offerings and their sessions. UpsertBatch replaces
// the whole stored term.
type OfferingRepository interface {
	UpsertBatch(ctx context.Context, offerings []*domain.CourseOffering) error
	OfferingSource
}
