package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

// Registry implements ports.BuildingRegistry in memory. Codes are trimmed and
// matched case-sensitively.
type Registry struct {
	mu     sync.RWMutex
	byCode map[string]*domain.Building
	order  []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{byCode: make(map[string]*domain.Building)}
}

// GetOrCreate returns the building for code or creates it. A nil location creates a
// placeholder at the map center. An existing building is returned unchanged even
// when a different location is passed.
func (r *Registry) GetOrCreate(code, name string, location *domain.CampusCoordinate) (*domain.Building, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: building code is required", domain.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if b, ok := r.byCode[code]; ok {
		return b, nil
	}

	loc := domain.Center
	if location != nil {
		loc = *location
	}
	b, err := domain.NewBuilding(code, name, loc)
	if err != nil {
		return nil, err
	}
	r.put(b)
	return b, nil
}

// Register stores a fully described building, replacing any placeholder with the same code.
// Buildings already handed out keep pointing at the old value, so seed before loading schedules.
func (r *Registry) Register(b *domain.Building) {
	if b == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(b)
}

func (r *Registry) put(b *domain.Building) {
	if _, ok := r.byCode[b.Code]; !ok {
		r.order = append(r.order, b.Code)
	}
	r.byCode[b.Code] = b
}

// Get looks up a building without creating one.
func (r *Registry) Get(code string) (*domain.Building, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byCode[strings.TrimSpace(code)]
	return b, ok
}

// All returns every building in first-registration order.
func (r *Registry) All() []*domain.Building {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Building, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.byCode[code])
	}
	return out
}

// Len returns the number of registered buildings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
