package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

// BuildingRepo implements ports.BuildingRepository with pgx.
type BuildingRepo struct {
	db *DB
}

// NewBuildingRepo creates a new BuildingRepo.
func NewBuildingRepo(db *DB) *BuildingRepo {
	return &BuildingRepo{db: db}
}

const upsertBuildingSQL = `
	INSERT INTO buildings (code, name, x, y)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (code) DO UPDATE
	SET name = EXCLUDED.name, x = EXCLUDED.x, y = EXCLUDED.y, updated_at = now()
`

// UpsertBatch inserts many buildings using pgx.Batch.
func (r *BuildingRepo) UpsertBatch(ctx context.Context, buildings []*domain.Building) error {
	if len(buildings) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, b := range buildings {
		batch.Queue(upsertBuildingSQL, b.Code, b.Name, b.Location.X, b.Location.Y)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range buildings {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// GetByCode returns domain.ErrNotFound when no building has the code.
func (r *BuildingRepo) GetByCode(ctx context.Context, code string) (*domain.Building, error) {
	var (
		name string
		x, y float64
	)
	err := r.db.Pool.QueryRow(ctx, `
		SELECT code, name, x, y FROM buildings WHERE code = $1
	`, code).Scan(&code, &name, &x, &y)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("building %s: %w", code, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return domain.NewBuilding(code, name, domain.ClampedCoordinate(x, y))
}

// List returns all buildings ordered by code.
func (r *BuildingRepo) List(ctx context.Context) ([]*domain.Building, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT code, name, x, y FROM buildings ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buildings []*domain.Building
	for rows.Next() {
		var (
			code, name string
			x, y       float64
		)
		if err := rows.Scan(&code, &name, &x, &y); err != nil {
			return nil, err
		}
		b, err := domain.NewBuilding(code, name, domain.ClampedCoordinate(x, y))
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}
