package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/pkg/geospatial"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
)

// DefaultMetersPerUnit is the scale used when calibration is impossible.
const DefaultMetersPerUnit = 900.0

// DistanceCalculator converts normalized map distance into meters.
type DistanceCalculator struct {
	metersPerUnit float64
}

// NewDistanceCalculator requires a positive scale factor.
func NewDistanceCalculator(metersPerUnit float64) (*DistanceCalculator, error) {
	if !(metersPerUnit > 0) {
		return nil, fmt.Errorf("%w: meters per unit must be positive, got %v", domain.ErrInvalidArgument, metersPerUnit)
	}
	return &DistanceCalculator{metersPerUnit: metersPerUnit}, nil
}

func (d *DistanceCalculator) MetersPerUnit() float64 { return d.metersPerUnit }

// Distance returns the straight-line walking distance in meters. A nil building yields 0.
func (d *DistanceCalculator) Distance(a, b *domain.Building) float64 {
	if a == nil || b == nil {
		return 0
	}
	return geospatial.Euclidean(a.Location.X, a.Location.Y, b.Location.X, b.Location.Y) * d.metersPerUnit
}

// BuildingLookup finds a building by code.
type BuildingLookup interface {
	Get(code string) (*domain.Building, bool)
}

// Calibrate derives meters-per-unit from one known real-world distance between two
// reference buildings. It returns fallback when either building is unknown or the
// two sit on the same point.
func Calibrate(ctx context.Context, buildings BuildingLookup, fromCode, toCode string, knownMeters, fallback float64) float64 {
	log := logging.FromContext(ctx)

	from, okFrom := buildings.Get(fromCode)
	to, okTo := buildings.Get(toCode)
	if !okFrom || !okTo {
		log.Warn("calibration buildings missing, using default scale",
			"from", fromCode, "to", toCode, "meters_per_unit", fallback)
		return fallback
	}

	sep := geospatial.Euclidean(from.Location.X, from.Location.Y, to.Location.X, to.Location.Y)
	if sep < geospatial.Epsilon {
		log.Warn("calibration buildings coincide, using default scale",
			"from", fromCode, "to", toCode, "meters_per_unit", fallback)
		return fallback
	}

	scale := knownMeters / sep
	log.Info("distance calibrated", "from", fromCode, "to", toCode, "meters_per_unit", scale)
	return scale
}
