package usecases_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/core/usecases"
)

func TestNewDistanceCalculator_RejectsNonPositive(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN()} {
		if _, err := usecases.NewDistanceCalculator(v); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("%v: expected ErrInvalidArgument, got %v", v, err)
		}
	}
}

func TestDistance_SymmetricAndScaled(t *testing.T) {
	calc, err := usecases.NewDistanceCalculator(1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := mustBuilding(t, "A", 0.1, 0.1)
	b := mustBuilding(t, "B", 0.4, 0.5)

	if d := calc.Distance(a, b); math.Abs(d-500) > 1e-9 {
		t.Errorf("expected 500m, got %v", d)
	}
	if calc.Distance(a, b) != calc.Distance(b, a) {
		t.Error("expected symmetric distance")
	}
	if calc.Distance(a, nil) != 0 || calc.Distance(nil, b) != 0 {
		t.Error("expected 0 for a missing building")
	}
}

func TestCalibrate(t *testing.T) {
	b59 := mustBuilding(t, "59", 0.2, 0.2)
	b11 := mustBuilding(t, "11", 0.2, 0.7)
	ctx := context.Background()

	scale := usecases.Calibrate(ctx, mockLookup{"59": b59, "11": b11}, "59", "11", 350, usecases.DefaultMetersPerUnit)
	if math.Abs(scale-700) > 1e-9 {
		t.Errorf("expected 700 m/unit, got %v", scale)
	}

	if got := usecases.Calibrate(ctx, mockLookup{"59": b59}, "59", "11", 350, usecases.DefaultMetersPerUnit); got != usecases.DefaultMetersPerUnit {
		t.Errorf("expected fallback when a building is missing, got %v", got)
	}

	same := mustBuilding(t, "11", 0.2, 0.2)
	if got := usecases.Calibrate(ctx, mockLookup{"59": b59, "11": same}, "59", "11", 350, usecases.DefaultMetersPerUnit); got != usecases.DefaultMetersPerUnit {
		t.Errorf("expected fallback for coincident buildings, got %v", got)
	}
}
