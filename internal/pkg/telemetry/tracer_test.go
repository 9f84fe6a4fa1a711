package telemetry_test

import (
	"context"
	"testing"

	"github.com/samirrijal/campusroute/internal/pkg/telemetry"
)

func TestStart_NoProvider(t *testing.T) {
	ctx, span := telemetry.Start(context.Background(), "test")
	defer span.End()
	if ctx == nil {
		t.Fatal("expected a context")
	}
}
