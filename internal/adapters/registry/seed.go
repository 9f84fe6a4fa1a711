package registry

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/pkg/logging"
)

// Seed reads code,name,pixelX,pixelY rows (with a header) and registers each building,
// normalizing pixels against the map image size and clamping into [0,1].
// Short and blank rows are skipped; an unparsable coordinate fails the seed.
func Seed(ctx context.Context, r *Registry, src io.Reader, mapWidth, mapHeight float64) (int, error) {
	if mapWidth <= 0 || mapHeight <= 0 {
		return 0, fmt.Errorf("%w: map image dimensions must be positive", domain.ErrInvalidArgument)
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, fmt.Errorf("read header: %w", err)
	}

	log := logging.FromContext(ctx)
	seeded := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return seeded, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) < 4 {
			log.Debug("skipping short building row", "line", line)
			continue
		}

		code := strings.TrimSpace(record[0])
		if code == "" {
			continue
		}
		px, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return seeded, fmt.Errorf("line %d: pixel x: %w", line, err)
		}
		py, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			return seeded, fmt.Errorf("line %d: pixel y: %w", line, err)
		}

		b, err := domain.NewBuilding(code, record[1], domain.ClampedCoordinate(px/mapWidth, py/mapHeight))
		if err != nil {
			return seeded, fmt.Errorf("line %d: %w", line, err)
		}
		r.Register(b)
		seeded++
	}

	log.Info("buildings seeded", "count", seeded)
	return seeded, nil
}

// SeedFile opens path and seeds from it.
func SeedFile(ctx context.Context, r *Registry, path string, mapWidth, mapHeight float64) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open buildings file: %w", err)
	}
	defer f.Close()
	return Seed(ctx, r, f, mapWidth, mapHeight)
}
