package registry_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/samirrijal/campusroute/internal/adapters/registry"
	"github.com/samirrijal/campusroute/internal/core/domain"
)

func TestGetOrCreate_Placeholder(t *testing.T) {
	r := registry.New()
	b, err := r.GetOrCreate(" 22 ", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Code != "22" || b.Location != domain.Center {
		t.Errorf("expected centered placeholder 22, got %+v", b)
	}

	again, _ := r.GetOrCreate("22", "Other", &domain.CampusCoordinate{X: 0.1, Y: 0.1})
	if again != b {
		t.Error("expected the same instance per code")
	}
	if _, err := r.GetOrCreate("  ", "", nil); err == nil {
		t.Error("expected error for blank code")
	}
}

func TestGet_CaseSensitive(t *testing.T) {
	r := registry.New()
	_, _ = r.GetOrCreate("B7", "", nil)
	if _, ok := r.Get("b7"); ok {
		t.Error("expected case-sensitive lookup")
	}
	if _, ok := r.Get(" B7"); !ok {
		t.Error("expected trimmed lookup to hit")
	}
}

func TestRegister_OverwritesKeepsOrder(t *testing.T) {
	r := registry.New()
	_, _ = r.GetOrCreate("A", "", nil)
	_, _ = r.GetOrCreate("B", "", nil)
	seeded, _ := domain.NewBuilding("A", "Library", domain.CampusCoordinate{X: 0.2, Y: 0.3})
	r.Register(seeded)

	all := r.All()
	if len(all) != 2 || all[0] != seeded || all[1].Code != "B" {
		t.Errorf("unexpected registry contents %v", all)
	}
}

func TestGetOrCreate_Concurrent(t *testing.T) {
	r := registry.New()
	var wg sync.WaitGroup
	got := make([]*domain.Building, 32)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], _ = r.GetOrCreate("59", "", nil)
		}(i)
	}
	wg.Wait()
	for _, b := range got {
		if b != got[0] {
			t.Fatal("expected one instance across goroutines")
		}
	}
}

func TestSeed(t *testing.T) {
	csv := "code,name,pixelX,pixelY\n" +
		"22,Engineering,400,300\n" +
		"\n" +
		"59,Library\n" +
		"11,Stadium,1000,-20\n"

	r := registry.New()
	n, err := registry.Seed(context.Background(), r, strings.NewReader(csv), 800, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 buildings, got %d", n)
	}

	b22, _ := r.Get("22")
	if b22.Name != "Engineering" || b22.Location.X != 0.5 || b22.Location.Y != 0.5 {
		t.Errorf("unexpected building 22: %+v", b22)
	}
	b11, _ := r.Get("11")
	if b11.Location.X != 1 || b11.Location.Y != 0 {
		t.Errorf("expected clamped coordinates, got %+v", b11.Location)
	}
}

func TestSeed_BadNumber(t *testing.T) {
	_, err := registry.Seed(context.Background(), registry.New(), strings.NewReader("h\n22,X,abc,1\n"), 800, 600)
	if err == nil {
		t.Error("expected parse error")
	}
}

func TestSeed_InvalidMapSize(t *testing.T) {
	if _, err := registry.Seed(context.Background(), registry.New(), strings.NewReader(""), 0, 600); err == nil {
		t.Error("expected error for zero width")
	}
}
