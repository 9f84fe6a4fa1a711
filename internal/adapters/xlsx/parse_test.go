package xlsx

import (
	"testing"
	"time"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
		ok   bool
	}{
		{"09:30", domain.ClockTime(9, 30), true},
		{"930", domain.ClockTime(9, 30), true},
		{"0930", domain.ClockTime(9, 30), true},
		{"1415", domain.ClockTime(14, 15), true},
		{"0.375", domain.ClockTime(9, 0), true},
		{"0.5", domain.ClockTime(12, 0), true},
		{"45000.75", domain.ClockTime(18, 0), true},
		{"", 0, false},
		{"TBA", 0, false},
		{"2460", 0, false},
		{"25:00", 0, false},
		{"12345", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseClock(tt.raw)
		if ok != tt.ok {
			t.Errorf("parseClock(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseClock(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeNumber(t *testing.T) {
	tests := map[string]string{
		"12345":     "12345",
		"12345.0":   "12345",
		"1.2345E4":  "12345",
		"1.5":       "1.5",
		"ABC.1":     "ABC.1",
		"Dr. Demir": "Dr. Demir",
	}
	for in, want := range tests {
		if got := normalizeNumber(in); got != want {
			t.Errorf("normalizeNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCell_ShortRow(t *testing.T) {
	row := []string{"1", " 10001 "}
	if got := cell(row, colCRN); got != "10001" {
		t.Errorf("expected trimmed CRN, got %q", got)
	}
	if got := cell(row, colInstructor); got != "" {
		t.Errorf("expected blank past end of row, got %q", got)
	}
}
