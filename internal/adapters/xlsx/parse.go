package xlsx

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/samirrijal/campusroute/internal/core/domain"
)

// Column positions in the registrar export. Column 0 is a row number and ignored.
const (
	colCRN = iota + 1
	colCourseCode
	colDepartment
	colSection
	colTitle
	colModality
	colDays
	colStart
	colEnd
	colBuilding
	colRoom
	colInstructor
)

// cell returns the trimmed raw value at index, or "" past the end of a short row.
func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return normalizeNumber(strings.TrimSpace(row[index]))
}

// normalizeNumber turns float renderings of whole numbers ("12345.0", "1.2345E4")
// back into integers so numeric CRNs and sections read as typed.
func normalizeNumber(v string) string {
	if !strings.ContainsAny(v, ".eE") {
		return v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	if r := math.Round(f); math.Abs(f-r) < 0.0001 {
		return strconv.FormatInt(int64(r), 10)
	}
	return v
}

// parseClock reads a time of day written as "HH:MM", "HHMM", "HMM", a spreadsheet
// day fraction in [0,1), or a date-time serial whose fraction holds the time.
func parseClock(raw string) (time.Duration, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	if !strings.Contains(raw, ":") {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			switch {
			case v >= 0 && v < 1:
				return fromDayFraction(v), true
			case v >= 1 && v != math.Trunc(v) && strings.Contains(raw, "."):
				return fromDayFraction(v - math.Trunc(v)), true
			case v >= 0:
				return parseHHMM(fmt.Sprintf("%04d", int(math.Round(v))))
			default:
				return 0, false
			}
		}
	}

	digits := strings.TrimSpace(strings.ReplaceAll(raw, ":", ""))
	if len(digits) == 3 {
		digits = "0" + digits
	}
	return parseHHMM(digits)
}

func fromDayFraction(v float64) time.Duration {
	secs := int(math.Round(v * 24 * 60 * 60))
	h := secs / 3600
	m := (secs % 3600) / 60
	return domain.ClockTime(h%24, m%60)
}

func parseHHMM(v string) (time.Duration, bool) {
	if len(v) != 4 {
		return 0, false
	}
	h, err := strconv.Atoi(v[:2])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(v[2:])
	if err != nil {
		return 0, false
	}
	if h < 0 || h >= 24 || m < 0 || m >= 60 {
		return 0, false
	}
	return domain.ClockTime(h, m), true
}
