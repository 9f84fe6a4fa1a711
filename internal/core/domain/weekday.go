package domain

import (
	"strings"
	"time"
)

// ValidWeekday reports whether d is one of the seven time.Weekday values.
func ValidWeekday(d time.Weekday) bool {
	return d >= time.Sunday && d <= time.Saturday
}

// ParseWeekday accepts a weekday name in any case. Blank or unrecognized input yields Monday.
func ParseWeekday(s string) time.Weekday {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday
	case "tuesday":
		return time.Tuesday
	case "wednesday":
		return time.Wednesday
	case "thursday":
		return time.Thursday
	case "friday":
		return time.Friday
	case "saturday":
		return time.Saturday
	default:
		return time.Monday
	}
}

// ParseDayLetters expands a compact day token such as "UTR" into weekdays.
// U Sunday, M Monday, T Tuesday, W Wednesday, R or H Thursday, F Friday, S Saturday.
// Unknown letters are ignored.
func ParseDayLetters(token string) []time.Weekday {
	var days []time.Weekday
	for _, ch := range strings.ToUpper(strings.TrimSpace(token)) {
		switch ch {
		case 'U':
			days = append(days, time.Sunday)
		case 'M':
			days = append(days, time.Monday)
		case 'T':
			days = append(days, time.Tuesday)
		case 'W':
			days = append(days, time.Wednesday)
		case 'R', 'H':
			days = append(days, time.Thursday)
		case 'F':
			days = append(days, time.Friday)
		case 'S':
			days = append(days, time.Saturday)
		}
	}
	return days
}

// ParseCRNs splits raw input on whitespace, commas and semicolons, trims each token,
// and drops duplicates while keeping first-seen order. CRNs are case-sensitive.
func ParseCRNs(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' || r == '\v'
	})
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}
