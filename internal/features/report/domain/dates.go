package domain

import (
	"strconv"
	"strings"
	"time"
)

var genericLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseFlexibleDate parses the two date shapes found in shipment exports:
// dd/mm/yyyy with an optional hh:mm:ss suffix, and ISO-like strings.
// When the slash-delimited branch fails integer parsing, it falls through to
// the generic layouts rather than rejecting the value; the historical exports
// relied on that.
func ParseFlexibleDate(input string) (time.Time, bool) {
	str := strings.TrimSpace(input)
	if str == "" {
		return time.Time{}, false
	}

	if strings.Contains(str, "/") {
		datePart, timePart, _ := strings.Cut(str, " ")
		parts := strings.Split(datePart, "/")
		if len(parts) == 3 {
			dd, errDay := strconv.Atoi(parts[0])
			mm, errMonth := strconv.Atoi(parts[1])
			yyyy, errYear := strconv.Atoi(parts[2])
			if errDay == nil && errMonth == nil && errYear == nil {
				var hh, mi, ss int
				if timePart != "" {
					clock := strings.Split(timePart, ":")
					hh = atoiOrZero(clock, 0)
					mi = atoiOrZero(clock, 1)
					ss = atoiOrZero(clock, 2)
				}
				return time.Date(yyyy, time.Month(mm), dd, hh, mi, ss, 0, time.Local), true
			}
		}
	}

	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, str); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func atoiOrZero(fields []string, i int) int {
	if i >= len(fields) {
		return 0
	}
	n, err := strconv.Atoi(fields[i])
	if err != nil {
		return 0
	}
	return n
}

// DaysBetween returns the signed calendar-day difference a minus b.
// Both instants are reduced to their calendar date and re-anchored at UTC
// midnight, so DST transitions cannot skew the count.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ua.Sub(ub).Hours() / 24)
}

// SameDay reports whether two instants fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
