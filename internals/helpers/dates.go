package helper

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

const DateLayout = "2006-01-02"

// ParseDate accepts exactly YYYY-MM-DD and returns UTC midnight.
func ParseDate(field, raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if len(s) != len(DateLayout) {
		return time.Time{}, NewValidationError(field, "date must be YYYY-MM-DD, got %q", raw)
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, NewValidationError(field, "date must be YYYY-MM-DD, got %q", raw)
	}
	return t, nil
}

// ParseDateRange parses both ends and rejects from > to.
func ParseDateRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	from, err := ParseDate("from", fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := ParseDate("to", toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, NewValidationError("from", "from (%s) is after to (%s)", FormatDate(from), FormatDate(to))
	}
	return from, to, nil
}

// ParseOptionalDate returns nil for blank input.
func ParseOptionalDate(field string, raw *string) (*datatypes.Date, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *raw)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDatePtr renders an optional date column, nil stays nil.
func FormatDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := time.Time(*d).Format(DateLayout)
	return &s
}

// TruncateDay drops the clock part, keeping the calendar day of t.
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween lists every calendar day in [from, to], chronologically.
func DaysBetween(from, to time.Time) []time.Time {
	from, to = TruncateDay(from), TruncateDay(to)
	if from.After(to) {
		return nil
	}
	out := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, d)
	}
	return out
}

// MaxExportDays bounds the date range of one xlsx or PDF export.
const MaxExportDays = 366

// ExportDays checks an export range and lists its days.
func ExportDays(from, to time.Time) ([]time.Time, error) {
	from, to = TruncateDay(from), TruncateDay(to)
	if from.After(to) {
		return nil, NewValidationError("from", "from (%s) is after to (%s)", FormatDate(from), FormatDate(to))
	}
	days := DaysBetween(from, to)
	if len(days) > MaxExportDays {
		return nil, NewValidationError("to", "range spans %d days, at most %d allowed", len(days), MaxExportDays)
	}
	return days, nil
}

// Today is the current calendar day in loc, expressed as UTC midnight.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return TruncateDay(time.Now().In(loc))
}
