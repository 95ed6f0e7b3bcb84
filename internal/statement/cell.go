package statement

import (
	"strconv"
	"strings"
	"time"
)

// serialEpoch is the spreadsheet date-serial epoch. 1899-12-30 rather than
// 1900-01-01 accounts for the historical Lotus leap-year bug that every
// spreadsheet format still carries.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order when a date cell is textual. Day-first
// layouts come before month-first ones: the statements this engine sees use
// the dd/mm convention.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02/01/06",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2, 2006",
	"01/02/2006",
	time.RFC3339,
}

// ParseAmount converts a raw spreadsheet cell into a numeric amount. Numeric
// cells pass through; textual cells are stripped of thousands separators,
// currency symbols and anything else that is not a digit, '.', or '-'.
// Unparsable or empty input yields 0 - this never fails.
func ParseAmount(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseDate converts a raw spreadsheet cell into a calendar date. Numeric
// cells are interpreted as a spreadsheet date serial relative to serialEpoch,
// textual cells go through dateLayouts. Anything unparsable falls back to the
// processing date: a bad date degrades silently rather than rejecting the row.
func ParseDate(cell string, now time.Time) time.Time {
	s := strings.TrimSpace(cell)
	if s == "" {
		return dateOnly(now)
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return serialEpoch.AddDate(0, 0, int(serial))
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t)
		}
	}

	return dateOnly(now)
}

// dateOnly drops the time component, keeping the calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
