package statement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain number", "1234.5", 1234.5},
		{"thousands separator", "1,234.50", 1234.50},
		{"currency symbol", "₹2,500", 2500},
		{"dollar sign", "$99.99", 99.99},
		{"negative", "-450.25", -450.25},
		{"negative with separator", "-1,614.50", -1614.50},
		{"whitespace", "  500  ", 500},
		{"empty", "", 0},
		{"garbage", "n/a", 0},
		{"letters only", "pending", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestParseDate_Serial(t *testing.T) {
	now := time.Date(2026, time.September, 1, 13, 45, 0, 0, time.UTC)

	// Serial 45000 relative to the 1899-12-30 epoch is 2023-03-15.
	got := ParseDate("45000", now)
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), got)

	// Serial 1 is 1899-12-31; the epoch offset absorbs the leap-year bug.
	got = ParseDate("1", now)
	assert.Equal(t, time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC), got)

	// Fractional serials carry a time-of-day component that is dropped.
	got = ParseDate("45000.75", now)
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_Textual(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-02-29", time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"15/03/2023", time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"15-03-2023", time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)},
		{"2 Jan 2025", time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDate(tt.in, now), "input %q", tt.in)
	}
}

func TestParseDate_FallbackToProcessingDate(t *testing.T) {
	now := time.Date(2026, time.September, 1, 18, 30, 0, 0, time.UTC)
	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, today, ParseDate("", now))
	assert.Equal(t, today, ParseDate("not a date", now))
}
