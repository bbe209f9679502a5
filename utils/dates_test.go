package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", date(2024, 3, 10), date(2024, 3, 10), 0},
		{"nine days apart", date(2024, 3, 1), date(2024, 3, 10), 9},
		{"end before start", date(2024, 3, 10), date(2024, 3, 7), -3},
		{"across month boundary", date(2024, 2, 28), date(2024, 3, 2), 3},
		{"time of day ignored", date(2024, 3, 1).Add(23 * time.Hour), date(2024, 3, 2).Add(time.Minute), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysBetween(tc.start, tc.end))
		})
	}
}

func TestDaysPastDue(t *testing.T) {
	today := date(2024, 3, 10)

	assert.Equal(t, 9, DaysPastDue(date(2024, 3, 1), today))
	assert.Equal(t, 0, DaysPastDue(today, today))
	assert.Equal(t, -5, DaysPastDue(date(2024, 3, 15), today))
}

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2024, 3, 10, 17, 45, 12, 999, time.Local)
	got := BeginningOfDay(in)

	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 10, got.Day())
	assert.Zero(t, got.Hour())
	assert.Zero(t, got.Minute())
	assert.Zero(t, got.Second())
}
