package roster_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inservice/roster-engine/roster"
)

func TestParseDate_Valid(t *testing.T) {
	d, err := roster.ParseDate("2024-03-09")
	require.NoError(t, err)

	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 9, d.Day())
	assert.Equal(t, roster.Saturday, d.Weekday())
	assert.Equal(t, "2024-03-09", d.String())
}

func TestParseDate_LocalMidnight(t *testing.T) {
	// Dates are calendar days in local time. Parsing in UTC would shift
	// the day for anyone west of Greenwich.
	d, err := roster.ParseDate("2024-03-09")
	require.NoError(t, err)

	assert.Equal(t, 0, d.Time.Hour())
	assert.Equal(t, time.Local, d.Time.Location())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "not-a-date", "03/09/2024", "2024-13-01", "2024-02-30"} {
		_, err := roster.ParseDate(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, roster.ErrInvalidDate), "input %q", input)
	}
}

func TestDate_AddDays(t *testing.T) {
	d, err := roster.ParseDate("2024-02-28")
	require.NoError(t, err)

	// 2024 is a leap year
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, "2024-02-27", d.AddDays(-1).String())
}

func TestDate_Comparisons(t *testing.T) {
	a, _ := roster.ParseDate("2024-03-09")
	b, _ := roster.ParseDate("2024-03-16")

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(a))
	assert.False(t, a.Equal(b))
	assert.Equal(t, 7, a.DaysUntil(b))
	assert.Equal(t, -7, b.DaysUntil(a))
}

func TestDate_DaysUntil_AcrossDSTTransition(t *testing.T) {
	// GIVEN two midnights a week apart spanning the US spring-forward
	// (the week is only 167 wall-clock hours long)
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	a := roster.Date{Time: time.Date(2024, time.March, 9, 0, 0, 0, 0, loc)}
	b := roster.Date{Time: time.Date(2024, time.March, 16, 0, 0, 0, 0, loc)}

	// THEN the distance is still 7 whole calendar days
	assert.Equal(t, 7, a.DaysUntil(b))
	assert.Equal(t, -7, b.DaysUntil(a))
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Sunday", roster.WeekdayName(roster.Sunday))
	assert.Equal(t, "Saturday", roster.WeekdayName(roster.Saturday))
	assert.Equal(t, "Wednesday", roster.WeekdayName(roster.Wednesday))
}
