package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inservice/roster-engine/roster"
)

func TestComputeEaster_KnownYears(t *testing.T) {
	cases := map[int]string{
		2023: "2023-04-09",
		2024: "2024-03-31",
		2025: "2025-04-20",
		2026: "2026-04-05",
		2038: "2038-04-25", // latest possible Easter this century
	}
	for year, want := range cases {
		assert.Equal(t, want, roster.ComputeEaster(year).String(), "year %d", year)
	}
}

func holidayByID(t *testing.T, holidays []roster.Holiday, id string) roster.Holiday {
	t.Helper()
	for _, h := range holidays {
		if h.ID == id {
			return h
		}
	}
	t.Fatalf("holiday %q not found", id)
	return roster.Holiday{}
}

func TestHolidaysForYear_EasterOffsets(t *testing.T) {
	holidays := roster.HolidaysForYear(2024)
	easter := roster.ComputeEaster(2024)

	assert.True(t, holidayByID(t, holidays, "good-friday").Date.Equal(easter.AddDays(-2)))
	assert.True(t, holidayByID(t, holidays, "pentecost").Date.Equal(easter.AddDays(49)))
	assert.True(t, holidayByID(t, holidays, "ash-wednesday").Date.Equal(easter.AddDays(-46)))
	assert.True(t, holidayByID(t, holidays, "easter-sunday").Date.Equal(easter))
}

func TestHolidaysForYear_FixedFeasts(t *testing.T) {
	holidays := roster.HolidaysForYear(2025)

	assert.Equal(t, "2025-01-06", holidayByID(t, holidays, "epiphany").Date.String())
	assert.Equal(t, "2025-12-25", holidayByID(t, holidays, "christmas").Date.String())
	assert.Equal(t, "2025-11-01", holidayByID(t, holidays, "all-saints").Date.String())
}

func TestHolidaysForYear_AdventFirstSunday(t *testing.T) {
	// Known reference dates for the First Sunday of Advent.
	cases := map[int]string{
		2023: "2023-12-03",
		2024: "2024-12-01",
		2025: "2025-11-30",
		2026: "2026-11-29",
	}
	for year, want := range cases {
		advent := holidayByID(t, roster.HolidaysForYear(year), "advent-first")
		assert.Equal(t, want, advent.Date.String(), "year %d", year)
		assert.Equal(t, roster.Sunday, advent.Date.Weekday(), "year %d", year)
	}
}

func TestHolidaysForYear_SortedAscending(t *testing.T) {
	holidays := roster.HolidaysForYear(2024)
	require.NotEmpty(t, holidays)

	for i := 1; i < len(holidays); i++ {
		assert.False(t, holidays[i].Date.Before(holidays[i-1].Date),
			"%s before %s", holidays[i].ID, holidays[i-1].ID)
	}
}

func TestUpcomingHolidays_CrossesYearBoundary(t *testing.T) {
	// GIVEN: December 30, after every holiday of the year has passed
	// WHEN: Asking for the next 3 holidays
	// THEN: All come from the following year, starting with Epiphany

	upcoming := roster.UpcomingHolidays(mustDate(t, "2024-12-30"), 3)
	require.Len(t, upcoming, 3)
	assert.Equal(t, "epiphany", upcoming[0].ID)
	assert.Equal(t, 2025, upcoming[0].Date.Year())
}

func TestUpcomingHolidays_IncludesToday(t *testing.T) {
	// "Upcoming" is at-or-after: asking on Christmas Day includes it.
	upcoming := roster.UpcomingHolidays(mustDate(t, "2024-12-25"), 1)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "christmas", upcoming[0].ID)
}
