package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inservice/roster-engine/roster"
)

func mustDate(t *testing.T, s string) roster.Date {
	t.Helper()
	d, err := roster.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestDefaultPolicy(t *testing.T) {
	p := roster.DefaultPolicy()

	assert.Equal(t, roster.Saturday, p.PrimaryDay)
	assert.Empty(t, p.AdditionalDays)
	assert.False(t, p.AllowCustomDates)
}

func TestIsServiceDay_PrimaryAndAdditional(t *testing.T) {
	p := roster.ServiceDayPolicy{
		PrimaryDay:     roster.Sunday,
		AdditionalDays: []roster.Weekday{roster.Wednesday},
	}

	assert.True(t, p.IsServiceDay(mustDate(t, "2024-03-03")))  // Sunday
	assert.True(t, p.IsServiceDay(mustDate(t, "2024-03-06")))  // Wednesday
	assert.False(t, p.IsServiceDay(mustDate(t, "2024-03-04"))) // Monday
	assert.False(t, p.IsServiceDay(mustDate(t, "2024-03-09"))) // Saturday
}

func TestIsServiceDay_CustomDatesAllowEverything(t *testing.T) {
	p := roster.ServiceDayPolicy{PrimaryDay: roster.Sunday, AllowCustomDates: true}

	// With the escape hatch on, every date is a legal target.
	assert.True(t, p.IsServiceDay(mustDate(t, "2024-03-04"))) // Monday
	assert.True(t, p.IsServiceDay(mustDate(t, "2024-03-08"))) // Friday
}

func TestSetPrimaryDay_RemovesFromAdditional(t *testing.T) {
	// GIVEN: Wednesday is an additional day
	// WHEN: Wednesday becomes the primary day
	// THEN: It is removed from the additional set; a day is never both

	p := roster.ServiceDayPolicy{
		PrimaryDay:     roster.Sunday,
		AdditionalDays: []roster.Weekday{roster.Wednesday, roster.Friday},
	}

	p = p.SetPrimaryDay(roster.Wednesday)

	assert.Equal(t, roster.Wednesday, p.PrimaryDay)
	assert.Equal(t, []roster.Weekday{roster.Friday}, p.AdditionalDays)
}

func TestToggleAdditionalDay_PrimaryIsNoOp(t *testing.T) {
	// Toggling the primary day on as an additional day must not change
	// anything: the sets stay mutually exclusive.
	p := roster.DefaultPolicy().SetPrimaryDay(roster.Saturday)

	p = p.ToggleAdditionalDay(roster.Saturday, true)

	assert.Empty(t, p.AdditionalDays)
}

func TestToggleAdditionalDay_AddRemove(t *testing.T) {
	p := roster.ServiceDayPolicy{PrimaryDay: roster.Sunday}

	p = p.ToggleAdditionalDay(roster.Friday, true)
	p = p.ToggleAdditionalDay(roster.Wednesday, true)
	assert.Equal(t, []roster.Weekday{roster.Wednesday, roster.Friday}, p.AdditionalDays)

	// Adding twice does not duplicate
	p = p.ToggleAdditionalDay(roster.Wednesday, true)
	assert.Equal(t, []roster.Weekday{roster.Wednesday, roster.Friday}, p.AdditionalDays)

	p = p.ToggleAdditionalDay(roster.Friday, false)
	assert.Equal(t, []roster.Weekday{roster.Wednesday}, p.AdditionalDays)

	// Removing an absent day is a no-op
	p = p.ToggleAdditionalDay(roster.Monday, false)
	assert.Equal(t, []roster.Weekday{roster.Wednesday}, p.AdditionalDays)
}

func TestHasLegalWeekday(t *testing.T) {
	assert.True(t, roster.DefaultPolicy().HasLegalWeekday())
	assert.True(t, roster.ServiceDayPolicy{PrimaryDay: -1, AllowCustomDates: true}.HasLegalWeekday())
	assert.True(t, roster.ServiceDayPolicy{PrimaryDay: -1, AdditionalDays: []roster.Weekday{roster.Monday}}.HasLegalWeekday())

	// Corrupt: unreachable through mutation, possible via bad data
	assert.False(t, roster.ServiceDayPolicy{PrimaryDay: -1}.HasLegalWeekday())
}

func TestChurchTypeByID(t *testing.T) {
	ct, ok := roster.ChurchTypeByID("sabbath-adventist")
	require.True(t, ok)
	assert.Equal(t, roster.Saturday, ct.Policy.PrimaryDay)

	_, ok = roster.ChurchTypeByID("nope")
	assert.False(t, ok)
}
