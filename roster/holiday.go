/*
holiday.go - Liturgical holiday calendar

PURPOSE:
  Computes the set of named holiday dates for a given year: fixed
  month/day feasts plus the moveable feasts anchored to Easter Sunday.
  The catalog is a closed, hardcoded table; holidays are recomputed per
  year and never persisted.

EASTER:
  ComputeEaster implements the anonymous Gregorian computus
  (Meeus/Jones/Butcher). It is pure integer arithmetic; any deviation
  from the canonical algorithm is a correctness bug, not a tuning knob.
*/
package roster

import (
	"sort"
	"time"
)

// ComputeEaster returns Easter Sunday for the given Gregorian year.
func ComputeEaster(year int) Date {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return NewDate(year, time.Month(month), day)
}

// holidayDef is one catalog row. Moveable entries use OffsetDays from
// Easter; fixed entries use Month/Day.
type holidayDef struct {
	ID          string
	Name        string
	Description string
	Month       time.Month
	Day         int
	OffsetDays  int
	Moveable    bool
}

var holidayCatalog = []holidayDef{
	// Fixed feasts
	{ID: "epiphany", Name: "Epiphany", Description: "Celebration of the visit of the Magi", Month: time.January, Day: 6},
	{ID: "christmas-eve", Name: "Christmas Eve", Description: "Evening before Christmas", Month: time.December, Day: 24},
	{ID: "christmas", Name: "Christmas Day", Description: "Celebration of the birth of Jesus Christ", Month: time.December, Day: 25},
	{ID: "all-saints", Name: "All Saints Day", Description: "Celebration of all Christian saints", Month: time.November, Day: 1},

	// Moveable feasts, offset in days from Easter Sunday
	{ID: "ash-wednesday", Name: "Ash Wednesday", Description: "Beginning of Lent", OffsetDays: -46, Moveable: true},
	{ID: "palm-sunday", Name: "Palm Sunday", Description: "Sunday before Easter", OffsetDays: -7, Moveable: true},
	{ID: "maundy-thursday", Name: "Maundy Thursday", Description: "Thursday before Easter", OffsetDays: -3, Moveable: true},
	{ID: "good-friday", Name: "Good Friday", Description: "Friday before Easter", OffsetDays: -2, Moveable: true},
	{ID: "easter-sunday", Name: "Easter Sunday", Description: "Celebration of the resurrection of Jesus Christ", OffsetDays: 0, Moveable: true},
	{ID: "easter-monday", Name: "Easter Monday", Description: "Monday after Easter", OffsetDays: 1, Moveable: true},
	{ID: "ascension-day", Name: "Ascension Day", Description: "39 days after Easter", OffsetDays: 39, Moveable: true},
	{ID: "pentecost", Name: "Pentecost", Description: "49 days after Easter", OffsetDays: 49, Moveable: true},
	{ID: "trinity-sunday", Name: "Trinity Sunday", Description: "First Sunday after Pentecost", OffsetDays: 56, Moveable: true},
	{ID: "corpus-christi", Name: "Corpus Christi", Description: "Feast of the Body and Blood of Christ", OffsetDays: 60, Moveable: true},
}

// HolidaysForYear returns the full holiday catalog for the year, sorted
// ascending by date. Includes First Sunday of Advent, the one entry that
// is relative to a fixed date rather than to Easter.
func HolidaysForYear(year int) []Holiday {
	easter := ComputeEaster(year)

	holidays := make([]Holiday, 0, len(holidayCatalog)+1)
	for _, def := range holidayCatalog {
		h := Holiday{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Moveable:    def.Moveable,
		}
		if def.Moveable {
			h.Date = easter.AddDays(def.OffsetDays)
		} else {
			h.Date = NewDate(year, def.Month, def.Day)
		}
		holidays = append(holidays, h)
	}

	holidays = append(holidays, Holiday{
		ID:          "advent-first",
		Name:        "First Sunday of Advent",
		Description: "Beginning of the Advent season",
		Date:        firstSundayOfAdvent(year),
		Moveable:    true,
	})

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// firstSundayOfAdvent is the fourth Sunday before Christmas Day: walk back
// from Christmas to the preceding Sunday (Christmas itself when it falls
// on one), then subtract exactly three weeks. Lands 21-27 days before
// Christmas.
func firstSundayOfAdvent(year int) Date {
	christmas := NewDate(year, time.December, 25)
	back := int(christmas.Weekday()) + 21
	return christmas.AddDays(-back)
}

// UpcomingHolidays returns the next count holidays at or after the given
// date. The current year's remainder is concatenated with the following
// year's full catalog before truncating, so the result crosses the year
// boundary correctly (a January 6 next year still shows up in December).
func UpcomingHolidays(at Date, count int) []Holiday {
	if count <= 0 {
		return nil
	}

	var upcoming []Holiday
	for _, h := range HolidaysForYear(at.Year()) {
		if !h.Date.Before(at) {
			upcoming = append(upcoming, h)
		}
	}
	upcoming = append(upcoming, HolidaysForYear(at.Year()+1)...)

	if len(upcoming) > count {
		upcoming = upcoming[:count]
	}
	return upcoming
}
