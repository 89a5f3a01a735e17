package roster

import (
	"time"
)

// =============================================================================
// DATE - Plain local calendar date (no time-of-day, no timezone math)
// =============================================================================

// DateFormat is the wire format for dates everywhere in the system.
const DateFormat = "2006-01-02"

// Date is a calendar date pinned to local midnight. Time-of-day is
// normalized away on construction so comparisons are always whole-day.
type Date struct {
	Time time.Time
}

// NewDate builds a Date at local midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// DateOf truncates an arbitrary time to its local calendar date.
func DateOf(t time.Time) Date {
	l := t.Local()
	return NewDate(l.Year(), l.Month(), l.Day())
}

// Today returns the current local calendar date.
func Today() Date { return DateOf(time.Now()) }

// ParseDate parses a YYYY-MM-DD string as a local calendar date.
// "2024-03-15" is March 15 in the local calendar, never March 14 or 16
// shifted by a UTC offset. Malformed input fails with ErrInvalidDate and
// never silently defaults to today.
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(DateFormat, s, time.Local)
	if err != nil {
		return Date{}, &InvalidDateError{Input: s, Err: err}
	}
	return Date{Time: t}, nil
}

// Arithmetic
func (d Date) AddDays(n int) Date { return DateOf(d.Time.AddDate(0, 0, n)) }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) Weekday() Weekday  { return Weekday(d.Time.Weekday()) }
func (d Date) IsZero() bool      { return d.Time.IsZero() }

// Comparison
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool {
	return d.Year() == other.Year() && d.Month() == other.Month() && d.Day() == other.Day()
}

func (d Date) String() string { return d.Time.Format(DateFormat) }

// DaysUntil returns the whole-day distance from d to other. Both dates
// are re-anchored to UTC midnight first so a DST transition inside the
// span cannot shave hours off the difference.
func (d Date) DaysUntil(other Date) int {
	a := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(other.Year(), other.Month(), other.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
