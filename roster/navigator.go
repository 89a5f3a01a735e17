/*
navigator.go - Service date navigation

PURPOSE:
  Finds the nearest, next and previous legal service dates relative to an
  arbitrary date under a ServiceDayPolicy. These three functions back the
  date-normalization step of every roster view: a caller's reference date
  is snapped to a legal date here before any assignment lookup is keyed.

SCAN BOUNDS:
  With at least one legal weekday a day-by-day scan terminates within 7
  steps. Every scan is capped at 7 iterations anyway and fails with
  ErrNoLegalServiceDay, so a corrupt policy can never hang the caller.

TIE-BREAK:
  NearestServiceDate always scans forward, never backward. "Nearest" is
  next-or-same, not nearest-by-distance; moving a roster to the past by
  default would hide upcoming services.
*/
package roster

// NearestServiceDate returns date itself when it is already legal, else
// the first legal date after it.
func NearestServiceDate(date Date, policy ServiceDayPolicy) (Date, error) {
	if !policy.HasLegalWeekday() {
		return Date{}, ErrNoLegalServiceDay
	}
	if policy.IsServiceDay(date) {
		return date, nil
	}
	return scan(date.AddDays(1), policy, 1)
}

// NextServiceDate returns the first legal date strictly after current.
// A legal current date advances by exactly 7 days, preserving the "same
// weekday next week" semantic for single-day policies. An illegal current
// date scans forward from current+7.
func NextServiceDate(current Date, policy ServiceDayPolicy) (Date, error) {
	if !policy.HasLegalWeekday() {
		return Date{}, ErrNoLegalServiceDay
	}
	week := current.AddDays(7)
	if policy.IsServiceDay(current) {
		return week, nil
	}
	return scan(week, policy, 1)
}

// PreviousServiceDate is symmetric to NextServiceDate: back 7 days when
// current is legal, else scan backward from current-7.
func PreviousServiceDate(current Date, policy ServiceDayPolicy) (Date, error) {
	if !policy.HasLegalWeekday() {
		return Date{}, ErrNoLegalServiceDay
	}
	week := current.AddDays(-7)
	if policy.IsServiceDay(current) {
		return week, nil
	}
	return scan(week, policy, -1)
}

// UpcomingServiceDates returns the next n legal dates at or after from,
// ascending. Used by list views and the calendar feed.
func UpcomingServiceDates(from Date, n int, policy ServiceDayPolicy) ([]Date, error) {
	if n <= 0 {
		return nil, nil
	}
	first, err := NearestServiceDate(from, policy)
	if err != nil {
		return nil, err
	}
	dates := make([]Date, 0, n)
	dates = append(dates, first)
	current := first
	for len(dates) < n {
		// Day-by-day so multi-day policies keep every occurrence; a
		// +7 jump would skip additional days between two primaries.
		next, err := NearestServiceDate(current.AddDays(1), policy)
		if err != nil {
			return nil, err
		}
		dates = append(dates, next)
		current = next
	}
	return dates, nil
}

// scan walks day by day in the given direction until a legal date is
// found. Capped at 7 steps; HasLegalWeekday guarantees a hit within that,
// so hitting the cap means the policy lied and we fail loudly.
func scan(start Date, policy ServiceDayPolicy, step int) (Date, error) {
	d := start
	for i := 0; i < 7; i++ {
		if policy.IsServiceDay(d) {
			return d, nil
		}
		d = d.AddDays(step)
	}
	return Date{}, ErrNoLegalServiceDay
}
