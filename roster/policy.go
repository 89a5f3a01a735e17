package roster

import "sort"

// =============================================================================
// SERVICE-DAY PREDICATE - The single source of truth for "legal date"
// =============================================================================

// IsServiceDay reports whether date is a legal assignment target under the
// policy. Both the date navigator and the date-picker endpoint consume this
// predicate; there is deliberately no second implementation anywhere.
func (p ServiceDayPolicy) IsServiceDay(date Date) bool {
	if p.AllowCustomDates {
		return true
	}
	wd := date.Weekday()
	if wd == p.PrimaryDay {
		return true
	}
	for _, d := range p.AdditionalDays {
		if wd == d {
			return true
		}
	}
	return false
}

// HasLegalWeekday reports whether at least one weekday satisfies the
// policy. False only for corrupt configurations; the navigator checks this
// before scanning so its loops stay bounded.
func (p ServiceDayPolicy) HasLegalWeekday() bool {
	if p.AllowCustomDates {
		return true
	}
	if p.PrimaryDay.Valid() {
		return true
	}
	for _, d := range p.AdditionalDays {
		if d.Valid() {
			return true
		}
	}
	return false
}

// =============================================================================
// POLICY MUTATIONS - Value semantics; the invariant lives here, not in UI
// =============================================================================

// DefaultPolicy is the configuration given to new schedules and applied by
// the backfill migration: Saturday, no additional days, no custom dates.
func DefaultPolicy() ServiceDayPolicy {
	return ServiceDayPolicy{PrimaryDay: Saturday}
}

// SetPrimaryDay returns the policy with a new primary day. The new primary
// is removed from the additional set; a day is never both.
func (p ServiceDayPolicy) SetPrimaryDay(day Weekday) ServiceDayPolicy {
	out := p
	out.PrimaryDay = day
	out.AdditionalDays = removeWeekday(p.AdditionalDays, day)
	return out
}

// ToggleAdditionalDay returns the policy with day added to or removed from
// the additional set. Adding the primary day is a no-op; the restriction is
// enforced here in the data layer, not only in presentation.
func (p ServiceDayPolicy) ToggleAdditionalDay(day Weekday, enabled bool) ServiceDayPolicy {
	out := p
	if !enabled {
		out.AdditionalDays = removeWeekday(p.AdditionalDays, day)
		return out
	}
	if day == p.PrimaryDay || !day.Valid() {
		return out
	}
	for _, d := range p.AdditionalDays {
		if d == day {
			return out
		}
	}
	out.AdditionalDays = append(removeWeekday(p.AdditionalDays, day), day)
	sortWeekdays(out.AdditionalDays)
	return out
}

// SetAllowCustomDates returns the policy with the custom-dates escape
// hatch toggled.
func (p ServiceDayPolicy) SetAllowCustomDates(allow bool) ServiceDayPolicy {
	out := p
	out.AllowCustomDates = allow
	return out
}

func removeWeekday(days []Weekday, day Weekday) []Weekday {
	var out []Weekday
	for _, d := range days {
		if d != day {
			out = append(out, d)
		}
	}
	return out
}

func sortWeekdays(days []Weekday) {
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
}

// =============================================================================
// CHURCH TYPE PRESETS - Named starting configurations
// =============================================================================

// ChurchType is a named service-day preset offered during schedule setup.
type ChurchType struct {
	ID          string
	Name        string
	Description string
	Policy      ServiceDayPolicy
}

// ChurchTypes is the closed preset catalog.
var ChurchTypes = []ChurchType{
	{
		ID:          "sunday-traditional",
		Name:        "Traditional Sunday Church",
		Description: "Most Protestant churches, Catholic churches",
		Policy:      ServiceDayPolicy{PrimaryDay: Sunday},
	},
	{
		ID:          "sabbath-adventist",
		Name:        "Sabbath-Keeping Church",
		Description: "Seventh-day Adventist, Seventh Day Baptist",
		Policy:      ServiceDayPolicy{PrimaryDay: Saturday},
	},
	{
		ID:          "multi-service",
		Name:        "Multi-Service Church",
		Description: "Sunday worship plus midweek services",
		Policy:      ServiceDayPolicy{PrimaryDay: Sunday, AdditionalDays: []Weekday{Wednesday}, AllowCustomDates: true},
	},
	{
		ID:          "orthodox-church",
		Name:        "Orthodox Church",
		Description: "Eastern Orthodox, Russian Orthodox churches",
		Policy:      ServiceDayPolicy{PrimaryDay: Sunday, AllowCustomDates: true},
	},
	{
		ID:          "flexible-christian",
		Name:        "Flexible Christian Community",
		Description: "Non-denominational with flexible scheduling",
		Policy:      ServiceDayPolicy{PrimaryDay: Sunday, AllowCustomDates: true},
	},
}

// ChurchTypeByID looks up a preset by its slug.
func ChurchTypeByID(id string) (ChurchType, bool) {
	for _, ct := range ChurchTypes {
		if ct.ID == id {
			return ct, true
		}
	}
	return ChurchType{}, false
}
