/*
Package roster provides the core scheduling engine for church service rosters.

PURPOSE:
  This package contains the domain types and pure algorithms for roster
  scheduling: which calendar dates are legal service dates under a
  schedule's configuration, how to navigate between service dates, how the
  liturgical holiday calendar is computed, and how a date's assignment grid
  is resolved from roles, people, and persisted assignments.

KEY CONCEPTS IN THIS FILE (types.go):
  - Weekday: 0-6, Sunday-first (matches how configs are stored)
  - ServiceDayPolicy: per-schedule "which days count" configuration
  - Role / Person / Assignment / Schedule: the roster records
  - Type-safe string IDs for each record kind

DESIGN PRINCIPLES:
  1. Purity: everything here operates on already-fetched in-memory data.
     Repository access lives behind the interfaces in store.go.
  2. Explicit tenancy: every operation takes its schedule's policy or ID
     as an argument. There is no ambient "current schedule."
  3. Local dates: all dates are plain calendar dates at local midnight.
     See date.go.

SEE ALSO:
  - policy.go: the service-day predicate and policy mutations
  - navigator.go: nearest/next/previous service date algorithms
  - holiday.go: Easter computus and the holiday catalog
  - grid.go: assignment grid resolution and eligibility
*/
package roster

import "time"

// =============================================================================
// WEEKDAY - Sunday-first day-of-week enumeration
// =============================================================================

// Weekday is a day of the week, 0 = Sunday through 6 = Saturday.
// Stored configs use the integer form only, never a symbolic name.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Valid reports whether w is in the storable 0-6 range.
func (w Weekday) Valid() bool { return w >= Sunday && w <= Saturday }

// WeekdayName returns the display name for a weekday, Sunday-first.
// Display only; logic always compares the integers.
func WeekdayName(w Weekday) string {
	if !w.Valid() {
		return ""
	}
	return weekdayNames[w]
}

func (w Weekday) String() string { return WeekdayName(w) }

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ScheduleID string
type PersonID string
type RoleID string
type AssignmentID string

// =============================================================================
// SERVICE DAY POLICY
// =============================================================================

// ServiceDayPolicy is the per-schedule configuration of which weekdays are
// service days. AdditionalDays never contains PrimaryDay; the mutations in
// policy.go maintain that invariant.
//
// When AllowCustomDates is true any calendar date is a legal target and the
// recurring days are advisory only (used for defaulting, not restriction).
type ServiceDayPolicy struct {
	PrimaryDay       Weekday
	AdditionalDays   []Weekday
	AllowCustomDates bool
}

// =============================================================================
// ROSTER RECORDS
// =============================================================================

// Role is an assignable position on the roster (preacher, greeter, ...).
// Position is the role's place in the schedule's role list; the grid is
// built in this order, not alphabetically.
type Role struct {
	ID          RoleID
	Name        string
	Description string
	Position    int
}

// Person is a roster member. FillableRoleIDs restricts which roles the
// person appears as a candidate for; empty means eligible for any role.
// UnavailableDates feeds the suggestion flow; neither field is enforced
// when an assignment is written.
type Person struct {
	ID               PersonID
	Name             string
	ContactInfo      string
	FillableRoleIDs  []RoleID
	UnavailableDates []Date
}

// Assignment binds a person to a role on one concrete date within a
// schedule. At most one assignment exists per (schedule, date, role); the
// repository enforces this. An unassigned slot is the absence of a record,
// never a record with an empty PersonID.
type Assignment struct {
	ID         AssignmentID
	ScheduleID ScheduleID
	Date       Date
	RoleID     RoleID
	PersonID   PersonID
}

// Schedule is one tenant organization. ServiceDayConfig is nil for
// schedules created before the configurable-service-day feature; the
// backfill migration in the scheduling package fills in the Saturday
// default.
type Schedule struct {
	ID               ScheduleID
	Name             string
	Description      string
	OwnerUserID      string
	AdminUserIDs     []string
	ServiceDayConfig *ServiceDayPolicy
	CreatedAt        time.Time
}

// =============================================================================
// HOLIDAY
// =============================================================================

// Holiday is a named calendar date for one specific year. Holidays are
// recomputed per year and never stored. Moveable holidays sit at a fixed
// day offset from that year's Easter Sunday.
type Holiday struct {
	ID          string
	Name        string
	Description string
	Date        Date
	Moveable    bool
}
