/*
store.go - Repository contracts for roster persistence

PURPOSE:
  Defines the interface between the scheduling logic and the document
  store. The engine treats persistence as a key-value repository with
  simple get/list/create/update/delete contracts; implementations decide
  the storage engine.

KEY CONTRACT - ASSIGNMENT UNIQUENESS:
  AssignmentStore.Upsert keys on (schedule, date, role). At most one
  assignment exists per key at all times, enforced by the store (unique
  index or equivalent), never by caller discipline. Concurrent writes to
  the same key are last-write-wins; no error, no merge.

DATES:
  Dates cross this boundary as roster.Date values; implementations
  serialize them as YYYY-MM-DD with no time component.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - roster/store:  in-memory store for tests and dev

SEE ALSO:
  - scheduling/service.go: the operations built on these contracts
*/
package roster

import "context"

// ScheduleStore persists schedules and their service-day configuration.
// Get returns (nil, nil) when the schedule does not exist.
type ScheduleStore interface {
	Create(ctx context.Context, s Schedule) error
	Get(ctx context.Context, id ScheduleID) (*Schedule, error)
	List(ctx context.Context) ([]Schedule, error)
	Update(ctx context.Context, s Schedule) error
	Delete(ctx context.Context, id ScheduleID) error

	// GetServiceDayConfig returns nil when the schedule has no config yet
	// (pre-migration data). It is not an error.
	GetServiceDayConfig(ctx context.Context, id ScheduleID) (*ServiceDayPolicy, error)
	UpdateServiceDayConfig(ctx context.Context, id ScheduleID, policy ServiceDayPolicy) error
}

// PersonStore persists roster members, scoped per schedule.
type PersonStore interface {
	List(ctx context.Context, scheduleID ScheduleID) ([]Person, error)
	Get(ctx context.Context, scheduleID ScheduleID, id PersonID) (*Person, error)
	Create(ctx context.Context, scheduleID ScheduleID, p Person) error
	Update(ctx context.Context, scheduleID ScheduleID, p Person) error
	Delete(ctx context.Context, scheduleID ScheduleID, id PersonID) error
}

// RoleStore persists assignable roles, scoped per schedule. List returns
// roles in list order (Position ascending), which is also grid order.
type RoleStore interface {
	List(ctx context.Context, scheduleID ScheduleID) ([]Role, error)
	Create(ctx context.Context, scheduleID ScheduleID, r Role) error
	Update(ctx context.Context, scheduleID ScheduleID, r Role) error
	Delete(ctx context.Context, scheduleID ScheduleID, id RoleID) error
}

// AssignmentStore persists date-keyed role assignments.
type AssignmentStore interface {
	// ForDate returns the assignments for one exact date.
	ForDate(ctx context.Context, scheduleID ScheduleID, date Date) ([]Assignment, error)

	// Range returns assignments with from <= date <= to, ordered by date.
	Range(ctx context.Context, scheduleID ScheduleID, from, to Date) ([]Assignment, error)

	// Upsert atomically creates or replaces the assignment for
	// (a.ScheduleID, a.Date, a.RoleID).
	Upsert(ctx context.Context, a Assignment) error

	// Delete removes the assignment for the key. Removing a missing
	// assignment is a no-op, not an error.
	Delete(ctx context.Context, scheduleID ScheduleID, date Date, roleID RoleID) error

	// DeleteForDate removes every assignment on the date.
	DeleteForDate(ctx context.Context, scheduleID ScheduleID, date Date) error
}

// Repository aggregates the four stores. A single implementation usually
// backs all of them.
type Repository interface {
	Schedules() ScheduleStore
	People() PersonStore
	Roles() RoleStore
	Assignments() AssignmentStore
}
