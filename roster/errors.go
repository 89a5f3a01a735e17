/*
errors.go - Centralized error types for the roster engine

PURPOSE:
  All error types in one place. Collaborating packages (scheduling, api)
  wrap these with additional context rather than inventing their own.

ERROR CATEGORIES:
  1. Input errors - malformed dates, out-of-range weekdays
  2. Policy errors - pathological configurations, illegal target dates
  3. Repository errors - store-level I/O failures

USAGE:
    if errors.Is(err, roster.ErrInvalidDate) { ... }

    var repoErr *roster.RepositoryError
    if errors.As(err, &repoErr) { ... }
*/
package roster

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date string cannot be parsed as
	// YYYY-MM-DD. Callers must fail fast; never substitute "today".
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidWeekday is returned when a weekday is outside 0-6.
	ErrInvalidWeekday = errors.New("weekday out of range")

	// ErrNoLegalServiceDay is returned when a policy has no legal weekday
	// and custom dates are disabled. Not reachable through normal mutation,
	// but corrupt data must bound the navigator's scans instead of looping.
	ErrNoLegalServiceDay = errors.New("policy has no legal service day")

	// ErrNotAServiceDay is returned when an assignment targets a date the
	// schedule's policy does not allow.
	ErrNotAServiceDay = errors.New("date is not a service day")

	// ErrUnknownChurchType is returned when a church-type preset ID does
	// not match any entry in ChurchTypes.
	ErrUnknownChurchType = errors.New("unknown church type")

	// ErrScheduleNotFound is returned when a referenced schedule doesn't exist.
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrRoleNotFound is returned when a referenced role doesn't exist.
	ErrRoleNotFound = errors.New("role not found")

	// ErrPersonNotFound is returned when a referenced person doesn't exist.
	ErrPersonNotFound = errors.New("person not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidDateError reports the input that failed to parse.
type InvalidDateError struct {
	Input string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %q (want YYYY-MM-DD)", e.Input)
}

func (e *InvalidDateError) Unwrap() error { return ErrInvalidDate }

// NotAServiceDayError reports an assignment write against an illegal date.
type NotAServiceDayError struct {
	ScheduleID ScheduleID
	Date       Date
}

func (e *NotAServiceDayError) Error() string {
	return fmt.Sprintf("%s is not a service day for schedule %s", e.Date, e.ScheduleID)
}

func (e *NotAServiceDayError) Unwrap() error { return ErrNotAServiceDay }

// RepositoryError wraps a store-level I/O failure. The engine never
// retries internally; retry policy belongs to the repository collaborator.
type RepositoryError struct {
	Op  string // e.g. "assignments.upsert"
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidWeekday) ||
		errors.Is(err, ErrUnknownChurchType) ||
		errors.Is(err, ErrNotAServiceDay)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrRoleNotFound) ||
		errors.Is(err, ErrPersonNotFound)
}
