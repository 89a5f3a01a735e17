/*
Package sqlite provides a SQLite-backed implementation of the roster
repository contracts.

PURPOSE:
  Implements roster.Repository (schedules, people, roles, assignments)
  using SQLite. In production, the same patterns apply to PostgreSQL - only
  minor SQL dialect differences.

UNIQUENESS ENFORCEMENT:
  The assignments table carries a unique index on
  (schedule_id, date, role_id). Upsert is a single
  INSERT ... ON CONFLICT DO UPDATE, so two writers racing on the same slot
  degrade to last-write-wins with exactly one surviving row. There is no
  lookup-before-write window.

DATES:
  Stored as YYYY-MM-DD text with no time component. TEXT dates in this
  format compare in calendar order, which the range queries rely on.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

MIGRATION:
  Versioned SQL files embedded next to this package, applied on New().

USAGE:
  repo, err := sqlite.New("./data/roster.db")
  if err != nil {
      log.Fatal(err)
  }
  defer repo.Close()

SEE ALSO:
  - roster/store.go: Interface definitions
  - roster/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/inservice/roster-engine/roster"
)

// Store implements roster.Repository using SQLite.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and applies migrations.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Schedules() roster.ScheduleStore     { return (*scheduleStore)(s) }
func (s *Store) People() roster.PersonStore          { return (*personStore)(s) }
func (s *Store) Roles() roster.RoleStore             { return (*roleStore)(s) }
func (s *Store) Assignments() roster.AssignmentStore { return (*assignmentStore)(s) }

func repoErr(op string, err error) error {
	return &roster.RepositoryError{Op: op, Err: err}
}

// =============================================================================
// SCHEDULE STORE
// =============================================================================

type scheduleStore Store

func (s *scheduleStore) Create(ctx context.Context, sched roster.Schedule) error {
	admins, _ := json.Marshal(sched.AdminUserIDs)

	var primary, custom sql.NullInt64
	var additional sql.NullString
	if sched.ServiceDayConfig != nil {
		primary = sql.NullInt64{Int64: int64(sched.ServiceDayConfig.PrimaryDay), Valid: true}
		custom = sql.NullInt64{Int64: boolToInt(sched.ServiceDayConfig.AllowCustomDates), Valid: true}
		days, _ := json.Marshal(weekdayInts(sched.ServiceDayConfig.AdditionalDays))
		additional = sql.NullString{String: string(days), Valid: true}
	}

	createdAt := sched.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedules
		(id, name, description, owner_user_id, admin_user_ids, primary_day, additional_days, allow_custom_dates, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sched.ID, sched.Name, sched.Description, sched.OwnerUserID, string(admins),
		primary, additional, custom, createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return repoErr("schedules.create", err)
	}
	return nil
}

func (s *scheduleStore) Get(ctx context.Context, id roster.ScheduleID) (*roster.Schedule, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, owner_user_id, admin_user_ids,
		       primary_day, additional_days, allow_custom_dates, created_at
		FROM schedules WHERE id = ?`, id)

	sched, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, repoErr("schedules.get", err)
	}
	return sched, nil
}

func (s *scheduleStore) List(ctx context.Context) ([]roster.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, owner_user_id, admin_user_ids,
		       primary_day, additional_days, allow_custom_dates, created_at
		FROM schedules ORDER BY name`)
	if err != nil {
		return nil, repoErr("schedules.list", err)
	}
	defer rows.Close()

	var schedules []roster.Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, repoErr("schedules.list", err)
		}
		schedules = append(schedules, *sched)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("schedules.list", err)
	}
	return schedules, nil
}

func (s *scheduleStore) Update(ctx context.Context, sched roster.Schedule) error {
	admins, _ := json.Marshal(sched.AdminUserIDs)
	res, err := s.db.ExecContext(ctx, `
		UPDATE schedules SET name = ?, description = ?, owner_user_id = ?, admin_user_ids = ?
		WHERE id = ?`,
		sched.Name, sched.Description, sched.OwnerUserID, string(admins), sched.ID,
	)
	if err != nil {
		return repoErr("schedules.update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.ErrScheduleNotFound
	}
	return nil
}

func (s *scheduleStore) Delete(ctx context.Context, id roster.ScheduleID) error {
	for _, q := range []string{
		"DELETE FROM assignments WHERE schedule_id = ?",
		"DELETE FROM roles WHERE schedule_id = ?",
		"DELETE FROM people WHERE schedule_id = ?",
		"DELETE FROM schedules WHERE id = ?",
	} {
		if _, err := s.db.ExecContext(ctx, q, id); err != nil {
			return repoErr("schedules.delete", err)
		}
	}
	return nil
}

func (s *scheduleStore) GetServiceDayConfig(ctx context.Context, id roster.ScheduleID) (*roster.ServiceDayPolicy, error) {
	var primary, custom sql.NullInt64
	var additional sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT primary_day, additional_days, allow_custom_dates FROM schedules WHERE id = ?", id,
	).Scan(&primary, &additional, &custom)
	if err == sql.ErrNoRows {
		return nil, roster.ErrScheduleNotFound
	}
	if err != nil {
		return nil, repoErr("schedules.config.get", err)
	}
	if !primary.Valid {
		return nil, nil // pre-migration schedule, config not set yet
	}

	policy := roster.ServiceDayPolicy{
		PrimaryDay:       roster.Weekday(primary.Int64),
		AllowCustomDates: custom.Int64 != 0,
	}
	if additional.Valid && additional.String != "" {
		var days []int
		if err := json.Unmarshal([]byte(additional.String), &days); err != nil {
			return nil, repoErr("schedules.config.get", err)
		}
		for _, d := range days {
			policy.AdditionalDays = append(policy.AdditionalDays, roster.Weekday(d))
		}
	}
	return &policy, nil
}

func (s *scheduleStore) UpdateServiceDayConfig(ctx context.Context, id roster.ScheduleID, policy roster.ServiceDayPolicy) error {
	days, _ := json.Marshal(weekdayInts(policy.AdditionalDays))
	res, err := s.db.ExecContext(ctx, `
		UPDATE schedules SET primary_day = ?, additional_days = ?, allow_custom_dates = ?
		WHERE id = ?`,
		int(policy.PrimaryDay), string(days), boolToInt(policy.AllowCustomDates), id,
	)
	if err != nil {
		return repoErr("schedules.config.update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.ErrScheduleNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (*roster.Schedule, error) {
	var (
		sched      roster.Schedule
		adminsJSON string
		primary    sql.NullInt64
		additional sql.NullString
		custom     sql.NullInt64
		createdAt  string
	)

	err := row.Scan(&sched.ID, &sched.Name, &sched.Description, &sched.OwnerUserID,
		&adminsJSON, &primary, &additional, &custom, &createdAt)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(adminsJSON), &sched.AdminUserIDs)
	sched.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	if primary.Valid {
		policy := roster.ServiceDayPolicy{
			PrimaryDay:       roster.Weekday(primary.Int64),
			AllowCustomDates: custom.Int64 != 0,
		}
		if additional.Valid && additional.String != "" {
			var days []int
			json.Unmarshal([]byte(additional.String), &days)
			for _, d := range days {
				policy.AdditionalDays = append(policy.AdditionalDays, roster.Weekday(d))
			}
		}
		sched.ServiceDayConfig = &policy
	}
	return &sched, nil
}

// =============================================================================
// PERSON STORE
// =============================================================================

type personStore Store

func (s *personStore) List(ctx context.Context, scheduleID roster.ScheduleID) ([]roster.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, contact_info, fillable_role_ids, unavailable_dates
		FROM people WHERE schedule_id = ? ORDER BY name`, scheduleID)
	if err != nil {
		return nil, repoErr("people.list", err)
	}
	defer rows.Close()

	var people []roster.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, repoErr("people.list", err)
		}
		people = append(people, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("people.list", err)
	}
	return people, nil
}

func (s *personStore) Get(ctx context.Context, scheduleID roster.ScheduleID, id roster.PersonID) (*roster.Person, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, contact_info, fillable_role_ids, unavailable_dates
		FROM people WHERE schedule_id = ? AND id = ?`, scheduleID, id)

	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, repoErr("people.get", err)
	}
	return p, nil
}

func (s *personStore) Create(ctx context.Context, scheduleID roster.ScheduleID, p roster.Person) error {
	roleIDs, _ := json.Marshal(p.FillableRoleIDs)
	dates, _ := json.Marshal(dateStrings(p.UnavailableDates))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO people (id, schedule_id, name, contact_info, fillable_role_ids, unavailable_dates)
		VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, scheduleID, p.Name, p.ContactInfo, string(roleIDs), string(dates),
	)
	if err != nil {
		return repoErr("people.create", err)
	}
	return nil
}

func (s *personStore) Update(ctx context.Context, scheduleID roster.ScheduleID, p roster.Person) error {
	roleIDs, _ := json.Marshal(p.FillableRoleIDs)
	dates, _ := json.Marshal(dateStrings(p.UnavailableDates))

	res, err := s.db.ExecContext(ctx, `
		UPDATE people SET name = ?, contact_info = ?, fillable_role_ids = ?, unavailable_dates = ?
		WHERE schedule_id = ? AND id = ?`,
		p.Name, p.ContactInfo, string(roleIDs), string(dates), scheduleID, p.ID,
	)
	if err != nil {
		return repoErr("people.update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.ErrPersonNotFound
	}
	return nil
}

func (s *personStore) Delete(ctx context.Context, scheduleID roster.ScheduleID, id roster.PersonID) error {
	// Assignments referencing the person are left behind on purpose; the
	// grid resolves them as unassigned.
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM people WHERE schedule_id = ? AND id = ?", scheduleID, id); err != nil {
		return repoErr("people.delete", err)
	}
	return nil
}

func scanPerson(row rowScanner) (*roster.Person, error) {
	var (
		p         roster.Person
		rolesJSON string
		datesJSON string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.ContactInfo, &rolesJSON, &datesJSON); err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(rolesJSON), &p.FillableRoleIDs)

	var dates []string
	json.Unmarshal([]byte(datesJSON), &dates)
	for _, ds := range dates {
		d, err := roster.ParseDate(ds)
		if err != nil {
			continue // tolerate bad rows rather than failing the whole list
		}
		p.UnavailableDates = append(p.UnavailableDates, d)
	}
	return &p, nil
}

// =============================================================================
// ROLE STORE
// =============================================================================

type roleStore Store

func (s *roleStore) List(ctx context.Context, scheduleID roster.ScheduleID) ([]roster.Role, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, position
		FROM roles WHERE schedule_id = ? ORDER BY position, name`, scheduleID)
	if err != nil {
		return nil, repoErr("roles.list", err)
	}
	defer rows.Close()

	var roles []roster.Role
	for rows.Next() {
		var r roster.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Position); err != nil {
			return nil, repoErr("roles.list", err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("roles.list", err)
	}
	return roles, nil
}

func (s *roleStore) Create(ctx context.Context, scheduleID roster.ScheduleID, r roster.Role) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO roles (id, schedule_id, name, description, position)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, scheduleID, r.Name, r.Description, r.Position,
	)
	if err != nil {
		return repoErr("roles.create", err)
	}
	return nil
}

func (s *roleStore) Update(ctx context.Context, scheduleID roster.ScheduleID, r roster.Role) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE roles SET name = ?, description = ?, position = ?
		WHERE schedule_id = ? AND id = ?`,
		r.Name, r.Description, r.Position, scheduleID, r.ID,
	)
	if err != nil {
		return repoErr("roles.update", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return roster.ErrRoleNotFound
	}
	return nil
}

func (s *roleStore) Delete(ctx context.Context, scheduleID roster.ScheduleID, id roster.RoleID) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM roles WHERE schedule_id = ? AND id = ?", scheduleID, id); err != nil {
		return repoErr("roles.delete", err)
	}
	return nil
}

// =============================================================================
// ASSIGNMENT STORE
// =============================================================================

type assignmentStore Store

func (s *assignmentStore) ForDate(ctx context.Context, scheduleID roster.ScheduleID, date roster.Date) ([]roster.Assignment, error) {
	return s.query(ctx, "assignments.for_date", `
		SELECT id, schedule_id, date, role_id, person_id
		FROM assignments WHERE schedule_id = ? AND date = ?
		ORDER BY role_id`, scheduleID, date.String())
}

func (s *assignmentStore) Range(ctx context.Context, scheduleID roster.ScheduleID, from, to roster.Date) ([]roster.Assignment, error) {
	return s.query(ctx, "assignments.range", `
		SELECT id, schedule_id, date, role_id, person_id
		FROM assignments WHERE schedule_id = ? AND date >= ? AND date <= ?
		ORDER BY date, role_id`, scheduleID, from.String(), to.String())
}

// Upsert writes one statement per slot, last write wins. The unique index
// on (schedule_id, date, role_id) guarantees a single surviving row.
func (s *assignmentStore) Upsert(ctx context.Context, a roster.Assignment) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assignments (id, schedule_id, date, role_id, person_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(schedule_id, date, role_id) DO UPDATE SET
			person_id = excluded.person_id,
			updated_at = excluded.updated_at`,
		a.ID, a.ScheduleID, a.Date.String(), a.RoleID, a.PersonID, now, now,
	)
	if err != nil {
		return repoErr("assignments.upsert", err)
	}
	return nil
}

func (s *assignmentStore) Delete(ctx context.Context, scheduleID roster.ScheduleID, date roster.Date, roleID roster.RoleID) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM assignments WHERE schedule_id = ? AND date = ? AND role_id = ?",
		scheduleID, date.String(), roleID); err != nil {
		return repoErr("assignments.delete", err)
	}
	return nil
}

func (s *assignmentStore) DeleteForDate(ctx context.Context, scheduleID roster.ScheduleID, date roster.Date) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM assignments WHERE schedule_id = ? AND date = ?",
		scheduleID, date.String()); err != nil {
		return repoErr("assignments.delete_for_date", err)
	}
	return nil
}

func (s *assignmentStore) query(ctx context.Context, op, query string, args ...any) ([]roster.Assignment, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, repoErr(op, err)
	}
	defer rows.Close()

	var assignments []roster.Assignment
	for rows.Next() {
		var (
			a       roster.Assignment
			dateStr string
		)
		if err := rows.Scan(&a.ID, &a.ScheduleID, &dateStr, &a.RoleID, &a.PersonID); err != nil {
			return nil, repoErr(op, err)
		}
		a.Date, err = roster.ParseDate(dateStr)
		if err != nil {
			return nil, repoErr(op, err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr(op, err)
	}
	return assignments, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func weekdayInts(days []roster.Weekday) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		out = append(out, int(d))
	}
	return out
}

func dateStrings(dates []roster.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}
