package scheduling_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inservice/roster-engine/roster"
	"github.com/inservice/roster-engine/roster/store"
	"github.com/inservice/roster-engine/scheduling"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(t *testing.T) (*scheduling.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return scheduling.New(mem), mem
}

func newTestSchedule(t *testing.T, svc *scheduling.Service) roster.ScheduleID {
	t.Helper()
	sched, err := svc.CreateSchedule(context.Background(), "Main Church", "", "user-1")
	require.NoError(t, err)
	return sched.ID
}

func date(t *testing.T, s string) roster.Date {
	t.Helper()
	d, err := roster.ParseDate(s)
	require.NoError(t, err)
	return d
}

// =============================================================================
// SCHEDULE LIFECYCLE
// =============================================================================

func TestCreateSchedule_SeedsDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sched, err := svc.CreateSchedule(ctx, "Main Church", "desc", "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, sched.AdminUserIDs)

	// Default Saturday policy
	policy, err := svc.PolicyFor(ctx, sched.ID)
	require.NoError(t, err)
	assert.Equal(t, roster.Saturday, policy.PrimaryDay)

	// Default role catalog, in position order
	roles, err := svc.ListRoles(ctx, sched.ID)
	require.NoError(t, err)
	require.Len(t, roles, len(scheduling.DefaultRoles))
	assert.Equal(t, roster.RoleID("preacher"), roles[0].ID)
}

func TestGetSchedule_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetSchedule(context.Background(), "missing")
	assert.True(t, errors.Is(err, roster.ErrScheduleNotFound))
}

// =============================================================================
// POLICY RESOLUTION & BACKFILL
// =============================================================================

func TestPolicyFor_DefaultsWhenUnset(t *testing.T) {
	// A schedule written before service-day config existed has no stored
	// policy; it must behave as Saturday-only.
	svc, mem := newTestService(t)
	ctx := context.Background()

	require.NoError(t, mem.Schedules().Create(ctx, roster.Schedule{ID: "legacy", Name: "Old"}))

	policy, err := svc.PolicyFor(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, roster.Saturday, policy.PrimaryDay)
	assert.False(t, policy.AllowCustomDates)
}

func TestBackfillServiceDayConfig_Idempotent(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	require.NoError(t, mem.Schedules().Create(ctx, roster.Schedule{ID: "legacy-1", Name: "A"}))
	require.NoError(t, mem.Schedules().Create(ctx, roster.Schedule{ID: "legacy-2", Name: "B"}))
	newTestSchedule(t, svc) // already configured

	updated, err := svc.BackfillServiceDayConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	// Second run finds nothing to do
	updated, err = svc.BackfillServiceDayConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, updated)

	cfg, err := mem.Schedules().GetServiceDayConfig(ctx, "legacy-1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, roster.Saturday, cfg.PrimaryDay)
}

func TestPolicyMutations_Persist(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)

	_, err := svc.SetPrimaryDay(ctx, id, roster.Sunday)
	require.NoError(t, err)
	_, err = svc.ToggleAdditionalDay(ctx, id, roster.Wednesday, true)
	require.NoError(t, err)
	_, err = svc.SetAllowCustomDates(ctx, id, true)
	require.NoError(t, err)

	policy, err := svc.PolicyFor(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, roster.Sunday, policy.PrimaryDay)
	assert.Equal(t, []roster.Weekday{roster.Wednesday}, policy.AdditionalDays)
	assert.True(t, policy.AllowCustomDates)
}

func TestSetPrimaryDay_InvalidWeekday(t *testing.T) {
	svc, _ := newTestService(t)
	id := newTestSchedule(t, svc)

	_, err := svc.SetPrimaryDay(context.Background(), id, 7)
	assert.True(t, errors.Is(err, roster.ErrInvalidWeekday))
}

func TestApplyChurchType(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)

	policy, err := svc.ApplyChurchType(ctx, id, "multi-service")
	require.NoError(t, err)
	assert.Equal(t, roster.Sunday, policy.PrimaryDay)
	assert.Equal(t, []roster.Weekday{roster.Wednesday}, policy.AdditionalDays)
	assert.True(t, policy.AllowCustomDates)
}

func TestApplyChurchType_UnknownID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)

	_, err := svc.ApplyChurchType(ctx, id, "megachurch")
	assert.True(t, errors.Is(err, roster.ErrUnknownChurchType))
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

func TestSetAssignment_LastWriteWins(t *testing.T) {
	// GIVEN: personA assigned to preacher on 2024-03-30 (a Saturday)
	// WHEN: personB is assigned to the same slot
	// THEN: Exactly one assignment exists for the key, with personB

	svc, mem := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)
	d := date(t, "2024-03-30")

	require.NoError(t, svc.SetAssignment(ctx, id, d, "preacher", "person-a"))
	require.NoError(t, svc.SetAssignment(ctx, id, d, "preacher", "person-b"))

	assignments, err := mem.Assignments().ForDate(ctx, id, d)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, roster.PersonID("person-b"), assignments[0].PersonID)
}

func TestSetAssignment_EmptyPersonRemovesRecord(t *testing.T) {
	// Unassigning deletes the record; no tombstones, no null-person rows.
	svc, mem := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)
	d := date(t, "2024-03-30")

	require.NoError(t, svc.SetAssignment(ctx, id, d, "preacher", "person-a"))
	require.NoError(t, svc.SetAssignment(ctx, id, d, "preacher", ""))

	assignments, err := mem.Assignments().ForDate(ctx, id, d)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestSetAssignment_RejectsNonServiceDay(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)

	// 2024-03-04 is a Monday; default policy is Saturday-only
	err := svc.SetAssignment(ctx, id, date(t, "2024-03-04"), "preacher", "person-a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, roster.ErrNotAServiceDay))
}

func TestSetAssignment_CustomDatesAllowAnyDate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)

	_, err := svc.SetAllowCustomDates(ctx, id, true)
	require.NoError(t, err)

	err = svc.SetAssignment(ctx, id, date(t, "2024-03-04"), "preacher", "person-a")
	assert.NoError(t, err)
}

func TestClearDate(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)
	d := date(t, "2024-03-30")

	require.NoError(t, svc.SetAssignment(ctx, id, d, "preacher", "p1"))
	require.NoError(t, svc.SetAssignment(ctx, id, d, "pianist", "p2"))
	require.NoError(t, svc.ClearDate(ctx, id, d))

	assignments, err := mem.Assignments().ForDate(ctx, id, d)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

// =============================================================================
// GRID RESOLUTION
// =============================================================================

func TestResolveGrid_NormalizesDate(t *testing.T) {
	// Requesting a Monday under a Saturday-only policy resolves the
	// following Saturday's grid; the DTO reports both dates.
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)

	p, err := svc.CreatePerson(ctx, id, roster.Person{Name: "Ana"})
	require.NoError(t, err)
	require.NoError(t, svc.SetAssignment(ctx, id, date(t, "2024-03-09"), "preacher", p.ID))

	grid, err := svc.ResolveGrid(ctx, id, date(t, "2024-03-04"))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-09", grid.Date.String())
	assert.Equal(t, "2024-03-04", grid.Requested.String())

	require.Len(t, grid.Rows, len(scheduling.DefaultRoles))
	require.NotNil(t, grid.Rows[0].Person)
	assert.Equal(t, "Ana", grid.Rows[0].Person.Name)
	assert.Nil(t, grid.Rows[1].Person)
}

func TestResolveGrid_DeletedPersonShowsUnassigned(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)
	d := date(t, "2024-03-09")

	p, err := svc.CreatePerson(ctx, id, roster.Person{Name: "Ana"})
	require.NoError(t, err)
	require.NoError(t, svc.SetAssignment(ctx, id, d, "preacher", p.ID))
	require.NoError(t, svc.DeletePerson(ctx, id, p.ID))

	grid, err := svc.ResolveGrid(ctx, id, d)
	require.NoError(t, err)
	assert.Nil(t, grid.Rows[0].Person)
}

func TestGridRange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)

	require.NoError(t, svc.SetAssignment(ctx, id, date(t, "2024-03-09"), "preacher", "p1"))

	grids, err := svc.GridRange(ctx, id, date(t, "2024-03-01"), date(t, "2024-03-31"))
	require.NoError(t, err)

	// Five Saturdays in March 2024
	require.Len(t, grids, 5)
	assert.Equal(t, "2024-03-02", grids[0].Date.String())
	assert.Equal(t, "2024-03-09", grids[1].Date.String())
	require.NotNil(t, grids[1].Rows)
}

// =============================================================================
// ELIGIBILITY & SUGGESTIONS
// =============================================================================

func TestEligiblePeople(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)

	_, err := svc.CreatePerson(ctx, id, roster.Person{Name: "Ana", FillableRoleIDs: []roster.RoleID{"pianist"}})
	require.NoError(t, err)
	_, err = svc.CreatePerson(ctx, id, roster.Person{Name: "Ben"})
	require.NoError(t, err)

	eligible, err := svc.EligiblePeople(ctx, id, "preacher")
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, "Ben", eligible[0].Name)
}

func TestBuildSuggestionRequest(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := newTestSchedule(t, svc)
	d := date(t, "2024-03-09")

	busy, err := svc.CreatePerson(ctx, id, roster.Person{
		Name:             "Ana",
		UnavailableDates: []roster.Date{d},
	})
	require.NoError(t, err)
	_, err = svc.CreatePerson(ctx, id, roster.Person{Name: "Ben"})
	require.NoError(t, err)
	require.NoError(t, svc.SetAssignment(ctx, id, date(t, "2024-03-02"), "preacher", "p-x"))

	req, err := svc.BuildSuggestionRequest(ctx, id, d)
	require.NoError(t, err)

	assert.Len(t, req.Roles, len(scheduling.DefaultRoles))
	require.Len(t, req.People, 2)
	for _, p := range req.People {
		if p.ID == string(busy.ID) {
			assert.True(t, p.Unavailable)
		} else {
			assert.False(t, p.Unavailable)
		}
	}
	require.Len(t, req.History, 1)
	assert.Equal(t, "2024-03-02", req.History[0].Date)
}
