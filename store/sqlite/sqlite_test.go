package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inservice/roster-engine/roster"
	"github.com/inservice/roster-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testDate(t *testing.T, s string) roster.Date {
	t.Helper()
	d, err := roster.ParseDate(s)
	require.NoError(t, err)
	return d
}

func createSchedule(t *testing.T, s *sqlite.Store, id roster.ScheduleID) {
	t.Helper()
	policy := roster.DefaultPolicy()
	require.NoError(t, s.Schedules().Create(context.Background(), roster.Schedule{
		ID:               id,
		Name:             "Test Schedule",
		OwnerUserID:      "user-1",
		AdminUserIDs:     []string{"user-1"},
		ServiceDayConfig: &policy,
	}))
}

// =============================================================================
// SCHEDULES
// =============================================================================

func TestSchedule_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createSchedule(t, s, "sched-1")

	got, err := s.Schedules().Get(ctx, "sched-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Test Schedule", got.Name)
	assert.Equal(t, []string{"user-1"}, got.AdminUserIDs)
	require.NotNil(t, got.ServiceDayConfig)
	assert.Equal(t, roster.Saturday, got.ServiceDayConfig.PrimaryDay)
}

func TestSchedule_GetMissingReturnsNil(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Schedules().Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSchedule_ConfigNullMeansUnset(t *testing.T) {
	// A schedule created without service-day config (pre-migration data)
	// reads back with a nil config and no error.
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Schedules().Create(ctx, roster.Schedule{ID: "legacy", Name: "Old"}))

	cfg, err := s.Schedules().GetServiceDayConfig(ctx, "legacy")
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestSchedule_ConfigMissingSchedule(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Schedules().GetServiceDayConfig(context.Background(), "missing")
	assert.True(t, errors.Is(err, roster.ErrScheduleNotFound))
}

func TestSchedule_UpdateConfigRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createSchedule(t, s, "sched-1")

	policy := roster.ServiceDayPolicy{
		PrimaryDay:       roster.Sunday,
		AdditionalDays:   []roster.Weekday{roster.Wednesday, roster.Friday},
		AllowCustomDates: true,
	}
	require.NoError(t, s.Schedules().UpdateServiceDayConfig(ctx, "sched-1", policy))

	got, err := s.Schedules().GetServiceDayConfig(ctx, "sched-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, roster.Sunday, got.PrimaryDay)
	assert.Equal(t, []roster.Weekday{roster.Wednesday, roster.Friday}, got.AdditionalDays)
	assert.True(t, got.AllowCustomDates)
}

func TestSchedule_DeleteCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createSchedule(t, s, "sched-1")

	require.NoError(t, s.Roles().Create(ctx, "sched-1", roster.Role{ID: "preacher", Name: "Preacher"}))
	require.NoError(t, s.People().Create(ctx, "sched-1", roster.Person{ID: "p1", Name: "Ana"}))
	require.NoError(t, s.Assignments().Upsert(ctx, roster.Assignment{
		ID: "a1", ScheduleID: "sched-1", Date: testDate(t, "2024-03-09"), RoleID: "preacher", PersonID: "p1",
	}))

	require.NoError(t, s.Schedules().Delete(ctx, "sched-1"))

	got, err := s.Schedules().Get(ctx, "sched-1")
	require.NoError(t, err)
	assert.Nil(t, got)
	roles, err := s.Roles().List(ctx, "sched-1")
	require.NoError(t, err)
	assert.Empty(t, roles)
	assignments, err := s.Assignments().ForDate(ctx, "sched-1", testDate(t, "2024-03-09"))
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

// =============================================================================
// PEOPLE & ROLES
// =============================================================================

func TestPerson_RoundTripJSONColumns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createSchedule(t, s, "sched-1")

	p := roster.Person{
		ID:               "p1",
		Name:             "Ana",
		ContactInfo:      "ana@example.com",
		FillableRoleIDs:  []roster.RoleID{"preacher", "pianist"},
		UnavailableDates: []roster.Date{testDate(t, "2024-03-09"), testDate(t, "2024-04-06")},
	}
	require.NoError(t, s.People().Create(ctx, "sched-1", p))

	got, err := s.People().Get(ctx, "sched-1", "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.FillableRoleIDs, got.FillableRoleIDs)
	require.Len(t, got.UnavailableDates, 2)
	assert.Equal(t, "2024-03-09", got.UnavailableDates[0].String())
}

func TestPerson_UpdateMissing(t *testing.T) {
	s := newTestStore(t)
	createSchedule(t, s, "sched-1")

	err := s.People().Update(context.Background(), "sched-1", roster.Person{ID: "ghost", Name: "X"})
	assert.True(t, errors.Is(err, roster.ErrPersonNotFound))
}

func TestRoles_OrderedByPosition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createSchedule(t, s, "sched-1")

	require.NoError(t, s.Roles().Create(ctx, "sched-1", roster.Role{ID: "greeter", Name: "Greeter", Position: 2}))
	require.NoError(t, s.Roles().Create(ctx, "sched-1", roster.Role{ID: "preacher", Name: "Preacher", Position: 0}))
	require.NoError(t, s.Roles().Create(ctx, "sched-1", roster.Role{ID: "pianist", Name: "Pianist", Position: 1}))

	roles, err := s.Roles().List(ctx, "sched-1")
	require.NoError(t, err)
	require.Len(t, roles, 3)
	assert.Equal(t, roster.RoleID("preacher"), roles[0].ID)
	assert.Equal(t, roster.RoleID("pianist"), roles[1].ID)
	assert.Equal(t, roster.RoleID("greeter"), roles[2].ID)
}

// =============================================================================
// ASSIGNMENTS - UNIQUENESS INVARIANT
// =============================================================================

func TestAssignment_UpsertReplacesSlot(t *testing.T) {
	// Two writes to the same (schedule, date, role) key leave exactly
	// one row, carrying the second person.
	s := newTestStore(t)
	ctx := context.Background()
	createSchedule(t, s, "sched-1")
	d := testDate(t, "2024-03-30")

	require.NoError(t, s.Assignments().Upsert(ctx, roster.Assignment{
		ID: "a1", ScheduleID: "sched-1", Date: d, RoleID: "preacher", PersonID: "person-a",
	}))
	require.NoError(t, s.Assignments().Upsert(ctx, roster.Assignment{
		ID: "a2", ScheduleID: "sched-1", Date: d, RoleID: "preacher", PersonID: "person-b",
	}))

	assignments, err := s.Assignments().ForDate(ctx, "sched-1", d)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, roster.PersonID("person-b"), assignments[0].PersonID)
}

func TestAssignment_DeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createSchedule(t, s, "sched-1")
	d := testDate(t, "2024-03-30")

	// Deleting a slot that was never written is not an error
	require.NoError(t, s.Assignments().Delete(ctx, "sched-1", d, "preacher"))

	require.NoError(t, s.Assignments().Upsert(ctx, roster.Assignment{
		ID: "a1", ScheduleID: "sched-1", Date: d, RoleID: "preacher", PersonID: "p1",
	}))
	require.NoError(t, s.Assignments().Delete(ctx, "sched-1", d, "preacher"))

	assignments, err := s.Assignments().ForDate(ctx, "sched-1", d)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestAssignment_RangeQuery(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createSchedule(t, s, "sched-1")

	for i, ds := range []string{"2024-03-02", "2024-03-09", "2024-03-16", "2024-04-06"} {
		require.NoError(t, s.Assignments().Upsert(ctx, roster.Assignment{
			ID:         roster.AssignmentID(fmt.Sprintf("a%d", i)),
			ScheduleID: "sched-1",
			Date:       testDate(t, ds),
			RoleID:     "preacher",
			PersonID:   "p1",
		}))
	}

	got, err := s.Assignments().Range(ctx, "sched-1", testDate(t, "2024-03-05"), testDate(t, "2024-03-31"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-09", got[0].Date.String())
	assert.Equal(t, "2024-03-16", got[1].Date.String())
}

func TestAssignment_DeleteForDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	createSchedule(t, s, "sched-1")
	d := testDate(t, "2024-03-09")

	require.NoError(t, s.Assignments().Upsert(ctx, roster.Assignment{
		ID: "a1", ScheduleID: "sched-1", Date: d, RoleID: "preacher", PersonID: "p1",
	}))
	require.NoError(t, s.Assignments().Upsert(ctx, roster.Assignment{
		ID: "a2", ScheduleID: "sched-1", Date: d, RoleID: "pianist", PersonID: "p2",
	}))

	require.NoError(t, s.Assignments().DeleteForDate(ctx, "sched-1", d))

	assignments, err := s.Assignments().ForDate(ctx, "sched-1", d)
	require.NoError(t, err)
	assert.Empty(t, assignments)
}
