package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inservice/roster-engine/roster"
	"github.com/inservice/roster-engine/roster/store"
)

func TestMemory_UpsertKeepsOneRowPerSlot(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()
	d, err := roster.ParseDate("2024-03-30")
	require.NoError(t, err)

	require.NoError(t, mem.Assignments().Upsert(ctx, roster.Assignment{
		ID: "a1", ScheduleID: "s1", Date: d, RoleID: "preacher", PersonID: "person-a",
	}))
	require.NoError(t, mem.Assignments().Upsert(ctx, roster.Assignment{
		ID: "a2", ScheduleID: "s1", Date: d, RoleID: "preacher", PersonID: "person-b",
	}))

	got, err := mem.Assignments().ForDate(ctx, "s1", d)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, roster.PersonID("person-b"), got[0].PersonID)
	// Replacing a slot keeps the original record identity
	assert.Equal(t, roster.AssignmentID("a1"), got[0].ID)
}

func TestMemory_ClonesPreventAliasing(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	p := roster.Person{ID: "p1", Name: "Ana", FillableRoleIDs: []roster.RoleID{"pianist"}}
	require.NoError(t, mem.People().Create(ctx, "s1", p))

	// Mutating the caller's slice must not leak into the store
	p.FillableRoleIDs[0] = "hacked"

	got, err := mem.People().Get(ctx, "s1", "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []roster.RoleID{"pianist"}, got.FillableRoleIDs)
}

func TestMemory_ScheduleConfigLifecycle(t *testing.T) {
	mem := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, mem.Schedules().Create(ctx, roster.Schedule{ID: "s1", Name: "A"}))

	cfg, err := mem.Schedules().GetServiceDayConfig(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, cfg)

	_, err = mem.Schedules().GetServiceDayConfig(ctx, "missing")
	assert.ErrorIs(t, err, roster.ErrScheduleNotFound)

	require.NoError(t, mem.Schedules().UpdateServiceDayConfig(ctx, "s1", roster.DefaultPolicy()))
	cfg, err = mem.Schedules().GetServiceDayConfig(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, roster.Saturday, cfg.PrimaryDay)
}
