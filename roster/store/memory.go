// Package store provides Repository implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/inservice/roster-engine/roster"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory is an in-memory roster.Repository. Assignment uniqueness comes
// from keying the assignment map on (schedule, date, role), so an upsert
// can never produce a second record for the same slot.
type Memory struct {
	mu          sync.RWMutex
	schedules   map[roster.ScheduleID]roster.Schedule
	people      map[roster.ScheduleID][]roster.Person
	roles       map[roster.ScheduleID][]roster.Role
	assignments map[assignmentKey]roster.Assignment
}

type assignmentKey struct {
	ScheduleID roster.ScheduleID
	Date       string // YYYY-MM-DD
	RoleID     roster.RoleID
}

func NewMemory() *Memory {
	return &Memory{
		schedules:   make(map[roster.ScheduleID]roster.Schedule),
		people:      make(map[roster.ScheduleID][]roster.Person),
		roles:       make(map[roster.ScheduleID][]roster.Role),
		assignments: make(map[assignmentKey]roster.Assignment),
	}
}

func (m *Memory) Schedules() roster.ScheduleStore     { return (*memorySchedules)(m) }
func (m *Memory) People() roster.PersonStore          { return (*memoryPeople)(m) }
func (m *Memory) Roles() roster.RoleStore             { return (*memoryRoles)(m) }
func (m *Memory) Assignments() roster.AssignmentStore { return (*memoryAssignments)(m) }

// =============================================================================
// SCHEDULES
// =============================================================================

type memorySchedules Memory

func (m *memorySchedules) Create(_ context.Context, s roster.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[s.ID] = cloneSchedule(s)
	return nil
}

func (m *memorySchedules) Get(_ context.Context, id roster.ScheduleID) (*roster.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schedules[id]
	if !ok {
		return nil, nil
	}
	out := cloneSchedule(s)
	return &out, nil
}

func (m *memorySchedules) List(_ context.Context) ([]roster.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]roster.Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		out = append(out, cloneSchedule(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memorySchedules) Update(_ context.Context, s roster.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.schedules[s.ID]; !ok {
		return roster.ErrScheduleNotFound
	}
	m.schedules[s.ID] = cloneSchedule(s)
	return nil
}

func (m *memorySchedules) Delete(_ context.Context, id roster.ScheduleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.schedules, id)
	delete(m.people, id)
	delete(m.roles, id)
	for k := range m.assignments {
		if k.ScheduleID == id {
			delete(m.assignments, k)
		}
	}
	return nil
}

func (m *memorySchedules) GetServiceDayConfig(_ context.Context, id roster.ScheduleID) (*roster.ServiceDayPolicy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schedules[id]
	if !ok {
		return nil, roster.ErrScheduleNotFound
	}
	if s.ServiceDayConfig == nil {
		return nil, nil
	}
	p := clonePolicy(*s.ServiceDayConfig)
	return &p, nil
}

func (m *memorySchedules) UpdateServiceDayConfig(_ context.Context, id roster.ScheduleID, policy roster.ServiceDayPolicy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.schedules[id]
	if !ok {
		return roster.ErrScheduleNotFound
	}
	p := clonePolicy(policy)
	s.ServiceDayConfig = &p
	m.schedules[id] = s
	return nil
}

// =============================================================================
// PEOPLE
// =============================================================================

type memoryPeople Memory

func (m *memoryPeople) List(_ context.Context, scheduleID roster.ScheduleID) ([]roster.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]roster.Person, 0, len(m.people[scheduleID]))
	for _, p := range m.people[scheduleID] {
		out = append(out, clonePerson(p))
	}
	return out, nil
}

func (m *memoryPeople) Get(_ context.Context, scheduleID roster.ScheduleID, id roster.PersonID) (*roster.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.people[scheduleID] {
		if p.ID == id {
			out := clonePerson(p)
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memoryPeople) Create(_ context.Context, scheduleID roster.ScheduleID, p roster.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.people[scheduleID] = append(m.people[scheduleID], clonePerson(p))
	return nil
}

func (m *memoryPeople) Update(_ context.Context, scheduleID roster.ScheduleID, p roster.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.people[scheduleID] {
		if existing.ID == p.ID {
			m.people[scheduleID][i] = clonePerson(p)
			return nil
		}
	}
	return roster.ErrPersonNotFound
}

func (m *memoryPeople) Delete(_ context.Context, scheduleID roster.ScheduleID, id roster.PersonID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	people := m.people[scheduleID]
	for i, p := range people {
		if p.ID == id {
			// Assignments referencing the person stay behind; the grid
			// resolves them as unassigned.
			m.people[scheduleID] = append(people[:i], people[i+1:]...)
			return nil
		}
	}
	return nil
}

// =============================================================================
// ROLES
// =============================================================================

type memoryRoles Memory

func (m *memoryRoles) List(_ context.Context, scheduleID roster.ScheduleID) ([]roster.Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]roster.Role, len(m.roles[scheduleID]))
	copy(out, m.roles[scheduleID])
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memoryRoles) Create(_ context.Context, scheduleID roster.ScheduleID, r roster.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[scheduleID] = append(m.roles[scheduleID], r)
	return nil
}

func (m *memoryRoles) Update(_ context.Context, scheduleID roster.ScheduleID, r roster.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.roles[scheduleID] {
		if existing.ID == r.ID {
			m.roles[scheduleID][i] = r
			return nil
		}
	}
	return roster.ErrRoleNotFound
}

func (m *memoryRoles) Delete(_ context.Context, scheduleID roster.ScheduleID, id roster.RoleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	roles := m.roles[scheduleID]
	for i, r := range roles {
		if r.ID == id {
			m.roles[scheduleID] = append(roles[:i], roles[i+1:]...)
			return nil
		}
	}
	return nil
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

type memoryAssignments Memory

func (m *memoryAssignments) ForDate(_ context.Context, scheduleID roster.ScheduleID, date roster.Date) ([]roster.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []roster.Assignment
	for k, a := range m.assignments {
		if k.ScheduleID == scheduleID && k.Date == date.String() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoleID < out[j].RoleID })
	return out, nil
}

func (m *memoryAssignments) Range(_ context.Context, scheduleID roster.ScheduleID, from, to roster.Date) ([]roster.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []roster.Assignment
	for k, a := range m.assignments {
		// Date strings compare in calendar order.
		if k.ScheduleID == scheduleID && k.Date >= from.String() && k.Date <= to.String() {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].RoleID < out[j].RoleID
	})
	return out, nil
}

func (m *memoryAssignments) Upsert(_ context.Context, a roster.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := assignmentKey{ScheduleID: a.ScheduleID, Date: a.Date.String(), RoleID: a.RoleID}
	if existing, ok := m.assignments[k]; ok {
		a.ID = existing.ID // update in place keeps the record identity
	}
	m.assignments[k] = a
	return nil
}

func (m *memoryAssignments) Delete(_ context.Context, scheduleID roster.ScheduleID, date roster.Date, roleID roster.RoleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assignments, assignmentKey{ScheduleID: scheduleID, Date: date.String(), RoleID: roleID})
	return nil
}

func (m *memoryAssignments) DeleteForDate(_ context.Context, scheduleID roster.ScheduleID, date roster.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.assignments {
		if k.ScheduleID == scheduleID && k.Date == date.String() {
			delete(m.assignments, k)
		}
	}
	return nil
}

// =============================================================================
// CLONE HELPERS - Keep callers from aliasing stored slices
// =============================================================================

func cloneSchedule(s roster.Schedule) roster.Schedule {
	out := s
	out.AdminUserIDs = append([]string(nil), s.AdminUserIDs...)
	if s.ServiceDayConfig != nil {
		p := clonePolicy(*s.ServiceDayConfig)
		out.ServiceDayConfig = &p
	}
	return out
}

func clonePolicy(p roster.ServiceDayPolicy) roster.ServiceDayPolicy {
	out := p
	out.AdditionalDays = append([]roster.Weekday(nil), p.AdditionalDays...)
	return out
}

func clonePerson(p roster.Person) roster.Person {
	out := p
	out.FillableRoleIDs = append([]roster.RoleID(nil), p.FillableRoleIDs...)
	out.UnavailableDates = append([]roster.Date(nil), p.UnavailableDates...)
	return out
}
