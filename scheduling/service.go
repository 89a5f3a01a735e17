/*
Package scheduling is the application layer tying the pure roster engine
to a repository.

PURPOSE:
  Every operation the HTTP API exposes lives here as a method on Service.
  The package owns the read-modify-write sequences (load policy, apply a
  pure transformation, persist) and the service-day gate on writes. The
  pure calendar math itself lives in the roster package and never touches
  storage.

POLICY RESOLUTION:
  Schedules created before service-day configuration existed have no
  stored policy. PolicyFor treats a missing config as the default
  Saturday-only policy, so every caller always gets a usable policy and
  legacy schedules keep behaving exactly as they did before the feature
  shipped. BackfillServiceDayConfig persists that default explicitly.

WRITE GATE:
  SetAssignment and ClearDate refuse dates the schedule's policy does not
  allow (NotAServiceDayError) unless AllowCustomDates is on. Reads never
  gate: the grid will happily show an empty row set for a Tuesday.

SEE ALSO:
  - roster/navigator.go: date navigation used by ResolveGrid
  - roster/grid.go: grid construction
  - api/handlers.go: HTTP surface over this service
*/
package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/inservice/roster-engine/roster"
	"github.com/inservice/roster-engine/suggest"
)

// Service implements the scheduling operations over a repository.
type Service struct {
	repo roster.Repository
}

func New(repo roster.Repository) *Service {
	return &Service{repo: repo}
}

// DefaultRoles is the role catalog seeded into every new schedule. Admins
// can rename, reorder or delete them afterwards.
var DefaultRoles = []roster.Role{
	{ID: "preacher", Name: "Preacher", Description: "Delivers the sermon", Position: 0},
	{ID: "elder-on-duty", Name: "Elder on Duty", Description: "Presides over the service", Position: 1},
	{ID: "sabbath-school-host", Name: "Sabbath School Host", Description: "Leads the Sabbath school program", Position: 2},
	{ID: "pianist", Name: "Pianist", Description: "Accompanies hymns and special music", Position: 3},
	{ID: "song-leader", Name: "Song Leader", Description: "Leads congregational singing", Position: 4},
	{ID: "deacon", Name: "Deacon", Description: "Handles offering and practical arrangements", Position: 5},
	{ID: "greeter", Name: "Greeter", Description: "Welcomes members and visitors at the door", Position: 6},
}

// ==== SCHEDULES ====

// CreateSchedule creates a schedule owned by ownerUserID with the default
// Saturday policy and the default role catalog.
func (s *Service) CreateSchedule(ctx context.Context, name, description, ownerUserID string) (*roster.Schedule, error) {
	policy := roster.DefaultPolicy()
	sched := roster.Schedule{
		ID:               roster.ScheduleID(uuid.NewString()),
		Name:             name,
		Description:      description,
		OwnerUserID:      ownerUserID,
		AdminUserIDs:     []string{ownerUserID},
		ServiceDayConfig: &policy,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.Schedules().Create(ctx, sched); err != nil {
		return nil, err
	}
	for _, role := range DefaultRoles {
		if err := s.repo.Roles().Create(ctx, sched.ID, role); err != nil {
			return nil, err
		}
	}
	return &sched, nil
}

func (s *Service) GetSchedule(ctx context.Context, id roster.ScheduleID) (*roster.Schedule, error) {
	sched, err := s.repo.Schedules().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, roster.ErrScheduleNotFound
	}
	return sched, nil
}

func (s *Service) ListSchedules(ctx context.Context) ([]roster.Schedule, error) {
	return s.repo.Schedules().List(ctx)
}

func (s *Service) UpdateSchedule(ctx context.Context, sched roster.Schedule) error {
	return s.repo.Schedules().Update(ctx, sched)
}

func (s *Service) DeleteSchedule(ctx context.Context, id roster.ScheduleID) error {
	if _, err := s.GetSchedule(ctx, id); err != nil {
		return err
	}
	return s.repo.Schedules().Delete(ctx, id)
}

// ==== SERVICE-DAY POLICY ====

// PolicyFor returns the schedule's service-day policy, falling back to
// the default Saturday policy when none has been stored yet.
func (s *Service) PolicyFor(ctx context.Context, id roster.ScheduleID) (roster.ServiceDayPolicy, error) {
	cfg, err := s.repo.Schedules().GetServiceDayConfig(ctx, id)
	if err != nil {
		return roster.ServiceDayPolicy{}, err
	}
	if cfg == nil {
		return roster.DefaultPolicy(), nil
	}
	return *cfg, nil
}

// UpdatePolicy replaces the whole policy after validating it.
func (s *Service) UpdatePolicy(ctx context.Context, id roster.ScheduleID, policy roster.ServiceDayPolicy) error {
	if !policy.PrimaryDay.Valid() {
		return roster.ErrInvalidWeekday
	}
	for _, day := range policy.AdditionalDays {
		if !day.Valid() {
			return roster.ErrInvalidWeekday
		}
	}
	// Normalize: primary never appears among additional days, and the
	// additional list stays sorted and deduplicated.
	normalized := roster.DefaultPolicy().
		SetPrimaryDay(policy.PrimaryDay).
		SetAllowCustomDates(policy.AllowCustomDates)
	for _, day := range policy.AdditionalDays {
		normalized = normalized.ToggleAdditionalDay(day, true)
	}
	return s.repo.Schedules().UpdateServiceDayConfig(ctx, id, normalized)
}

// SetPrimaryDay changes the primary service day, removing it from the
// additional-days list if present.
func (s *Service) SetPrimaryDay(ctx context.Context, id roster.ScheduleID, day roster.Weekday) (roster.ServiceDayPolicy, error) {
	if !day.Valid() {
		return roster.ServiceDayPolicy{}, roster.ErrInvalidWeekday
	}
	policy, err := s.PolicyFor(ctx, id)
	if err != nil {
		return roster.ServiceDayPolicy{}, err
	}
	policy = policy.SetPrimaryDay(day)
	if err := s.repo.Schedules().UpdateServiceDayConfig(ctx, id, policy); err != nil {
		return roster.ServiceDayPolicy{}, err
	}
	return policy, nil
}

// ToggleAdditionalDay enables or disables an additional service day.
// Toggling the primary day is a no-op.
func (s *Service) ToggleAdditionalDay(ctx context.Context, id roster.ScheduleID, day roster.Weekday, enabled bool) (roster.ServiceDayPolicy, error) {
	if !day.Valid() {
		return roster.ServiceDayPolicy{}, roster.ErrInvalidWeekday
	}
	policy, err := s.PolicyFor(ctx, id)
	if err != nil {
		return roster.ServiceDayPolicy{}, err
	}
	policy = policy.ToggleAdditionalDay(day, enabled)
	if err := s.repo.Schedules().UpdateServiceDayConfig(ctx, id, policy); err != nil {
		return roster.ServiceDayPolicy{}, err
	}
	return policy, nil
}

// SetAllowCustomDates flips the custom-dates escape hatch.
func (s *Service) SetAllowCustomDates(ctx context.Context, id roster.ScheduleID, allow bool) (roster.ServiceDayPolicy, error) {
	policy, err := s.PolicyFor(ctx, id)
	if err != nil {
		return roster.ServiceDayPolicy{}, err
	}
	policy = policy.SetAllowCustomDates(allow)
	if err := s.repo.Schedules().UpdateServiceDayConfig(ctx, id, policy); err != nil {
		return roster.ServiceDayPolicy{}, err
	}
	return policy, nil
}

// ApplyChurchType applies a named preset to the schedule's policy.
func (s *Service) ApplyChurchType(ctx context.Context, id roster.ScheduleID, churchTypeID string) (roster.ServiceDayPolicy, error) {
	ct, ok := roster.ChurchTypeByID(churchTypeID)
	if !ok {
		return roster.ServiceDayPolicy{}, fmt.Errorf("%w: %q", roster.ErrUnknownChurchType, churchTypeID)
	}
	policy := ct.Policy
	if err := s.repo.Schedules().UpdateServiceDayConfig(ctx, id, policy); err != nil {
		return roster.ServiceDayPolicy{}, err
	}
	return policy, nil
}

// BackfillServiceDayConfig writes the default policy to every schedule
// that has none. Idempotent: schedules with a stored policy are skipped.
// Returns the number of schedules updated.
func (s *Service) BackfillServiceDayConfig(ctx context.Context) (int, error) {
	schedules, err := s.repo.Schedules().List(ctx)
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, sched := range schedules {
		cfg, err := s.repo.Schedules().GetServiceDayConfig(ctx, sched.ID)
		if err != nil {
			return updated, err
		}
		if cfg != nil {
			continue
		}
		if err := s.repo.Schedules().UpdateServiceDayConfig(ctx, sched.ID, roster.DefaultPolicy()); err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}

// ==== DATE NAVIGATION ====

// DateCheck reports whether a date is a legal service day and, when it
// is not, the nearest legal day at or after it.
type DateCheck struct {
	Date         roster.Date
	IsServiceDay bool
	Nearest      roster.Date
}

func (s *Service) CheckDate(ctx context.Context, id roster.ScheduleID, date roster.Date) (DateCheck, error) {
	policy, err := s.PolicyFor(ctx, id)
	if err != nil {
		return DateCheck{}, err
	}
	check := DateCheck{Date: date, IsServiceDay: policy.IsServiceDay(date)}
	nearest, err := roster.NearestServiceDate(date, policy)
	if err != nil {
		return check, err
	}
	check.Nearest = nearest
	return check, nil
}

func (s *Service) NextServiceDate(ctx context.Context, id roster.ScheduleID, current roster.Date) (roster.Date, error) {
	policy, err := s.PolicyFor(ctx, id)
	if err != nil {
		return roster.Date{}, err
	}
	return roster.NextServiceDate(current, policy)
}

func (s *Service) PreviousServiceDate(ctx context.Context, id roster.ScheduleID, current roster.Date) (roster.Date, error) {
	policy, err := s.PolicyFor(ctx, id)
	if err != nil {
		return roster.Date{}, err
	}
	return roster.PreviousServiceDate(current, policy)
}

func (s *Service) UpcomingServiceDates(ctx context.Context, id roster.ScheduleID, from roster.Date, count int) ([]roster.Date, error) {
	policy, err := s.PolicyFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return roster.UpcomingServiceDates(from, count, policy)
}

// ==== GRID ====

// Grid is a resolved assignment grid for one service date.
type Grid struct {
	ScheduleID roster.ScheduleID
	Date       roster.Date
	Requested  roster.Date
	Rows       []roster.GridRow
}

// ResolveGrid builds the grid for the requested date. Unless the policy
// allows custom dates, the date is first normalized to the nearest legal
// service day, so navigating to a Monday lands on the same grid the date
// picker would.
func (s *Service) ResolveGrid(ctx context.Context, id roster.ScheduleID, requested roster.Date) (*Grid, error) {
	policy, err := s.PolicyFor(ctx, id)
	if err != nil {
		return nil, err
	}

	// With custom dates allowed every date is a service day, so the
	// requested date passes through untouched.
	date := requested
	if !policy.IsServiceDay(requested) {
		date, err = roster.NearestServiceDate(requested, policy)
		if err != nil {
			return nil, err
		}
	}

	roles, err := s.repo.Roles().List(ctx, id)
	if err != nil {
		return nil, err
	}
	assignments, err := s.repo.Assignments().ForDate(ctx, id, date)
	if err != nil {
		return nil, err
	}
	people, err := s.repo.People().List(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Grid{
		ScheduleID: id,
		Date:       date,
		Requested:  requested,
		Rows:       roster.BuildAssignmentGrid(roles, assignments, people),
	}, nil
}

// GridRange resolves one grid per service date in [from, to].
func (s *Service) GridRange(ctx context.Context, id roster.ScheduleID, from, to roster.Date) ([]Grid, error) {
	policy, err := s.PolicyFor(ctx, id)
	if err != nil {
		return nil, err
	}
	roles, err := s.repo.Roles().List(ctx, id)
	if err != nil {
		return nil, err
	}
	people, err := s.repo.People().List(ctx, id)
	if err != nil {
		return nil, err
	}
	assignments, err := s.repo.Assignments().Range(ctx, id, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]roster.Assignment)
	for _, a := range assignments {
		key := a.Date.String()
		byDate[key] = append(byDate[key], a)
	}

	// Service dates in the window, plus any custom dates that carry
	// assignments.
	dates := make(map[string]roster.Date)
	for d := from; !d.After(to); d = d.AddDays(1) {
		if policy.IsServiceDay(d) {
			dates[d.String()] = d
		}
	}
	for _, a := range assignments {
		dates[a.Date.String()] = a.Date
	}

	keys := make([]string, 0, len(dates))
	for k := range dates {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	grids := make([]Grid, 0, len(keys))
	for _, k := range keys {
		d := dates[k]
		grids = append(grids, Grid{
			ScheduleID: id,
			Date:       d,
			Requested:  d,
			Rows:       roster.BuildAssignmentGrid(roles, byDate[k], people),
		})
	}
	return grids, nil
}

// ==== ASSIGNMENTS ====

// SetAssignment assigns personID to (date, roleID), replacing any
// existing assignment in that slot. An empty personID clears the slot.
// Dates outside the policy are rejected unless custom dates are allowed.
// Eligibility is advisory and never checked here.
func (s *Service) SetAssignment(ctx context.Context, id roster.ScheduleID, date roster.Date, roleID roster.RoleID, personID roster.PersonID) error {
	policy, err := s.PolicyFor(ctx, id)
	if err != nil {
		return err
	}
	if !policy.IsServiceDay(date) && !policy.AllowCustomDates {
		return &roster.NotAServiceDayError{ScheduleID: id, Date: date}
	}

	if personID == "" {
		return s.repo.Assignments().Delete(ctx, id, date, roleID)
	}

	return s.repo.Assignments().Upsert(ctx, roster.Assignment{
		ID:         roster.AssignmentID(uuid.NewString()),
		ScheduleID: id,
		Date:       date,
		RoleID:     roleID,
		PersonID:   personID,
	})
}

// ClearAssignment removes the assignment in the slot, if any.
func (s *Service) ClearAssignment(ctx context.Context, id roster.ScheduleID, date roster.Date, roleID roster.RoleID) error {
	return s.repo.Assignments().Delete(ctx, id, date, roleID)
}

// ClearDate removes every assignment on the date.
func (s *Service) ClearDate(ctx context.Context, id roster.ScheduleID, date roster.Date) error {
	return s.repo.Assignments().DeleteForDate(ctx, id, date)
}

// ==== PEOPLE ====

func (s *Service) ListPeople(ctx context.Context, id roster.ScheduleID) ([]roster.Person, error) {
	return s.repo.People().List(ctx, id)
}

func (s *Service) CreatePerson(ctx context.Context, id roster.ScheduleID, p roster.Person) (*roster.Person, error) {
	if p.ID == "" {
		p.ID = roster.PersonID(uuid.NewString())
	}
	if err := s.repo.People().Create(ctx, id, p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) UpdatePerson(ctx context.Context, id roster.ScheduleID, p roster.Person) error {
	return s.repo.People().Update(ctx, id, p)
}

func (s *Service) DeletePerson(ctx context.Context, id roster.ScheduleID, personID roster.PersonID) error {
	return s.repo.People().Delete(ctx, id, personID)
}

// EligiblePeople returns the people who list roleID among their fillable
// roles (or list nothing, which means any role). Advisory only.
func (s *Service) EligiblePeople(ctx context.Context, id roster.ScheduleID, roleID roster.RoleID) ([]roster.Person, error) {
	people, err := s.repo.People().List(ctx, id)
	if err != nil {
		return nil, err
	}
	return roster.EligiblePeopleForRole(roster.Role{ID: roleID}, people), nil
}

// ==== ROLES ====

func (s *Service) ListRoles(ctx context.Context, id roster.ScheduleID) ([]roster.Role, error) {
	return s.repo.Roles().List(ctx, id)
}

func (s *Service) CreateRole(ctx context.Context, id roster.ScheduleID, r roster.Role) (*roster.Role, error) {
	if r.ID == "" {
		r.ID = roster.RoleID(uuid.NewString())
	}
	if err := s.repo.Roles().Create(ctx, id, r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Service) UpdateRole(ctx context.Context, id roster.ScheduleID, r roster.Role) error {
	return s.repo.Roles().Update(ctx, id, r)
}

func (s *Service) DeleteRole(ctx context.Context, id roster.ScheduleID, roleID roster.RoleID) error {
	return s.repo.Roles().Delete(ctx, id, roleID)
}

// ==== SUGGESTIONS ====

// BuildSuggestionRequest gathers everything a suggester needs to propose
// a lineup for the date: the roles, each person's eligibility and
// availability, and recent assignment history for rotation fairness.
func (s *Service) BuildSuggestionRequest(ctx context.Context, id roster.ScheduleID, date roster.Date) (*suggest.Request, error) {
	roles, err := s.repo.Roles().List(ctx, id)
	if err != nil {
		return nil, err
	}
	people, err := s.repo.People().List(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.Assignments().Range(ctx, id, date.AddDays(-suggest.HistoryDays), date.AddDays(-1))
	if err != nil {
		return nil, err
	}

	req := &suggest.Request{Date: date}
	for _, r := range roles {
		req.Roles = append(req.Roles, suggest.RoleSlot{ID: string(r.ID), Name: r.Name})
	}
	for _, p := range people {
		pa := suggest.PersonAvailability{
			ID:   string(p.ID),
			Name: p.Name,
		}
		for _, rid := range p.FillableRoleIDs {
			pa.FillableRoleIDs = append(pa.FillableRoleIDs, string(rid))
		}
		for _, d := range p.UnavailableDates {
			if d.Equal(date) {
				pa.Unavailable = true
			}
		}
		req.People = append(req.People, pa)
	}
	for _, a := range history {
		req.History = append(req.History, suggest.HistoryEntry{
			Date:     a.Date.String(),
			RoleID:   string(a.RoleID),
			PersonID: string(a.PersonID),
		})
	}
	return req, nil
}
