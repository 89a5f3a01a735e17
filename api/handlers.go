/*
handlers.go - HTTP API handlers for the roster engine

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Schedules:
    GET    /api/schedules                      List schedules
    POST   /api/schedules                      Create schedule
    GET    /api/schedules/{id}                 Get schedule
    PUT    /api/schedules/{id}                 Update schedule metadata
    DELETE /api/schedules/{id}                 Delete schedule

  Service days:
    GET    /api/schedules/{id}/service-days            Get policy
    PUT    /api/schedules/{id}/service-days            Replace policy
    POST   /api/schedules/{id}/service-days/primary    Set primary day
    POST   /api/schedules/{id}/service-days/toggle     Toggle additional day
    POST   /api/schedules/{id}/service-days/custom     Allow custom dates
    POST   /api/schedules/{id}/service-days/church-type Apply preset

  Dates:
    GET    /api/schedules/{id}/dates/check?date=       Check + nearest
    GET    /api/schedules/{id}/dates/next?from=        Next service date
    GET    /api/schedules/{id}/dates/previous?from=    Previous service date
    GET    /api/schedules/{id}/dates/upcoming?from=&count= Upcoming dates

  Grid and assignments:
    GET    /api/schedules/{id}/grid?date=              Resolved grid
    GET    /api/schedules/{id}/grid/range?from=&to=    Grids in a window
    PUT    /api/schedules/{id}/assignments             Set/clear a slot
    DELETE /api/schedules/{id}/assignments?date=       Clear a whole date

  People and roles: standard CRUD under /api/schedules/{id}/...

  Holidays:
    GET    /api/holidays?year=            Catalog for a year
    GET    /api/holidays/upcoming?from=&count=

  Admin:
    POST   /api/admin/migrate-config      Backfill default policies

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 422: Date outside the service-day policy
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scheduling/service.go: Domain logic behind these handlers
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/inservice/roster-engine/roster"
	"github.com/inservice/roster-engine/scheduling"
	"github.com/inservice/roster-engine/suggest"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Service   *scheduling.Service
	Suggester suggest.Suggester

	validate *validator.Validate
}

// NewHandler creates a new handler over the scheduling service.
func NewHandler(svc *scheduling.Service, suggester suggest.Suggester) *Handler {
	return &Handler{
		Service:   svc,
		Suggester: suggester,
		validate:  validator.New(),
	}
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// ListSchedules returns all schedules.
// GET /api/schedules
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Service.ListSchedules(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedules", err)
		return
	}
	dtos := make([]ScheduleDTO, 0, len(schedules))
	for _, s := range schedules {
		dtos = append(dtos, toScheduleDTO(s))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSchedule creates a schedule with default roles and policy.
// POST /api/schedules
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}
	sched, err := h.Service.CreateSchedule(r.Context(), req.Name, req.Description, req.OwnerUserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, toScheduleDTO(*sched))
}

// GetSchedule returns one schedule.
// GET /api/schedules/{id}
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := h.Service.GetSchedule(r.Context(), scheduleID(r))
	if err != nil {
		writeServiceError(w, "Failed to get schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(*sched))
}

// UpdateSchedule updates name, description and admins.
// PUT /api/schedules/{id}
func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req UpdateScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}
	sched, err := h.Service.GetSchedule(r.Context(), scheduleID(r))
	if err != nil {
		writeServiceError(w, "Failed to get schedule", err)
		return
	}
	sched.Name = req.Name
	sched.Description = req.Description
	if req.AdminUserIDs != nil {
		sched.AdminUserIDs = req.AdminUserIDs
	}
	if err := h.Service.UpdateSchedule(r.Context(), *sched); err != nil {
		writeServiceError(w, "Failed to update schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(*sched))
}

// DeleteSchedule deletes a schedule and everything under it.
// DELETE /api/schedules/{id}
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteSchedule(r.Context(), scheduleID(r)); err != nil {
		writeServiceError(w, "Failed to delete schedule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SERVICE-DAY HANDLERS
// =============================================================================

// GetServiceDays returns the effective policy (default when unset).
// GET /api/schedules/{id}/service-days
func (h *Handler) GetServiceDays(w http.ResponseWriter, r *http.Request) {
	policy, err := h.Service.PolicyFor(r.Context(), scheduleID(r))
	if err != nil {
		writeServiceError(w, "Failed to get service days", err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceDaysDTO(policy))
}

// UpdateServiceDays replaces the whole policy.
// PUT /api/schedules/{id}/service-days
func (h *Handler) UpdateServiceDays(w http.ResponseWriter, r *http.Request) {
	var req UpdateServiceDaysRequest
	if !h.decode(w, r, &req) {
		return
	}
	policy := roster.ServiceDayPolicy{
		PrimaryDay:       roster.Weekday(req.PrimaryDay),
		AllowCustomDates: req.AllowCustomDates,
	}
	for _, d := range req.AdditionalDays {
		policy.AdditionalDays = append(policy.AdditionalDays, roster.Weekday(d))
	}
	if err := h.Service.UpdatePolicy(r.Context(), scheduleID(r), policy); err != nil {
		writeServiceError(w, "Failed to update service days", err)
		return
	}
	updated, err := h.Service.PolicyFor(r.Context(), scheduleID(r))
	if err != nil {
		writeServiceError(w, "Failed to read back service days", err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceDaysDTO(updated))
}

// SetPrimaryDay changes the primary service day.
// POST /api/schedules/{id}/service-days/primary
func (h *Handler) SetPrimaryDay(w http.ResponseWriter, r *http.Request) {
	var req SetPrimaryDayRequest
	if !h.decode(w, r, &req) {
		return
	}
	policy, err := h.Service.SetPrimaryDay(r.Context(), scheduleID(r), roster.Weekday(req.Day))
	if err != nil {
		writeServiceError(w, "Failed to set primary day", err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceDaysDTO(policy))
}

// ToggleAdditionalDay enables or disables an additional day.
// POST /api/schedules/{id}/service-days/toggle
func (h *Handler) ToggleAdditionalDay(w http.ResponseWriter, r *http.Request) {
	var req ToggleDayRequest
	if !h.decode(w, r, &req) {
		return
	}
	policy, err := h.Service.ToggleAdditionalDay(r.Context(), scheduleID(r), roster.Weekday(req.Day), req.Enabled)
	if err != nil {
		writeServiceError(w, "Failed to toggle day", err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceDaysDTO(policy))
}

// SetAllowCustomDates flips the custom-dates flag.
// POST /api/schedules/{id}/service-days/custom
func (h *Handler) SetAllowCustomDates(w http.ResponseWriter, r *http.Request) {
	var req AllowCustomDatesRequest
	if !h.decode(w, r, &req) {
		return
	}
	policy, err := h.Service.SetAllowCustomDates(r.Context(), scheduleID(r), req.Allow)
	if err != nil {
		writeServiceError(w, "Failed to update custom dates", err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceDaysDTO(policy))
}

// ApplyChurchType applies a named preset.
// POST /api/schedules/{id}/service-days/church-type
func (h *Handler) ApplyChurchType(w http.ResponseWriter, r *http.Request) {
	var req ApplyChurchTypeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if _, ok := roster.ChurchTypeByID(req.ChurchTypeID); !ok {
		writeError(w, http.StatusBadRequest, "Unknown church type", nil)
		return
	}
	policy, err := h.Service.ApplyChurchType(r.Context(), scheduleID(r), req.ChurchTypeID)
	if err != nil {
		writeServiceError(w, "Failed to apply church type", err)
		return
	}
	writeJSON(w, http.StatusOK, toServiceDaysDTO(policy))
}

// ListChurchTypes returns the preset catalog.
// GET /api/church-types
func (h *Handler) ListChurchTypes(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ChurchTypeDTO, 0, len(roster.ChurchTypes))
	for _, ct := range roster.ChurchTypes {
		dtos = append(dtos, ChurchTypeDTO{
			ID:          ct.ID,
			Name:        ct.Name,
			Description: ct.Description,
			ServiceDays: toServiceDaysDTO(ct.Policy),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// DATE HANDLERS
// =============================================================================

// CheckDate reports whether a date is a service day and the nearest one.
// GET /api/schedules/{id}/dates/check?date=YYYY-MM-DD
func (h *Handler) CheckDate(w http.ResponseWriter, r *http.Request) {
	date, ok := h.queryDate(w, r, "date")
	if !ok {
		return
	}
	check, err := h.Service.CheckDate(r.Context(), scheduleID(r), date)
	if err != nil {
		writeServiceError(w, "Failed to check date", err)
		return
	}
	writeJSON(w, http.StatusOK, DateCheckDTO{
		Date:         check.Date.String(),
		IsServiceDay: check.IsServiceDay,
		NearestDate:  check.Nearest.String(),
	})
}

// NextDate returns the next service date after from.
// GET /api/schedules/{id}/dates/next?from=YYYY-MM-DD
func (h *Handler) NextDate(w http.ResponseWriter, r *http.Request) {
	from, ok := h.queryDate(w, r, "from")
	if !ok {
		return
	}
	next, err := h.Service.NextServiceDate(r.Context(), scheduleID(r), from)
	if err != nil {
		writeServiceError(w, "Failed to compute next date", err)
		return
	}
	writeJSON(w, http.StatusOK, NavigateDTO{Date: next.String()})
}

// PreviousDate returns the previous service date before from.
// GET /api/schedules/{id}/dates/previous?from=YYYY-MM-DD
func (h *Handler) PreviousDate(w http.ResponseWriter, r *http.Request) {
	from, ok := h.queryDate(w, r, "from")
	if !ok {
		return
	}
	prev, err := h.Service.PreviousServiceDate(r.Context(), scheduleID(r), from)
	if err != nil {
		writeServiceError(w, "Failed to compute previous date", err)
		return
	}
	writeJSON(w, http.StatusOK, NavigateDTO{Date: prev.String()})
}

// UpcomingDates returns the next count service dates at or after from.
// GET /api/schedules/{id}/dates/upcoming?from=YYYY-MM-DD&count=N
func (h *Handler) UpcomingDates(w http.ResponseWriter, r *http.Request) {
	from, ok := h.queryDate(w, r, "from")
	if !ok {
		return
	}
	count := queryInt(r, "count", 8)
	if count < 1 || count > 52 {
		writeError(w, http.StatusBadRequest, "count must be between 1 and 52", nil)
		return
	}
	dates, err := h.Service.UpcomingServiceDates(r.Context(), scheduleID(r), from, count)
	if err != nil {
		writeServiceError(w, "Failed to compute upcoming dates", err)
		return
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	writeJSON(w, http.StatusOK, out)
}

// =============================================================================
// GRID & ASSIGNMENT HANDLERS
// =============================================================================

// GetGrid returns the resolved assignment grid for a date. Dates outside
// the policy are normalized to the nearest service day unless the
// schedule allows custom dates.
// GET /api/schedules/{id}/grid?date=YYYY-MM-DD
func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	date, ok := h.queryDate(w, r, "date")
	if !ok {
		return
	}
	grid, err := h.Service.ResolveGrid(r.Context(), scheduleID(r), date)
	if err != nil {
		writeServiceError(w, "Failed to resolve grid", err)
		return
	}
	writeJSON(w, http.StatusOK, toGridDTO(grid))
}

// GetGridRange returns one grid per service date in [from, to].
// GET /api/schedules/{id}/grid/range?from=&to=
func (h *Handler) GetGridRange(w http.ResponseWriter, r *http.Request) {
	from, ok := h.queryDate(w, r, "from")
	if !ok {
		return
	}
	to, ok := h.queryDate(w, r, "to")
	if !ok {
		return
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "to must not be before from", nil)
		return
	}
	grids, err := h.Service.GridRange(r.Context(), scheduleID(r), from, to)
	if err != nil {
		writeServiceError(w, "Failed to resolve grids", err)
		return
	}
	dtos := make([]GridDTO, 0, len(grids))
	for i := range grids {
		dtos = append(dtos, toGridDTO(&grids[i]))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SetAssignment assigns a person to a role slot, or clears it when
// person_id is empty. Last write wins on concurrent updates.
// PUT /api/schedules/{id}/assignments
func (h *Handler) SetAssignment(w http.ResponseWriter, r *http.Request) {
	var req SetAssignmentRequest
	if !h.decode(w, r, &req) {
		return
	}
	date, err := roster.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}
	err = h.Service.SetAssignment(r.Context(), scheduleID(r), date,
		roster.RoleID(req.RoleID), roster.PersonID(req.PersonID))
	if err != nil {
		writeServiceError(w, "Failed to set assignment", err)
		return
	}
	grid, err := h.Service.ResolveGrid(r.Context(), scheduleID(r), date)
	if err != nil {
		writeServiceError(w, "Failed to resolve grid", err)
		return
	}
	writeJSON(w, http.StatusOK, toGridDTO(grid))
}

// ClearDate removes every assignment on a date.
// DELETE /api/schedules/{id}/assignments?date=YYYY-MM-DD
func (h *Handler) ClearDate(w http.ResponseWriter, r *http.Request) {
	date, ok := h.queryDate(w, r, "date")
	if !ok {
		return
	}
	if err := h.Service.ClearDate(r.Context(), scheduleID(r), date); err != nil {
		writeServiceError(w, "Failed to clear assignments", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PEOPLE HANDLERS
// =============================================================================

// ListPeople returns the schedule's people.
// GET /api/schedules/{id}/people
func (h *Handler) ListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.Service.ListPeople(r.Context(), scheduleID(r))
	if err != nil {
		writeServiceError(w, "Failed to list people", err)
		return
	}
	dtos := make([]PersonDTO, 0, len(people))
	for _, p := range people {
		dtos = append(dtos, toPersonDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreatePerson adds a person to the schedule.
// POST /api/schedules/{id}/people
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodePerson(w, r, "")
	if !ok {
		return
	}
	created, err := h.Service.CreatePerson(r.Context(), scheduleID(r), p)
	if err != nil {
		writeServiceError(w, "Failed to create person", err)
		return
	}
	writeJSON(w, http.StatusCreated, toPersonDTO(*created))
}

// UpdatePerson updates a person.
// PUT /api/schedules/{id}/people/{personID}
func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodePerson(w, r, chi.URLParam(r, "personID"))
	if !ok {
		return
	}
	if err := h.Service.UpdatePerson(r.Context(), scheduleID(r), p); err != nil {
		writeServiceError(w, "Failed to update person", err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonDTO(p))
}

// DeletePerson removes a person. Their assignments remain and resolve as
// unassigned in the grid.
// DELETE /api/schedules/{id}/people/{personID}
func (h *Handler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	personID := roster.PersonID(chi.URLParam(r, "personID"))
	if err := h.Service.DeletePerson(r.Context(), scheduleID(r), personID); err != nil {
		writeServiceError(w, "Failed to delete person", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EligiblePeople lists people who can fill a role. Advisory only.
// GET /api/schedules/{id}/roles/{roleID}/eligible
func (h *Handler) EligiblePeople(w http.ResponseWriter, r *http.Request) {
	roleID := roster.RoleID(chi.URLParam(r, "roleID"))
	people, err := h.Service.EligiblePeople(r.Context(), scheduleID(r), roleID)
	if err != nil {
		writeServiceError(w, "Failed to list eligible people", err)
		return
	}
	dtos := make([]PersonDTO, 0, len(people))
	for _, p := range people {
		dtos = append(dtos, toPersonDTO(p))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) decodePerson(w http.ResponseWriter, r *http.Request, id string) (roster.Person, bool) {
	var req PersonRequest
	if !h.decode(w, r, &req) {
		return roster.Person{}, false
	}
	p := roster.Person{
		ID:          roster.PersonID(id),
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
	}
	for _, rid := range req.FillableRoleIDs {
		p.FillableRoleIDs = append(p.FillableRoleIDs, roster.RoleID(rid))
	}
	for _, ds := range req.UnavailableDates {
		d, err := roster.ParseDate(ds)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid unavailable date (use YYYY-MM-DD)", err)
			return roster.Person{}, false
		}
		p.UnavailableDates = append(p.UnavailableDates, d)
	}
	return p, true
}

// =============================================================================
// ROLE HANDLERS
// =============================================================================

// ListRoles returns the schedule's roles in display order.
// GET /api/schedules/{id}/roles
func (h *Handler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.ListRoles(r.Context(), scheduleID(r))
	if err != nil {
		writeServiceError(w, "Failed to list roles", err)
		return
	}
	dtos := make([]RoleDTO, 0, len(roles))
	for _, role := range roles {
		dtos = append(dtos, toRoleDTO(role))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRole adds a role to the schedule.
// POST /api/schedules/{id}/roles
func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if !h.decode(w, r, &req) {
		return
	}
	created, err := h.Service.CreateRole(r.Context(), scheduleID(r), roster.Role{
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		writeServiceError(w, "Failed to create role", err)
		return
	}
	writeJSON(w, http.StatusCreated, toRoleDTO(*created))
}

// UpdateRole updates a role.
// PUT /api/schedules/{id}/roles/{roleID}
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req RoleRequest
	if !h.decode(w, r, &req) {
		return
	}
	role := roster.Role{
		ID:          roster.RoleID(chi.URLParam(r, "roleID")),
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
	}
	if err := h.Service.UpdateRole(r.Context(), scheduleID(r), role); err != nil {
		writeServiceError(w, "Failed to update role", err)
		return
	}
	writeJSON(w, http.StatusOK, toRoleDTO(role))
}

// DeleteRole removes a role.
// DELETE /api/schedules/{id}/roles/{roleID}
func (h *Handler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	roleID := roster.RoleID(chi.URLParam(r, "roleID"))
	if err := h.Service.DeleteRole(r.Context(), scheduleID(r), roleID); err != nil {
		writeServiceError(w, "Failed to delete role", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns the liturgical calendar for a year.
// GET /api/holidays?year=YYYY
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", roster.Today().Year())
	if year < 1583 || year > 4099 {
		writeError(w, http.StatusBadRequest, "year out of range", nil)
		return
	}
	holidays := roster.HolidaysForYear(year)
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, toHolidayDTO(hol))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpcomingHolidays returns the next count holidays at or after from.
// GET /api/holidays/upcoming?from=YYYY-MM-DD&count=N
func (h *Handler) UpcomingHolidays(w http.ResponseWriter, r *http.Request) {
	from := roster.Today()
	if s := r.URL.Query().Get("from"); s != "" {
		var err error
		from, err = roster.ParseDate(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
			return
		}
	}
	count := queryInt(r, "count", 5)
	if count < 1 || count > 30 {
		writeError(w, http.StatusBadRequest, "count must be between 1 and 30", nil)
		return
	}
	holidays := roster.UpcomingHolidays(from, count)
	dtos := make([]HolidayDTO, 0, len(holidays))
	for _, hol := range holidays {
		dtos = append(dtos, toHolidayDTO(hol))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SUGGESTION HANDLERS
// =============================================================================

// SuggestAssignments proposes a lineup for a date. Nothing is written;
// the client applies accepted proposals through the assignment endpoint.
// POST /api/schedules/{id}/suggestions?date=YYYY-MM-DD
func (h *Handler) SuggestAssignments(w http.ResponseWriter, r *http.Request) {
	if h.Suggester == nil {
		writeError(w, http.StatusNotImplemented, "No suggester configured", nil)
		return
	}
	date, ok := h.queryDate(w, r, "date")
	if !ok {
		return
	}
	req, err := h.Service.BuildSuggestionRequest(r.Context(), scheduleID(r), date)
	if err != nil {
		writeServiceError(w, "Failed to build suggestion request", err)
		return
	}
	proposal, err := h.Suggester.Suggest(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadGateway, "Suggester failed", err)
		return
	}
	writeJSON(w, http.StatusOK, SuggestionDTO{
		Date:        date.String(),
		Assignments: proposal.Validate(req),
	})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// MigrateConfig backfills the default service-day policy into schedules
// that predate the feature. Safe to run repeatedly.
// POST /api/admin/migrate-config
func (h *Handler) MigrateConfig(w http.ResponseWriter, r *http.Request) {
	updated, err := h.Service.BackfillServiceDayConfig(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to backfill config", err)
		return
	}
	writeJSON(w, http.StatusOK, BackfillDTO{SchedulesUpdated: updated})
}

// =============================================================================
// HELPERS
// =============================================================================

func scheduleID(r *http.Request) roster.ScheduleID {
	return roster.ScheduleID(chi.URLParam(r, "id"))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

func (h *Handler) queryDate(w http.ResponseWriter, r *http.Request, param string) (roster.Date, bool) {
	s := r.URL.Query().Get(param)
	if s == "" {
		writeError(w, http.StatusBadRequest, "Missing required query parameter: "+param, nil)
		return roster.Date{}, false
	}
	d, err := roster.ParseDate(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+param+" date (use YYYY-MM-DD)", err)
		return roster.Date{}, false
	}
	return d, true
}

func queryInt(r *http.Request, param string, def int) int {
	s := r.URL.Query().Get(param)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// writeServiceError maps domain errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, message string, err error) {
	switch {
	case roster.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, roster.ErrNotAServiceDay):
		writeError(w, http.StatusUnprocessableEntity, message, err)
	case roster.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
