/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

DATES:
  All dates cross the wire as YYYY-MM-DD strings. Weekdays are integers
  0-6 with 0 = Sunday.

VALIDATION:
  Request types carry validator struct tags; handlers run them through
  the shared validator instance before touching the service.

SEE ALSO:
  - handlers.go: Uses these types
  - roster/types.go: Domain model these map from
*/
package api

import (
	"github.com/inservice/roster-engine/roster"
	"github.com/inservice/roster-engine/scheduling"
)

// =============================================================================
// SCHEDULES
// =============================================================================

// ScheduleDTO represents a schedule in API responses.
type ScheduleDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	OwnerUserID  string          `json:"owner_user_id"`
	AdminUserIDs []string        `json:"admin_user_ids"`
	ServiceDays  *ServiceDaysDTO `json:"service_days,omitempty"`
	CreatedAt    string          `json:"created_at,omitempty"`
}

// CreateScheduleRequest is the request to create a schedule.
type CreateScheduleRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	OwnerUserID string `json:"owner_user_id" validate:"required"`
}

// UpdateScheduleRequest is the request to update schedule metadata.
type UpdateScheduleRequest struct {
	Name         string   `json:"name" validate:"required,min=1,max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	AdminUserIDs []string `json:"admin_user_ids"`
}

// =============================================================================
// SERVICE DAYS
// =============================================================================

// ServiceDaysDTO represents a schedule's service-day policy.
type ServiceDaysDTO struct {
	PrimaryDay       int    `json:"primary_day"`
	PrimaryDayName   string `json:"primary_day_name"`
	AdditionalDays   []int  `json:"additional_days"`
	AllowCustomDates bool   `json:"allow_custom_dates"`
}

// UpdateServiceDaysRequest replaces the whole policy.
type UpdateServiceDaysRequest struct {
	PrimaryDay       int   `json:"primary_day" validate:"min=0,max=6"`
	AdditionalDays   []int `json:"additional_days" validate:"dive,min=0,max=6"`
	AllowCustomDates bool  `json:"allow_custom_dates"`
}

// SetPrimaryDayRequest changes just the primary day.
type SetPrimaryDayRequest struct {
	Day int `json:"day" validate:"min=0,max=6"`
}

// ToggleDayRequest enables or disables an additional day.
type ToggleDayRequest struct {
	Day     int  `json:"day" validate:"min=0,max=6"`
	Enabled bool `json:"enabled"`
}

// AllowCustomDatesRequest flips the custom-dates flag.
type AllowCustomDatesRequest struct {
	Allow bool `json:"allow"`
}

// ApplyChurchTypeRequest applies a named preset.
type ApplyChurchTypeRequest struct {
	ChurchTypeID string `json:"church_type_id" validate:"required"`
}

// ChurchTypeDTO describes one preset for client pickers.
type ChurchTypeDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ServiceDays ServiceDaysDTO `json:"service_days"`
}

// =============================================================================
// DATES
// =============================================================================

// DateCheckDTO reports whether a date is a service day.
type DateCheckDTO struct {
	Date         string `json:"date"`
	IsServiceDay bool   `json:"is_service_day"`
	NearestDate  string `json:"nearest_date"`
}

// NavigateDTO is the result of next/previous navigation.
type NavigateDTO struct {
	Date string `json:"date"`
}

// =============================================================================
// PEOPLE / ROLES
// =============================================================================

// PersonDTO represents a person in API responses.
type PersonDTO struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	ContactInfo      string   `json:"contact_info,omitempty"`
	FillableRoleIDs  []string `json:"fillable_role_ids"`
	UnavailableDates []string `json:"unavailable_dates,omitempty"`
}

// PersonRequest creates or updates a person.
type PersonRequest struct {
	Name             string   `json:"name" validate:"required,min=1,max=200"`
	ContactInfo      string   `json:"contact_info" validate:"max=500"`
	FillableRoleIDs  []string `json:"fillable_role_ids"`
	UnavailableDates []string `json:"unavailable_dates" validate:"dive,datetime=2006-01-02"`
}

// RoleDTO represents a role in API responses.
type RoleDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Position    int    `json:"position"`
}

// RoleRequest creates or updates a role.
type RoleRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Position    int    `json:"position" validate:"min=0"`
}

// =============================================================================
// GRID / ASSIGNMENTS
// =============================================================================

// GridRowDTO is one role row in the assignment grid.
type GridRowDTO struct {
	Role   RoleDTO    `json:"role"`
	Person *PersonDTO `json:"person"` // null when unassigned
}

// GridDTO is the resolved assignment grid for one date.
type GridDTO struct {
	ScheduleID    string       `json:"schedule_id"`
	Date          string       `json:"date"`
	RequestedDate string       `json:"requested_date"`
	Rows          []GridRowDTO `json:"rows"`
}

// SetAssignmentRequest assigns (or clears, with empty person_id) a slot.
type SetAssignmentRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	RoleID   string `json:"role_id" validate:"required"`
	PersonID string `json:"person_id"`
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// HolidayDTO represents a liturgical holiday.
type HolidayDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Moveable    bool   `json:"moveable"`
}

// =============================================================================
// SUGGESTIONS / ADMIN
// =============================================================================

// SuggestionDTO maps role IDs to proposed person IDs.
type SuggestionDTO struct {
	Date        string            `json:"date"`
	Assignments map[string]string `json:"assignments"`
}

// BackfillDTO reports a config backfill run.
type BackfillDTO struct {
	SchedulesUpdated int `json:"schedules_updated"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// MAPPERS
// =============================================================================

func toServiceDaysDTO(p roster.ServiceDayPolicy) ServiceDaysDTO {
	days := make([]int, 0, len(p.AdditionalDays))
	for _, d := range p.AdditionalDays {
		days = append(days, int(d))
	}
	return ServiceDaysDTO{
		PrimaryDay:       int(p.PrimaryDay),
		PrimaryDayName:   roster.WeekdayName(p.PrimaryDay),
		AdditionalDays:   days,
		AllowCustomDates: p.AllowCustomDates,
	}
}

func toScheduleDTO(s roster.Schedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:           string(s.ID),
		Name:         s.Name,
		Description:  s.Description,
		OwnerUserID:  s.OwnerUserID,
		AdminUserIDs: s.AdminUserIDs,
	}
	if s.ServiceDayConfig != nil {
		sd := toServiceDaysDTO(*s.ServiceDayConfig)
		dto.ServiceDays = &sd
	}
	if !s.CreatedAt.IsZero() {
		dto.CreatedAt = s.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return dto
}

func toPersonDTO(p roster.Person) PersonDTO {
	dto := PersonDTO{
		ID:              string(p.ID),
		Name:            p.Name,
		ContactInfo:     p.ContactInfo,
		FillableRoleIDs: []string{},
	}
	for _, rid := range p.FillableRoleIDs {
		dto.FillableRoleIDs = append(dto.FillableRoleIDs, string(rid))
	}
	for _, d := range p.UnavailableDates {
		dto.UnavailableDates = append(dto.UnavailableDates, d.String())
	}
	return dto
}

func toRoleDTO(r roster.Role) RoleDTO {
	return RoleDTO{
		ID:          string(r.ID),
		Name:        r.Name,
		Description: r.Description,
		Position:    r.Position,
	}
}

func toGridDTO(g *scheduling.Grid) GridDTO {
	dto := GridDTO{
		ScheduleID:    string(g.ScheduleID),
		Date:          g.Date.String(),
		RequestedDate: g.Requested.String(),
		Rows:          []GridRowDTO{},
	}
	for _, row := range g.Rows {
		rowDTO := GridRowDTO{Role: toRoleDTO(row.Role)}
		if row.Person != nil {
			p := toPersonDTO(*row.Person)
			rowDTO.Person = &p
		}
		dto.Rows = append(dto.Rows, rowDTO)
	}
	return dto
}

func toHolidayDTO(h roster.Holiday) HolidayDTO {
	return HolidayDTO{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		Date:        h.Date.String(),
		Moveable:    h.Moveable,
	}
}
