/*
ics.go - iCalendar feed for service dates

Serves the schedule's upcoming service dates and church holidays as an ICS
feed so admins can subscribe from Google Calendar or Outlook. Each service
date is an all-day entry listing the resolved lineup in its description.
*/
package api

import (
	"fmt"
	"net/http"
	"strings"

	ics "github.com/arran4/golang-ical"

	"github.com/inservice/roster-engine/roster"
)

// feedWeeks is how far ahead the calendar feed looks.
const feedWeeks = 26

// feedHolidays is how many upcoming holidays the feed carries.
const feedHolidays = 15

// CalendarFeed serves the schedule as an iCalendar file.
// GET /api/schedules/{id}/calendar.ics
func (h *Handler) CalendarFeed(w http.ResponseWriter, r *http.Request) {
	id := scheduleID(r)
	sched, err := h.Service.GetSchedule(r.Context(), id)
	if err != nil {
		writeServiceError(w, "Failed to get schedule", err)
		return
	}

	from := roster.Today()
	dates, err := h.Service.UpcomingServiceDates(r.Context(), id, from, feedWeeks)
	if err != nil {
		writeServiceError(w, "Failed to compute service dates", err)
		return
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//roster-engine//service schedule//EN")
	cal.SetName(sched.Name)

	for _, date := range dates {
		grid, err := h.Service.ResolveGrid(r.Context(), id, date)
		if err != nil {
			writeServiceError(w, "Failed to resolve grid", err)
			return
		}

		event := cal.AddEvent(fmt.Sprintf("%s-%s@roster-engine", id, date))
		event.SetAllDayStartAt(date.Time)
		event.SetAllDayEndAt(date.AddDays(1).Time)
		event.SetSummary(sched.Name + " service")
		if desc := lineupDescription(grid.Rows); desc != "" {
			event.SetDescription(desc)
		}
	}

	for _, hol := range roster.UpcomingHolidays(from, feedHolidays) {
		event := cal.AddEvent(fmt.Sprintf("%s-%s@roster-engine", hol.ID, hol.Date))
		event.SetAllDayStartAt(hol.Date.Time)
		event.SetAllDayEndAt(hol.Date.AddDays(1).Time)
		event.SetSummary(hol.Name)
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="schedule.ics"`)
	fmt.Fprint(w, cal.Serialize())
}

func lineupDescription(rows []roster.GridRow) string {
	var lines []string
	for _, row := range rows {
		name := "(unassigned)"
		if row.Person != nil {
			name = row.Person.Name
		}
		lines = append(lines, row.Role.Name+": "+name)
	}
	return strings.Join(lines, "\n")
}
