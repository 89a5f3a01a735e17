/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/schedules/*      Schedule, policy, grid, people, role management
  /api/holidays/*       Liturgical calendar
  /api/church-types     Policy presets
  /api/admin/*          Admin operations
  /healthz              Liveness probe

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Schedule routes
		r.Route("/schedules", func(r chi.Router) {
			r.Get("/", h.ListSchedules)
			r.Post("/", h.CreateSchedule)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSchedule)
				r.Put("/", h.UpdateSchedule)
				r.Delete("/", h.DeleteSchedule)

				// Service-day policy
				r.Route("/service-days", func(r chi.Router) {
					r.Get("/", h.GetServiceDays)
					r.Put("/", h.UpdateServiceDays)
					r.Post("/primary", h.SetPrimaryDay)
					r.Post("/toggle", h.ToggleAdditionalDay)
					r.Post("/custom", h.SetAllowCustomDates)
					r.Post("/church-type", h.ApplyChurchType)
				})

				// Date navigation
				r.Route("/dates", func(r chi.Router) {
					r.Get("/check", h.CheckDate)
					r.Get("/next", h.NextDate)
					r.Get("/previous", h.PreviousDate)
					r.Get("/upcoming", h.UpcomingDates)
				})

				// Assignment grid
				r.Get("/grid", h.GetGrid)
				r.Get("/grid/range", h.GetGridRange)
				r.Put("/assignments", h.SetAssignment)
				r.Delete("/assignments", h.ClearDate)

				// People
				r.Route("/people", func(r chi.Router) {
					r.Get("/", h.ListPeople)
					r.Post("/", h.CreatePerson)
					r.Put("/{personID}", h.UpdatePerson)
					r.Delete("/{personID}", h.DeletePerson)
				})

				// Roles
				r.Route("/roles", func(r chi.Router) {
					r.Get("/", h.ListRoles)
					r.Post("/", h.CreateRole)
					r.Put("/{roleID}", h.UpdateRole)
					r.Delete("/{roleID}", h.DeleteRole)
					r.Get("/{roleID}/eligible", h.EligiblePeople)
				})

				// Suggestions and calendar feed
				r.Post("/suggestions", h.SuggestAssignments)
				r.Get("/calendar.ics", h.CalendarFeed)
			})
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Get("/upcoming", h.UpcomingHolidays)
		})

		// Church-type presets
		r.Get("/church-types", h.ListChurchTypes)

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/migrate-config", h.MigrateConfig)
		})
	})

	// Liveness probe
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
