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
  /api/assignments/*   Assignment lifecycle
  /api/leaves/*        Leave lifecycle
  /api/employees/*     Employee directory
  /api/clients/*       Client directory
  /api/holidays/*      Holiday calendar
  /api/roles           Position-to-role mapping
  /api/reports/*       Hours aggregation

SECURITY NOTE:
  No authentication middleware. The X-Actor-ID header is trusted as
  already authenticated upstream.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Actor-ID"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Assignment routes
		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", h.ListAssignments)
			r.Post("/", h.CreateAssignment)
			r.Get("/{id}", h.GetAssignment)
			r.Put("/{id}", h.UpdateAssignment)
			r.Delete("/{id}", h.DeleteAssignment)
			r.Post("/{id}/approve", h.ApproveAssignment)
			r.Post("/{id}/partner-approve", h.PartnerApproveAssignment)
			r.Post("/{id}/cancel", h.CancelAssignment)
		})

		// Leave routes
		r.Route("/leaves", func(r chi.Router) {
			r.Get("/", h.ListLeaves)
			r.Post("/", h.CreateLeave)
			r.Get("/{id}", h.GetLeave)
			r.Put("/{id}", h.UpdateLeave)
			r.Delete("/{id}", h.DeleteLeave)
			r.Post("/{id}/approve", h.ApproveLeave)
			r.Post("/{id}/partner-approve", h.PartnerApproveLeave)
			r.Post("/{id}/cancel", h.CancelLeave)
		})

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.SaveEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
		})

		// Client routes
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.SaveClient)
			r.Delete("/{id}", h.DeleteClient)
		})

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.SaveHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
		})

		// Role mapping routes
		r.Route("/roles", func(r chi.Router) {
			r.Get("/", h.ListRoles)
			r.Put("/", h.SetRole)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/hours", h.MonthlyHours)
			r.Get("/unassigned", h.UnassignedHours)
		})
	})

	return r
}
