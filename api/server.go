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
  /api/payroll/*        Stateless calculation and validation
  /api/employees/*      Employee management, YTD and period history
  /api/rigging/*        Lift analysis and saved plans
  /api/tables           Active statutory rate tables

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

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
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Payroll routes (stateless)
		r.Route("/payroll", func(r chi.Router) {
			r.Post("/preview", h.PreviewPayroll)
			r.Post("/validate", h.ValidatePayroll)
		})

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/ytd", h.GetYTD)
			r.Get("/{id}/periods", h.ListPeriods)
			r.Post("/{id}/periods", h.CommitPeriod)
		})

		// Rigging routes
		r.Route("/rigging", func(r chi.Router) {
			r.Post("/analyze", h.AnalyzeRigging)
			r.Post("/validate", h.ValidateRigging)
			r.Get("/analyses", h.ListRiggingAnalyses)
		})

		// Rate tables
		r.Get("/tables", h.GetTables)
	})

	return r
}
