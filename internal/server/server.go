// Package server exposes the client-portal JSON API. Every handler that
// touches a scoped resource goes through the resource guard before its own
// read or write; authorization failures short-circuit before any mutation.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog"

	"github.com/wolfeidau/studiodesk/internal/auth"
	httpmiddleware "github.com/wolfeidau/studiodesk/internal/http"
	"github.com/wolfeidau/studiodesk/internal/notify"
	"github.com/wolfeidau/studiodesk/internal/scope"
	"github.com/wolfeidau/studiodesk/internal/store"
)

// Server wires the stores, guard and notifier behind the HTTP routes.
type Server struct {
	stores   store.Stores
	guard    *scope.Guard
	notifier *notify.Notifier
	verifier *auth.TokenVerifier
	logger   zerolog.Logger
}

// New creates a server.
func New(stores store.Stores, guard *scope.Guard, notifier *notify.Notifier, verifier *auth.TokenVerifier, logger zerolog.Logger) *Server {
	return &Server{
		stores:   stores,
		guard:    guard,
		notifier: notifier,
		verifier: verifier,
		logger:   logger,
	}
}

// Routes builds the router. Lead capture is the only unauthenticated API
// endpoint; everything else sits behind the session middleware, and the
// admin group is additionally capability-gated.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(httpmiddleware.RequestLogger(s.logger))
	r.Use(httpmiddleware.ClientIPMiddleware())
	r.Use(func(next http.Handler) http.Handler {
		return gzhttp.GzipHandler(next)
	})

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		// Public lead capture from the marketing site.
		r.Post("/leads", s.handleCreateLead)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(s.verifier))

			r.Get("/projects", s.handleListProjects)
			r.Route("/projects/{projectID}", func(r chi.Router) {
				r.Get("/", s.handleGetProject)
				r.Get("/tasks", s.handleListTasks)
				r.Post("/tasks", s.handleCreateTask)
				r.Get("/invoices", s.handleListInvoices)
				r.Get("/plan", s.handleGetPlan)
				r.Get("/change-requests", s.handleListChangeRequests)
				r.Post("/change-requests", s.handleCreateChangeRequest)
			})

			r.Post("/tasks/{taskID}/complete", s.handleCompleteTask)
			r.Get("/invoices/{invoiceID}", s.handleGetInvoice)

			r.Get("/notifications", s.handleListNotifications)
			r.Post("/notifications/{notificationID}/read", s.handleMarkNotificationRead)
			r.Post("/notifications/read-all", s.handleMarkAllNotificationsRead)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireCapability(auth.CapViewAdminResources))
				r.Get("/admin/leads", s.handleListLeads)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
