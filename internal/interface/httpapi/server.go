// Package httpapi exposes record management, summaries and sessions over JSON HTTP.
package httpapi

import (
	"net/http"
	"time"

	"qtholidays-service/internal/usecase"
	"qtholidays-service/pkg/logger"
	"qtholidays-service/pkg/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxBodyBytes = 1 << 20

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	Services ServiceRouter
	Summary  *usecase.SummaryService
	Auth     *usecase.AuthService
	Clock    usecase.Clock
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   logger.Logger

	// LoginRate and LoginBurst bound login attempts per client address
	LoginRate  float64
	LoginBurst int
}

// ServiceRouter is the subset of usecase.ServiceRouter the handlers read
type ServiceRouter interface {
	GetHandler(slug string) usecase.RecordHandler
	Handlers() []usecase.RecordHandler
}

// Server holds the HTTP handlers
type Server struct {
	services ServiceRouter
	summary  *usecase.SummaryService
	auth     *usecase.AuthService
	clock    usecase.Clock
	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer
	logger   logger.Logger
	limiter  *loginLimiter
}

// NewServer creates a new HTTP server from deps
func NewServer(deps Deps) *Server {
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	rps, burst := deps.LoginRate, deps.LoginBurst
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 5
	}

	return &Server{
		services: deps.Services,
		summary:  deps.Summary,
		auth:     deps.Auth,
		clock:    deps.Clock,
		metrics:  deps.Metrics,
		gatherer: gatherer,
		logger:   deps.Logger,
		limiter:  newLoginLimiter(rps, burst, 30*time.Minute),
	}
}

// Handler builds the route tree
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(capturePeer)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(limitBody)

		r.With(s.limitLogin).Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Post("/auth/logout", s.handleLogout)
			r.Get("/auth/session", s.handleSession)

			r.Get("/services", s.handleListServices)
			r.Route("/services/{slug}", func(r chi.Router) {
				r.Get("/", s.handleGetService)
				r.Get("/records", s.handleListRecords)
				r.Post("/records", s.handleCreateRecord)
				r.Patch("/records/{id}", s.handleUpdateRecord)
				r.Delete("/records/{id}", s.handleDeleteRecord)
			})

			r.Get("/summary", s.handleSummary)
			r.Get("/summary/export", s.handleExport)
			r.Get("/dashboard", s.handleDashboard)
		})
	})

	return r
}
