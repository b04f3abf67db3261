// Package api provides the HTTP server for Spotter.
// It exposes the accountability REST API: workout ingestion, stats,
// streaks, badges, nudges, and the leaderboard.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spotter-app/spotter/internal/app/tracker"
	"github.com/spotter-app/spotter/internal/domain"
	"github.com/spotter-app/spotter/internal/infra/sqlite"
)

// Server is the Spotter HTTP API server.
type Server struct {
	tracker        *tracker.Tracker
	db             *sqlite.DB
	version        string
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(tr *tracker.Tracker, db *sqlite.DB, version string) *Server {
	return &Server{tracker: tr, db: db, version: version}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": s.version,
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/workouts", s.handleRecordWorkout)

		r.Get("/users", s.handleListUsers)
		r.Post("/users", s.handleCreateUser)
		r.Route("/users/{id}", func(r chi.Router) {
			r.Post("/partner", s.handleSetPartner)
			r.Get("/stats", s.handleStats)
			r.Get("/streak", s.handleStreak)
			r.Get("/badges", s.handleBadges)
			r.Get("/nudge", s.handleNudge)
			r.Get("/celebration", s.handleCelebration)
		})

		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/compare/{a}/{b}", s.handleCompare)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps a domain error onto an HTTP status.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNoPartner):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrFutureEvent),
		errors.Is(err, domain.ErrMissingUser),
		errors.Is(err, domain.ErrSelfPartner):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateEvent):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
