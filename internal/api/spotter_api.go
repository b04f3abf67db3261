package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spotter-app/spotter/internal/domain"
)

// ─── Workout ingestion ───────────────────────────────────────────────────────

// --- POST /api/workouts ---

func (s *Server) handleRecordWorkout(w http.ResponseWriter, r *http.Request) {
	var raw domain.RawWorkout
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.tracker.RecordWorkout(r.Context(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEvent) {
			// Replays are expected from multi-device clients. Report
			// success without re-counting.
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"status":   "duplicate",
				"event_id": raw.EventID,
			})
			return
		}
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// ─── Users ───────────────────────────────────────────────────────────────────

// --- POST /api/users ---

type createUserRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Timezone string `json:"timezone,omitempty"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	if req.Name == "" {
		req.Name = req.ID
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	u := domain.User{
		ID:        req.ID,
		Name:      req.Name,
		Timezone:  req.Timezone,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.UpsertUser(u); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// --- GET /api/users ---

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.db.ListUsers()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
	})
}

// --- POST /api/users/{id}/partner ---

type setPartnerRequest struct {
	PartnerID string `json:"partner_id"`
}

func (s *Server) handleSetPartner(w http.ResponseWriter, r *http.Request) {
	var req setPartnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.PartnerID == "" {
		writeError(w, http.StatusBadRequest, "partner_id is required")
		return
	}

	userID := chi.URLParam(r, "id")
	if err := s.db.SetPartner(userID, req.PartnerID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id":    userID,
		"partner_id": req.PartnerID,
	})
}

// ─── Derived state ───────────────────────────────────────────────────────────

// --- GET /api/users/{id}/stats ---

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.tracker.Stats(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// --- GET /api/users/{id}/streak ---

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	state, err := s.tracker.Streak(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// --- GET /api/users/{id}/badges ---

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	items, err := s.tracker.Badges(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"badges": items,
	})
}

// --- GET /api/users/{id}/nudge ---

func (s *Server) handleNudge(w http.ResponseWriter, r *http.Request) {
	n, err := s.tracker.Nudge(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if n == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// --- GET /api/users/{id}/celebration ---

func (s *Server) handleCelebration(w http.ResponseWriter, r *http.Request) {
	item, ok := s.tracker.NextCelebration(chi.URLParam(r, "id"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// ─── Leaderboard & comparison ────────────────────────────────────────────────

// --- GET /api/leaderboard ---

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.tracker.Leaderboard()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leaderboard": board,
	})
}

// --- GET /api/compare/{a}/{b} ---

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	v, err := s.tracker.Compare(chi.URLParam(r, "a"), chi.URLParam(r, "b"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
