package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spotter-app/spotter/internal/app/scoring"
	"github.com/spotter-app/spotter/internal/app/tracker"
	"github.com/spotter-app/spotter/internal/infra/sqlite"
)

var testDay = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, *tracker.Tracker) {
	t.Helper()

	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tr := tracker.New(db, nil, scoring.DefaultConfig())
	tr.SetClock(func() time.Time { return testDay })
	return NewServer(tr, db, "test"), tr
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func logWorkout(t *testing.T, h http.Handler, user, eventID string, at time.Time) {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/workouts", map[string]interface{}{
		"event_id":     eventID,
		"user_id":      user,
		"completed_at": at,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("record workout: status %d, body %s", rec.Code, rec.Body)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRecordWorkout_CreatedThenDuplicate(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	body := map[string]interface{}{
		"event_id":     "e1",
		"user_id":      "mica",
		"completed_at": testDay,
	}

	rec := doJSON(t, h, http.MethodPost, "/api/workouts", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first post: status %d, body %s", rec.Code, rec.Body)
	}
	var res tracker.RecordResult
	decode(t, rec, &res)
	if res.Entry.Amount != 10 {
		t.Fatalf("Amount = %d, want 10", res.Entry.Amount)
	}

	// replay reports duplicate without re-counting
	rec = doJSON(t, h, http.MethodPost, "/api/workouts", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("replay: status %d, want 200", rec.Code)
	}
	var dup map[string]string
	decode(t, rec, &dup)
	if dup["status"] != "duplicate" {
		t.Fatalf("status = %q, want duplicate", dup["status"])
	}
}

func TestRecordWorkout_FutureDatedRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/workouts", map[string]interface{}{
		"event_id":     "e1",
		"user_id":      "mica",
		"completed_at": testDay.AddDate(0, 0, 2),
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUsers_CreateAndPartner(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	for _, id := range []string{"ada", "bob"} {
		rec := doJSON(t, h, http.MethodPost, "/api/users", map[string]string{"id": id})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: status %d", id, rec.Code)
		}
	}

	rec := doJSON(t, h, http.MethodPost, "/api/users/ada/partner", map[string]string{"partner_id": "bob"})
	if rec.Code != http.StatusOK {
		t.Fatalf("set partner: status %d, body %s", rec.Code, rec.Body)
	}

	// self-partnering is a client error
	rec = doJSON(t, h, http.MethodPost, "/api/users/ada/partner", map[string]string{"partner_id": "ada"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("self partner: status %d, want 400", rec.Code)
	}
}

func TestStats_NotFoundForUnknownUser(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/users/ghost/stats", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestStats_AfterWorkouts(t *testing.T) {
	srv, tr := newTestServer(t)
	h := srv.Handler()

	for d := 0; d < 3; d++ {
		at := testDay.AddDate(0, 0, d)
		tr.SetClock(func() time.Time { return at })
		logWorkout(t, h, "mica", fmt.Sprintf("e%d", d), at)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/users/mica/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var stats struct {
		CurrentStreak int   `json:"current_streak"`
		TotalPoints   int64 `json:"total_points"`
	}
	decode(t, rec, &stats)
	if stats.CurrentStreak != 3 {
		t.Fatalf("CurrentStreak = %d, want 3", stats.CurrentStreak)
	}
	if stats.TotalPoints == 0 {
		t.Fatal("TotalPoints = 0, want points from three workouts")
	}
}

func TestBadgesAndCelebrations(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()
	logWorkout(t, h, "mica", "e1", testDay)

	rec := doJSON(t, h, http.MethodGet, "/api/users/mica/badges", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("badges: status %d", rec.Code)
	}
	var badges struct {
		Badges []struct {
			Badge struct {
				ID string `json:"id"`
			} `json:"badge"`
		} `json:"badges"`
	}
	decode(t, rec, &badges)
	if len(badges.Badges) != 1 || badges.Badges[0].Badge.ID != "first_workout" {
		t.Fatalf("badges = %+v, want [first_workout]", badges.Badges)
	}

	// first celebration pops, second poll drains empty
	rec = doJSON(t, h, http.MethodGet, "/api/users/mica/celebration", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("celebration: status %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/users/mica/celebration", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("drained celebration: status %d, want 204", rec.Code)
	}
}

func TestNudge_ReturnsClassification(t *testing.T) {
	srv, tr := newTestServer(t)
	h := srv.Handler()
	logWorkout(t, h, "mica", "e1", testDay)

	tr.SetClock(func() time.Time { return testDay.AddDate(0, 0, 4) })
	rec := doJSON(t, h, http.MethodGet, "/api/users/mica/nudge", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var n struct {
		Classification struct {
			Event string `json:"event"`
		} `json:"classification"`
		Message string `json:"message"`
	}
	decode(t, rec, &n)
	if n.Classification.Event != "slacking" {
		t.Fatalf("event = %q, want slacking", n.Classification.Event)
	}
	if n.Message == "" {
		t.Fatal("message empty")
	}
}

func TestLeaderboardAndCompare(t *testing.T) {
	srv, tr := newTestServer(t)
	h := srv.Handler()

	for d := 0; d < 3; d++ {
		at := testDay.AddDate(0, 0, d)
		tr.SetClock(func() time.Time { return at })
		logWorkout(t, h, "ada", fmt.Sprintf("a%d", d), at)
	}
	logWorkout(t, h, "bob", "b0", testDay.AddDate(0, 0, 2))

	rec := doJSON(t, h, http.MethodGet, "/api/leaderboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("leaderboard: status %d", rec.Code)
	}
	var board struct {
		Leaderboard []struct {
			UserID string `json:"user_id"`
			Rank   int    `json:"rank"`
		} `json:"leaderboard"`
	}
	decode(t, rec, &board)
	if len(board.Leaderboard) != 2 || board.Leaderboard[0].UserID != "ada" {
		t.Fatalf("leaderboard = %+v, want ada first", board.Leaderboard)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/compare/ada/bob", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("compare: status %d", rec.Code)
	}
	var v struct {
		Overall string `json:"overall"`
	}
	decode(t, rec, &v)
	if v.Overall != "a" {
		t.Fatalf("overall = %q, want a", v.Overall)
	}
}
