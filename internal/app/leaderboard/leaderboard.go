// Package leaderboard ranks users and produces head-to-head verdicts from
// derived stats. Ranking is a total order — every tie is resolved — so the
// output is stable and reproducible across recomputes.
package leaderboard

import (
	"sort"

	"github.com/spotter-app/spotter/internal/domain"
)

// Rank orders stats by total points descending, breaking ties by current
// streak descending, then by account-creation time ascending. The input is
// not mutated; the returned slice has 1-based Rank fields set.
func Rank(stats []domain.UserGameStats) []domain.UserGameStats {
	ranked := make([]domain.UserGameStats, len(stats))
	copy(ranked, stats)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if a.CurrentStreak != b.CurrentStreak {
			return a.CurrentStreak > b.CurrentStreak
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// ─── Head-to-Head ───────────────────────────────────────────────────────────

// Outcome is a per-metric or overall comparison result.
type Outcome string

const (
	OutcomeA   Outcome = "a"
	OutcomeB   Outcome = "b"
	OutcomeTie Outcome = "tie"
)

// MetricResult is one compared metric in a head-to-head.
type MetricResult struct {
	Metric string  `json:"metric"`
	A      int     `json:"a"`
	B      int     `json:"b"`
	Winner Outcome `json:"winner"`
}

// Verdict is the full head-to-head result between two users.
type Verdict struct {
	UserA   string         `json:"user_a"`
	UserB   string         `json:"user_b"`
	Metrics []MetricResult `json:"metrics"`
	WinsA   int            `json:"wins_a"`
	WinsB   int            `json:"wins_b"`
	Overall Outcome        `json:"overall"`
}

// HeadToHead compares two users metric by metric with strict greater-than
// (equal is a tie on that metric). The overall winner takes a strict
// majority of the metrics; equal win counts is an overall tie.
func HeadToHead(a, b domain.UserGameStats) Verdict {
	v := Verdict{UserA: a.UserID, UserB: b.UserID}

	compare := func(metric string, av, bv int) {
		r := MetricResult{Metric: metric, A: av, B: bv, Winner: OutcomeTie}
		switch {
		case av > bv:
			r.Winner = OutcomeA
			v.WinsA++
		case bv > av:
			r.Winner = OutcomeB
			v.WinsB++
		}
		v.Metrics = append(v.Metrics, r)
	}

	compare("current_streak", a.CurrentStreak, b.CurrentStreak)
	compare("weekly_workouts", a.WeeklyWorkouts, b.WeeklyWorkouts)
	compare("monthly_workouts", a.MonthlyWorkouts, b.MonthlyWorkouts)
	compare("total_workouts", a.TotalWorkouts, b.TotalWorkouts)

	switch {
	case v.WinsA > v.WinsB:
		v.Overall = OutcomeA
	case v.WinsB > v.WinsA:
		v.Overall = OutcomeB
	default:
		v.Overall = OutcomeTie
	}
	return v
}
