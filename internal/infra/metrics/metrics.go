// Package metrics provides Prometheus metrics for the Spotter engine —
// counters and histograms for ingestion, scoring, badges, classification,
// and the external text generator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Ingestion ──────────────────────────────────────────────────────────────

// WorkoutsRecorded tracks accepted workout events.
var WorkoutsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "spotter",
	Name:      "workouts_recorded_total",
	Help:      "Total workout events accepted by the normalizer.",
})

// WorkoutsRejected tracks rejected raw records by reason.
var WorkoutsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "spotter",
	Name:      "workouts_rejected_total",
	Help:      "Total raw workout records rejected at ingestion.",
}, []string{"reason"})

// ─── Scoring ────────────────────────────────────────────────────────────────

// PointsAwarded tracks points written to the ledger.
var PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "spotter",
	Name:      "points_awarded_total",
	Help:      "Total points appended to the ledger.",
})

// LevelUps tracks level transitions.
var LevelUps = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "spotter",
	Name:      "level_ups_total",
	Help:      "Total level-up transitions.",
})

// ─── Badges ─────────────────────────────────────────────────────────────────

// BadgesAwarded tracks badge unlocks by rarity.
var BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "spotter",
	Name:      "badges_awarded_total",
	Help:      "Total badges awarded.",
}, []string{"rarity"})

// ─── Classification ─────────────────────────────────────────────────────────

// Classifications tracks emitted classifications by event and severity.
var Classifications = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "spotter",
	Name:      "classifications_total",
	Help:      "Total behavior classifications emitted.",
}, []string{"event", "severity"})

// GeneratorLatency tracks external text-generator call duration.
var GeneratorLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "spotter",
	Name:      "generator_latency_seconds",
	Help:      "External text generator request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
})

// GeneratorFallbacks tracks degraded-mode template substitutions.
var GeneratorFallbacks = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "spotter",
	Name:      "generator_fallbacks_total",
	Help:      "Total times the static fallback replaced generated text.",
})
