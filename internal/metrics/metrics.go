// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScoreMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "golf_cup_score_mutations_total",
			Help: "Score sheet mutations applied, by kind (score, validation)",
		},
		[]string{"kind"},
	)

	MatchesDecided = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "golf_cup_matches_decided_total",
			Help: "Matches that became decided as the result of a score mutation",
		},
	)

	RecomputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "golf_cup_recompute_duration_seconds",
			Help:    "Time spent recomputing derived views",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"view"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "golf_cup_cache_lookups_total",
			Help: "Leaderboard cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
