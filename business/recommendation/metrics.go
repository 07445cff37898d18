package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_generation_duration_seconds",
			Help:    "Latency of recommendation generation by mode.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	CandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_candidates_total",
			Help: "Candidates produced per extractor strategy.",
		},
		[]string{"strategy"},
	)

	ExtractorFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_extractor_failures_total",
			Help: "Extractor runs that failed and were degraded to zero candidates.",
		},
		[]string{"strategy"},
	)

	PersistFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_persist_failures_total",
			Help: "Recommendations skipped because the upsert failed.",
		},
	)

	BatchUsersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_batch_users_total",
			Help: "Users processed by batch generation by outcome.",
		},
		[]string{"outcome"},
	)

	BehaviorEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_behavior_events_total",
			Help: "Behavior events recorded by action type.",
		},
		[]string{"action_type"},
	)
)

func init() {
	prometheus.MustRegister(
		GenerationDuration,
		CandidatesTotal,
		ExtractorFailuresTotal,
		PersistFailuresTotal,
		BatchUsersTotal,
		BehaviorEventsTotal,
	)
}
