package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ProcessedEvents = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "clubhub_processed_total", Help: "Total processed outbox events"},
	)
	FailedEvents = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "clubhub_failed_total", Help: "Total failed outbox events"},
	)
	DLQEvents = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "clubhub_dlq_total", Help: "Total events inserted into DLQ"},
	)
	RescoredRanklists = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "clubhub_rescored_ranklists_total", Help: "Total ranklist score-cache refreshes"},
	)
	MaterializeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clubhub_materialize_seconds",
			Help:    "Time to materialize a ranklist's standings",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func Register() {
	prometheus.MustRegister(ProcessedEvents, FailedEvents, DLQEvents, RescoredRanklists, MaterializeDuration)
}
