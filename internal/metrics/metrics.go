package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// intake
	OrdersCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reconciler_orders_created_total",
			Help: "Payment orders accepted by intake",
		},
	)

	// reconciliation
	TransfersRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconciler_transfers_recorded_total",
			Help: "Ledger entries seen by the recorder",
		},
		[]string{"result"}, // inserted|duplicate
	)
	MatchOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconciler_match_outcomes_total",
			Help: "Match attempts by outcome",
		},
		[]string{"outcome"},
	)
	OrdersExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reconciler_orders_expired_total",
			Help: "Orders moved to expired by the sweeper",
		},
	)
	Callbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconciler_callbacks_total",
			Help: "Outcome callbacks by recorded result",
		},
		[]string{"outcome"}, // sent_ok|sent_failed|discarded|skipped
	)
	StageErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconciler_stage_errors_total",
			Help: "Errors per reconciliation stage",
		},
		[]string{"stage"},
	)
	CycleDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reconciler_cycle_duration_seconds",
			Help:    "Duration of one reconciliation iteration",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reconciler_worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestLatency,
			OrdersCreated,
			TransfersRecorded,
			MatchOutcomes,
			OrdersExpired,
			Callbacks,
			StageErrors,
			CycleDuration,
			WorkerQueueDepth,
		)
	})
}
