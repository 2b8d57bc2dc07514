package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// DispatchTicks counts dispatcher tick evaluations.
	DispatchTicks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "callwave_dispatch_ticks_total",
		Help: "Total dispatcher ticks",
	})

	// DispatchBatches counts batches handed to a call sink, per job.
	DispatchBatches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "callwave_dispatch_batches_total",
		Help: "Total dispatched call batches",
	}, []string{"job"})

	// DispatchSkips counts jobs skipped on a tick, per job and reason.
	DispatchSkips = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "callwave_dispatch_skips_total",
		Help: "Total skipped dispatch opportunities",
	}, []string{"job", "reason"})

	// DispatchErrors counts sink failures, per job.
	DispatchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "callwave_dispatch_errors_total",
		Help: "Total call sink dispatch errors",
	}, []string{"job"})

	// ResolveRequests counts phrase resolutions by outcome tier
	// ("pattern", "inference", "none").
	ResolveRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "callwave_resolve_requests_total",
		Help: "Total free-text schedule resolutions",
	}, []string{"tier"})

	// ResolveDuration observes end-to-end resolution latency. Inferential
	// resolutions dominate the upper buckets.
	ResolveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "callwave_resolve_duration_seconds",
		Help:    "Free-text schedule resolution duration",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		DispatchTicks,
		DispatchBatches,
		DispatchSkips,
		DispatchErrors,
		ResolveRequests,
		ResolveDuration,
	)
}
