package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(syncRunsTotal, syncQuotesTotal, syncDurationSec) }

var syncRunsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_sync_runs_total",
		Help: "Catalog sync runs by outcome.",
	},
	[]string{"result"}, // ok | error
)

var syncQuotesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_sync_quotes_total",
		Help: "Quotes handled by catalog sync.",
	},
	[]string{"kind"}, // processed | created
)

var syncDurationSec = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "catalog_sync_duration_seconds",
		Help:    "Wall time of a full catalog sync run.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	},
)

func IncSyncRun(result string) { syncRunsTotal.WithLabelValues(norm(result)).Inc() }

func AddSyncQuotes(kind string, n int) {
	syncQuotesTotal.WithLabelValues(norm(kind)).Add(float64(n))
}

func ObserveSyncDuration(seconds float64) { syncDurationSec.Observe(seconds) }
