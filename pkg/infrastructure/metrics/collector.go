package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector tracks reconciliation runs for the HTTP server's /metrics
// endpoint. It owns its registry, so tests and multiple servers never
// collide on metric registration.
type Collector struct {
	registry *prometheus.Registry

	runs        prometheus.Counter
	runErrors   prometheus.Counter
	runDuration prometheus.Histogram

	rowsReconciled prometheus.Gauge
	unmatchedItems prometheus.Gauge
	excludedRows   prometheus.Gauge
	windowDays     prometheus.Gauge
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		runs: factory.NewCounter(prometheus.CounterOpts{
			Name: "doi_runs_total",
			Help: "Completed reconciliation runs.",
		}),
		runErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "doi_run_errors_total",
			Help: "Reconciliation runs that failed.",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "doi_run_duration_seconds",
			Help:    "Wall time of a full reconciliation run.",
			Buckets: prometheus.DefBuckets,
		}),
		rowsReconciled: factory.NewGauge(prometheus.GaugeOpts{
			Name: "doi_rows_reconciled",
			Help: "Rows in the most recent final table.",
		}),
		unmatchedItems: factory.NewGauge(prometheus.GaugeOpts{
			Name: "doi_unmatched_sales_lines",
			Help: "Sales lines dropped for unknown item codes in the most recent run.",
		}),
		excludedRows: factory.NewGauge(prometheus.GaugeOpts{
			Name: "doi_excluded_rows",
			Help: "Rows removed by the product denylist in the most recent run.",
		}),
		windowDays: factory.NewGauge(prometheus.GaugeOpts{
			Name: "doi_window_days",
			Help: "Trailing window applied by the most recent run.",
		}),
	}
}

// ObserveRun records a completed run
func (c *Collector) ObserveRun(rows, unmatched, excluded, windowDays int, elapsed time.Duration) {
	c.runs.Inc()
	c.runDuration.Observe(elapsed.Seconds())
	c.rowsReconciled.Set(float64(rows))
	c.unmatchedItems.Set(float64(unmatched))
	c.excludedRows.Set(float64(excluded))
	c.windowDays.Set(float64(windowDays))
}

// ObserveError records a failed run
func (c *Collector) ObserveError() {
	c.runErrors.Inc()
}

// Handler serves the collector's registry in Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
