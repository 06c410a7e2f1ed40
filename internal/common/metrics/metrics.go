// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "schema_runs_started_total",
			Help: "Total number of generation runs started",
		},
	)

	ProductsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schema_products_processed_total",
			Help: "Total number of products processed per outcome",
		},
		[]string{"outcome"},
	)

	AdapterFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schema_adapter_fallbacks_total",
			Help: "Total number of adapter calls that degraded to the unenhanced path",
		},
		[]string{"adapter"},
	)

	ValidationFindings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schema_validation_findings_total",
			Help: "Total number of validator findings per severity",
		},
		[]string{"severity"},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "schema_run_duration_seconds",
			Help: "Duration of a full generation run in seconds",
		},
	)
)
