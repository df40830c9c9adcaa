// Package monitoring exposes Prometheus metrics for screening runs.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	runsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signalscreen_runs_total",
			Help: "Total number of screening runs",
		},
	)

	candidatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signalscreen_candidates_total",
			Help: "Total number of candidates screened",
		},
	)

	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signalscreen_decisions_total",
			Help: "Decisions by outcome",
		},
		[]string{"outcome"},
	)

	runDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "signalscreen_run_duration_seconds",
			Help:    "Screening run duration",
			Buckets: prometheus.DefBuckets,
		},
	)

	regimeStress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "signalscreen_regime_stress_index",
			Help: "Cross-sectional stress index of the latest run (0-100)",
		},
	)
)

func init() {
	prometheus.MustRegister(runsTotal)
	prometheus.MustRegister(candidatesTotal)
	prometheus.MustRegister(decisionsTotal)
	prometheus.MustRegister(runDuration)
	prometheus.MustRegister(regimeStress)
}

// MetricsHandler serves the Prometheus metrics endpoint.
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler.
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint.
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordRun records the aggregate metrics of one screening run.
func RecordRun(candidates int, duration time.Duration, stressIndex float64) {
	runsTotal.Inc()
	candidatesTotal.Add(float64(candidates))
	runDuration.Observe(duration.Seconds())
	regimeStress.Set(stressIndex)
}

// RecordDecision records one terminal decision.
func RecordDecision(outcome string) {
	decisionsTotal.WithLabelValues(outcome).Inc()
}
