package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeSuccess    = "success"
	OutcomeNotFound   = "not_found"
	OutcomeDegenerate = "degenerate"
	OutcomeError      = "error"
)

// Recorder records analysis metrics on its own registry
// ⭐ SSOT: 메트릭 정의는 여기서만
type Recorder struct {
	registry     *prometheus.Registry
	analyses     *prometheus.CounterVec
	observations prometheus.Counter
	skipped      prometheus.Counter
	duration     *prometheus.HistogramVec
	varEstimates *prometheus.GaugeVec
}

// New creates a new Prometheus metrics recorder
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "riskengine_analyses_total",
				Help: "Total number of analysis requests by outcome",
			},
			[]string{"outcome"},
		),
		observations: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "riskengine_observations_ingested_total",
				Help: "Total number of return observations accepted",
			},
		),
		skipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "riskengine_observations_skipped_total",
				Help: "Total number of malformed lines skipped during ingestion",
			},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "riskengine_operation_duration_seconds",
				Help:    "Duration of engine operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		varEstimates: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "riskengine_last_var",
				Help: "Last computed VaR per asset label and estimator",
			},
			[]string{"label", "estimator"},
		),
	}
}

// RecordAnalysis counts one analysis outcome
func (r *Recorder) RecordAnalysis(outcome string) {
	r.analyses.WithLabelValues(outcome).Inc()
}

// RecordIngestion adds ingestion counts
func (r *Recorder) RecordIngestion(accepted, skipped int) {
	r.observations.Add(float64(accepted))
	r.skipped.Add(float64(skipped))
}

// RecordLatency records operation latency in seconds
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.duration.WithLabelValues(op).Observe(seconds)
}

// RecordVaR records the last VaR estimates for a label
func (r *Recorder) RecordVaR(label string, monteCarlo, analytic float64) {
	r.varEstimates.WithLabelValues(label, "monte_carlo").Set(monteCarlo)
	r.varEstimates.WithLabelValues(label, "analytic").Set(analytic)
}

// Handler exposes the registry for scraping
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
