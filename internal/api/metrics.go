package api

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shizukutanaka/Hayate/internal/report"
)

// Metrics exposes the latest suite evaluation to Prometheus.
type Metrics struct {
	registry *prometheus.Registry

	compositeScore prometheus.Gauge
	singleScore    prometheus.Gauge
	multiScore     prometheus.Gauge
	coreRatio      prometheus.Gauge
	benchScore     *prometheus.GaugeVec
	runDuration    prometheus.Histogram
	runsTotal      prometheus.Counter
}

// NewMetrics creates and registers the suite collectors on a private
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		compositeScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hayate",
			Name:      "composite_score",
			Help:      "Final weighted composite CPU score of the latest run",
		}),
		singleScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hayate",
			Name:      "single_core_score",
			Help:      "Single-core category sum of the latest run",
		}),
		multiScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hayate",
			Name:      "multi_core_score",
			Help:      "Multi-core category sum of the latest run",
		}),
		coreRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "hayate",
			Name:      "core_ratio",
			Help:      "Multi/single scaling ratio of the latest run",
		}),
		benchScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "hayate",
			Name:      "benchmark_score",
			Help:      "Normalized per-benchmark score of the latest run",
		}, []string{"benchmark", "category"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hayate",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of complete suite runs",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hayate",
			Name:      "runs_total",
			Help:      "Number of suite runs served by this process",
		}),
	}

	m.registry.MustRegister(
		m.compositeScore, m.singleScore, m.multiScore, m.coreRatio,
		m.benchScore, m.runDuration, m.runsTotal,
	)
	return m
}

// Observe records a finished run.
func (m *Metrics) Observe(r *report.Report) {
	m.compositeScore.Set(r.CompositeScore)
	m.singleScore.Set(r.SingleCoreScore)
	m.multiScore.Set(r.MultiCoreScore)
	m.coreRatio.Set(r.CoreRatio)
	for _, s := range r.Scores {
		m.benchScore.WithLabelValues(s.Name, s.Category.String()).Set(s.Value)
	}
	m.runDuration.Observe(r.TotalDuration.Seconds())
	m.runsTotal.Inc()
}
