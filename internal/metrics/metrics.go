// Package metrics exposes Prometheus counters for crawls, relay attempts and side fetches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels
const (
	OutcomeSuccess     = "success"
	OutcomeUnfetchable = "unfetchable"
	OutcomeInvalid     = "invalid"
	OutcomeCanceled    = "canceled"
	OutcomeFailure     = "failure"
)

// Metrics holds all Prometheus metrics for the crawler.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	AssembleTotal    *prometheus.CounterVec
	AssembleDuration prometheus.Histogram
	FetchAttempts    *prometheus.CounterVec
	AssetsExtracted  *prometheus.CounterVec
	SideFetches      *prometheus.CounterVec
	ExtractorPanics  *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. A nil reg skips registration.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AssembleTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetscout_assemble_total",
				Help: "Total number of crawls, labeled by outcome.",
			},
			[]string{"outcome"},
		),
		AssembleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "assetscout_assemble_duration_seconds",
				Help:    "Wall time of a crawl in seconds.",
				Buckets: prometheus.DefBuckets,
			},
		),
		FetchAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetscout_fetch_attempts_total",
				Help: "Relay strategy attempts, labeled by strategy and result.",
			},
			[]string{"strategy", "result"},
		),
		AssetsExtracted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetscout_assets_extracted_total",
				Help: "Assets returned to callers, labeled by asset type.",
			},
			[]string{"type"},
		),
		SideFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetscout_side_fetch_total",
				Help: "robots.txt and sitemap.xml fetches, labeled by file and result.",
			},
			[]string{"file", "result"},
		),
		ExtractorPanics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "assetscout_extractor_panics_total",
				Help: "Extractors that panicked and were isolated, labeled by extractor.",
			},
			[]string{"extractor"},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.AssembleTotal,
			m.AssembleDuration,
			m.FetchAttempts,
			m.AssetsExtracted,
			m.SideFetches,
			m.ExtractorPanics,
		)
	}
	return m
}

func (m *Metrics) ObserveAssemble(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.AssembleTotal.WithLabelValues(outcome).Inc()
	m.AssembleDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) IncFetchAttempt(strategy, result string) {
	if m == nil {
		return
	}
	m.FetchAttempts.WithLabelValues(strategy, result).Inc()
}

func (m *Metrics) AddAssets(assetType string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.AssetsExtracted.WithLabelValues(assetType).Add(float64(n))
}

func (m *Metrics) IncSideFetch(file, result string) {
	if m == nil {
		return
	}
	m.SideFetches.WithLabelValues(file, result).Inc()
}

func (m *Metrics) IncExtractorPanic(extractor string) {
	if m == nil {
		return
	}
	m.ExtractorPanics.WithLabelValues(extractor).Inc()
}
