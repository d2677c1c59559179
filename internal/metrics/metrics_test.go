package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveAssemble(OutcomeSuccess, time.Second)
		m.IncFetchAttempt("jina", OutcomeFailure)
		m.AddAssets("link", 3)
		m.IncSideFetch("robots.txt", OutcomeSuccess)
		m.IncExtractorPanic("meta")
	})
}

func TestMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveAssemble(OutcomeSuccess, 250*time.Millisecond)
	m.ObserveAssemble(OutcomeUnfetchable, time.Second)
	m.IncFetchAttempt("allorigins", OutcomeFailure)
	m.IncFetchAttempt("jina", OutcomeSuccess)
	m.AddAssets("link", 4)
	m.AddAssets("link", 0)
	m.IncSideFetch("sitemap.xml", OutcomeFailure)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssembleTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AssembleTotal.WithLabelValues(OutcomeUnfetchable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchAttempts.WithLabelValues("jina", OutcomeSuccess)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.AssetsExtracted.WithLabelValues("link")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SideFetches.WithLabelValues("sitemap.xml", OutcomeFailure)))

	count, err := testutil.GatherAndCount(reg, "assetscout_assemble_duration_seconds")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewWithoutRegistry(t *testing.T) {
	m := New(nil)
	m.IncExtractorPanic("title")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExtractorPanics.WithLabelValues("title")))
}
