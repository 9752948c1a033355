package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncValidation("ok")
	m.IncValidation("ok")
	m.IncEnrichment("fallback", "BTC")
	m.IncTin("CA", true)
	m.IncTin("CA", false)
	m.ObserveFxLookup("FIAT", "ok", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ValidationOutcome.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EnrichmentOutcome.WithLabelValues("fallback", "BTC")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TinValidations.WithLabelValues("CA", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TinValidations.WithLabelValues("CA", "false")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.FxLookupLatency))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncValidation("ok")
		m.IncEnrichment("enriched", "CAD")
		m.ObserveFxLookup("CRYPTO", "error", time.Second)
		m.IncTin("US", true)
	})
}
