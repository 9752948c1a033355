package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for payout validation, enrichment and TIN checks.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	// Validation outcomes by rule ("ok" on success)
	ValidationOutcome *prometheus.CounterVec

	// Enrichment outcomes: skipped, enriched, fallback, unenriched
	EnrichmentOutcome *prometheus.CounterVec

	// Rate lookup latency by asset class and result
	FxLookupLatency *prometheus.HistogramVec

	// TIN validations by jurisdiction and validity
	TinValidations *prometheus.CounterVec
}

// New creates a Metrics instance registered against reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ValidationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payouts_validation_outcomes_total",
			Help: "Payout validation outcomes by violated rule",
		}, []string{"rule"}),

		EnrichmentOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payouts_enrichment_outcomes_total",
			Help: "Payout FX enrichment outcomes by currency",
		}, []string{"outcome", "currency"}),

		FxLookupLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "payouts_fx_lookup_duration_seconds",
			Help:    "Duration of historical rate lookups by asset class and result",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"asset_class", "result"}),

		TinValidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payouts_tin_validations_total",
			Help: "TIN validations by jurisdiction and validity",
		}, []string{"jurisdiction", "valid"}),
	}
}

// IncValidation records a validation outcome
func (m *Metrics) IncValidation(rule string) {
	if m != nil {
		m.ValidationOutcome.WithLabelValues(rule).Inc()
	}
}

// IncEnrichment records an enrichment outcome
func (m *Metrics) IncEnrichment(outcome, currency string) {
	if m != nil {
		m.EnrichmentOutcome.WithLabelValues(outcome, currency).Inc()
	}
}

// ObserveFxLookup records the duration of a rate lookup
func (m *Metrics) ObserveFxLookup(assetClass, result string, d time.Duration) {
	if m != nil {
		m.FxLookupLatency.WithLabelValues(assetClass, result).Observe(d.Seconds())
	}
}

// IncTin records a TIN validation
func (m *Metrics) IncTin(jurisdiction string, valid bool) {
	if m != nil {
		label := "false"
		if valid {
			label = "true"
		}
		m.TinValidations.WithLabelValues(jurisdiction, label).Inc()
	}
}
