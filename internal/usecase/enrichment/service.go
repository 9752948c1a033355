package enrichment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
	"github.com/simaogato/payoutcompliance-backend/internal/logger"
	"github.com/simaogato/payoutcompliance-backend/internal/metrics"
)

const (
	OutcomeSkipped    = "skipped"
	OutcomeEnriched   = "enriched"
	OutcomeFallback   = "fallback"
	OutcomeUnenriched = "unenriched"
)

var errRateUnavailable = errors.New("fx rate unavailable")

// RateResolver resolves a historical exchange rate; false means no rate
type RateResolver interface {
	GetFxRate(ctx context.Context, from, to domain.Currency, date time.Time) (decimal.Decimal, bool)
}

// EnrichmentService attaches FX rate and USD fair market value to payout events
type EnrichmentService struct {
	Resolver RateResolver
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewEnrichmentService creates a new EnrichmentService instance
func NewEnrichmentService(resolver RateResolver, log *zap.Logger, m *metrics.Metrics) *EnrichmentService {
	return &EnrichmentService{
		Resolver: resolver,
		logger:   logger.OrNop(log),
		metrics:  m,
	}
}

// EnrichWithFxData returns a copy of event carrying FxRate and FmvUsd.
// Logic:
//  1. USD payouts without a preset FxRate are returned unchanged
//  2. Resolve (Currency -> USD) on PayoutDate
//  3. On success set FxRate, and FmvUsd = round(Amount * FxRate, 2) unless FmvUsd was preset
//  4. Without a rate, crypto payouts fall back to FmvUsd = Amount (flagged); fiat stays unenriched
//
// It never fails: a rate provider outage must not block the payout.
// The input event is never modified.
func (s *EnrichmentService) EnrichWithFxData(ctx context.Context, event domain.PayoutEvent) (enriched domain.PayoutEvent) {
	enriched = event

	// 1. Nothing to convert
	if event.Currency == domain.CurrencyUSD && event.FxRate == nil {
		s.metrics.IncEnrichment(OutcomeSkipped, currencyLabel(event.Currency))
		return enriched
	}

	defer func() {
		if p := recover(); p != nil {
			enriched = s.fallback(event, fmt.Errorf("enrichment panic: %v", p))
		}
	}()

	// 2. Resolve the rate
	rate, ok := s.Resolver.GetFxRate(ctx, event.Currency, domain.CurrencyUSD, event.PayoutDate)
	if !ok {
		// An abandoned request is not a provider outage: no fallback
		if err := ctx.Err(); err != nil {
			s.metrics.IncEnrichment(OutcomeUnenriched, currencyLabel(event.Currency))
			s.logger.Warn("fx enrichment abandoned",
				zap.String("payout_id", event.PayoutID),
				zap.String("currency", string(event.Currency)),
				zap.Error(err),
			)
			return event
		}
		return s.fallback(event, errRateUnavailable)
	}

	// 3. Attach rate and fair market value
	fxRate := rate
	enriched.FxRate = &fxRate
	if event.FmvUsd == nil && event.Amount.Valid {
		fmv := domain.RoundAmount(event.Amount.Decimal.Mul(rate))
		enriched.FmvUsd = &fmv
	}

	s.metrics.IncEnrichment(OutcomeEnriched, currencyLabel(event.Currency))
	s.logger.Debug("payout enriched with fx data",
		zap.String("payout_id", event.PayoutID),
		zap.String("currency", string(event.Currency)),
		zap.String("fx_rate", fxRate.String()),
		zap.Bool("fmv_preset", event.FmvUsd != nil),
	)

	return enriched
}

// currencyLabel bounds the metric label set to known currencies
func currencyLabel(c domain.Currency) string {
	if c.IsPayoutCurrency() || c.IsCrypto() {
		return string(c)
	}
	return "other"
}

// fallback builds the result for a payout whose rate could not be resolved, starting again from the input
func (s *EnrichmentService) fallback(event domain.PayoutEvent, cause error) domain.PayoutEvent {
	out := event

	s.logger.Warn("fx enrichment failed",
		zap.String("payout_id", event.PayoutID),
		zap.String("currency", string(event.Currency)),
		zap.Time("payout_date", event.PayoutDate),
		zap.Error(cause),
	)

	if !event.Currency.IsCrypto() || event.FmvUsd != nil || !event.Amount.Valid {
		s.metrics.IncEnrichment(OutcomeUnenriched, currencyLabel(event.Currency))
		return out
	}

	fmv := event.Amount.Decimal
	out.FmvUsd = &fmv
	out.FmvFallback = true

	s.metrics.IncEnrichment(OutcomeFallback, currencyLabel(event.Currency))
	s.logger.Warn("using 1:1 fmv fallback for crypto payout",
		zap.String("payout_id", event.PayoutID),
		zap.String("currency", string(event.Currency)),
		zap.String("fmv_usd", fmv.String()),
		zap.Bool("fmv_fallback", true),
	)

	return out
}
