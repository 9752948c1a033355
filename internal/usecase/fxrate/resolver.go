package fxrate

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

// Resolver resolves historical exchange rates through a RateSource.
// Lookups never fail loudly: any provider problem is logged and reported as "no rate".
type Resolver struct {
	Source  domain.RateSource
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewResolver creates a new Resolver instance
func NewResolver(source domain.RateSource, log *zap.Logger, m *metrics.Metrics) *Resolver {
	return &Resolver{
		Source:  source,
		logger:  logger.OrNop(log),
		metrics: m,
	}
}

// GetFxRate returns the rate converting one unit of from into to on date.
// Tickers in the crypto set are priced with the crypto lookup, everything else with the fiat lookup.
// The second return value is false when no usable (positive) rate could be obtained.
func (r *Resolver) GetFxRate(ctx context.Context, from, to domain.Currency, date time.Time) (decimal.Decimal, bool) {
	if from == to {
		return decimal.NewFromInt(1), true
	}

	class := from.AssetClass()
	start := time.Now()

	rate, err := r.lookup(ctx, class, from, to, date)
	if err == nil && !rate.IsPositive() {
		err = fmt.Errorf("non-positive rate %s", rate.String())
	}

	if err != nil {
		result := "error"
		if errors.Is(err, domain.ErrRateNotFound) {
			result = "not_found"
		}
		r.metrics.ObserveFxLookup(string(class), result, time.Since(start))

		r.logger.Warn("fx rate lookup failed",
			zap.String("from", string(from)),
			zap.String("to", string(to)),
			zap.String("asset_class", string(class)),
			zap.Time("date", date),
			zap.Error(err),
		)
		return decimal.Zero, false
	}

	r.metrics.ObserveFxLookup(string(class), "ok", time.Since(start))
	return rate, true
}

// lookup calls the rate source, converting a provider panic into an error
func (r *Resolver) lookup(ctx context.Context, class domain.AssetClass, from, to domain.Currency, date time.Time) (rate decimal.Decimal, err error) {
	defer func() {
		if p := recover(); p != nil {
			rate = decimal.Zero
			err = fmt.Errorf("rate source panic: %v", p)
		}
	}()

	if r.Source == nil {
		return decimal.Zero, errors.New("no rate source configured")
	}

	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	if class == domain.AssetClassCrypto {
		return r.Source.CryptoRate(ctx, from, to, date)
	}
	return r.Source.FiatRate(ctx, from, to, date)
}
