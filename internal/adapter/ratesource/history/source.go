package history

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

// Source serves rates from the historical rate repository.
// The most recent observation on or before the requested date is used,
// unless it is older than MaxAge.
type Source struct {
	Repo   domain.FxRateRepository
	MaxAge time.Duration // 0 disables the staleness check
}

// NewSource creates a new history-backed rate source
func NewSource(repo domain.FxRateRepository, maxAge time.Duration) *Source {
	return &Source{
		Repo:   repo,
		MaxAge: maxAge,
	}
}

// CryptoRate implements domain.RateSource
func (s *Source) CryptoRate(ctx context.Context, ticker, quote domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	return s.rate(ctx, domain.AssetClassCrypto, ticker, quote, asOf)
}

// FiatRate implements domain.RateSource
func (s *Source) FiatRate(ctx context.Context, base, quote domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	return s.rate(ctx, domain.AssetClassFiat, base, quote, asOf)
}

func (s *Source) rate(ctx context.Context, class domain.AssetClass, base, quote domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	entry, err := s.Repo.GetLatest(ctx, class, base, quote, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	if s.MaxAge > 0 && domain.DateOnly(asOf).Sub(entry.RateDate) > s.MaxAge {
		return decimal.Zero, fmt.Errorf("latest %s/%s rate from %s is older than %s: %w",
			base, quote, entry.RateDate.Format(time.DateOnly), s.MaxAge, domain.ErrRateNotFound)
	}

	return entry.Rate, nil
}
