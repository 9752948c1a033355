package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateSource is the external collaborator that prices a currency pair on a date.
// Implementations return ErrRateNotFound (optionally wrapped) when no rate exists,
// and never return partial data alongside an error.
type RateSource interface {
	// CryptoRate returns the price of one unit of ticker in quote on asOf
	CryptoRate(ctx context.Context, ticker, quote Currency, asOf time.Time) (decimal.Decimal, error)

	// FiatRate returns the exchange rate from base to quote on asOf
	FiatRate(ctx context.Context, base, quote Currency, asOf time.Time) (decimal.Decimal, error)
}

// FxRateRepository defines the interface for historical rate persistence operations
type FxRateRepository interface {
	// Add stores a rate observation, replacing any existing one for the same pair, class and date
	Add(ctx context.Context, entry *FxRateHistory) error

	// GetLatest retrieves the most recent observation on or before asOf
	// Returns ErrRateNotFound (wrapped) when none exists
	GetLatest(ctx context.Context, class AssetClass, base, quote Currency, asOf time.Time) (*FxRateHistory, error)
}
