package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetClass selects which rate lookup prices a currency
type AssetClass string

const (
	AssetClassFiat   AssetClass = "FIAT"
	AssetClassCrypto AssetClass = "CRYPTO"
)

// FxRateHistory is a historical exchange rate observation.
// Rate is expressed as units of Quote per 1 unit of Base on RateDate.
type FxRateHistory struct {
	ID         uuid.UUID
	Base       Currency
	Quote      Currency
	AssetClass AssetClass
	RateDate   time.Time // Calendar date, time of day ignored
	Rate       decimal.Decimal
}

// Validate ensures the rate observation can be stored and served
func (r *FxRateHistory) Validate() error {
	if r.Base == "" || r.Quote == "" {
		return errors.New("fx rate base and quote currencies are required")
	}

	if r.Base == r.Quote {
		return errors.New("fx rate base and quote currencies must differ")
	}

	if r.AssetClass != AssetClassFiat && r.AssetClass != AssetClassCrypto {
		return errors.New("fx rate asset class must be FIAT or CRYPTO")
	}

	if r.RateDate.IsZero() {
		return errors.New("fx rate date is required")
	}

	if r.Rate.LessThanOrEqual(decimal.Zero) {
		return errors.New("fx rate must be positive")
	}

	return nil
}

// DateOnly truncates t to midnight UTC of its calendar day
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
