package static

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

type rateKey struct {
	class domain.AssetClass
	base  domain.Currency
	quote domain.Currency
	date  string // YYYY-MM-DD, empty for a rate valid on any date
}

// Source is an in-memory rate table. Dated rates take precedence over undated ones.
// It is safe for concurrent use.
type Source struct {
	mu    sync.RWMutex
	rates map[rateKey]decimal.Decimal
}

// NewSource creates an empty static rate source
func NewSource() *Source {
	return &Source{
		rates: make(map[rateKey]decimal.Decimal),
	}
}

// Set stores the rate for base/quote on date
func (s *Source) Set(base, quote domain.Currency, date time.Time, rate decimal.Decimal) {
	s.put(rateKey{class: base.AssetClass(), base: base, quote: quote, date: dateKey(date)}, rate)
}

// SetDefault stores a rate for base/quote used when no dated rate exists
func (s *Source) SetDefault(base, quote domain.Currency, rate decimal.Decimal) {
	s.put(rateKey{class: base.AssetClass(), base: base, quote: quote}, rate)
}

func (s *Source) put(key rateKey, rate decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[key] = rate
}

// CryptoRate implements domain.RateSource
func (s *Source) CryptoRate(ctx context.Context, ticker, quote domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	return s.rate(domain.AssetClassCrypto, ticker, quote, asOf)
}

// FiatRate implements domain.RateSource
func (s *Source) FiatRate(ctx context.Context, base, quote domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	return s.rate(domain.AssetClassFiat, base, quote, asOf)
}

func (s *Source) rate(class domain.AssetClass, base, quote domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := rateKey{class: class, base: base, quote: quote, date: dateKey(asOf)}
	if rate, ok := s.rates[key]; ok {
		return rate, nil
	}

	key.date = ""
	if rate, ok := s.rates[key]; ok {
		return rate, nil
	}

	return decimal.Zero, fmt.Errorf("%s/%s on %s: %w", base, quote, dateKey(asOf), domain.ErrRateNotFound)
}

// Add stores a validated history entry as a dated rate
func (s *Source) Add(ctx context.Context, entry *domain.FxRateHistory) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	s.put(rateKey{class: entry.AssetClass, base: entry.Base, quote: entry.Quote, date: dateKey(entry.RateDate)}, entry.Rate)
	return nil
}

// dateKey is the calendar day of t in its own location, the same day the history store uses
func dateKey(t time.Time) string {
	return domain.DateOnly(t).Format(time.DateOnly)
}
