package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is an ISO-4217 code or a crypto ticker
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyCAD Currency = "CAD"
	CurrencyGBP Currency = "GBP"
	CurrencyEUR Currency = "EUR"
	CurrencyAUD Currency = "AUD"

	CurrencyBTC  Currency = "BTC"
	CurrencyETH  Currency = "ETH"
	CurrencyUSDT Currency = "USDT"
	CurrencyUSDC Currency = "USDC"
	CurrencyLTC  Currency = "LTC"
	CurrencyBCH  Currency = "BCH"
	CurrencyXRP  Currency = "XRP"
	CurrencyADA  Currency = "ADA"
	CurrencyDOT  Currency = "DOT"
	CurrencyUNI  Currency = "UNI"
)

// MinTaxYear is the earliest tax year a payout may be booked into
const MinTaxYear = 2020

// payoutCurrencies is the whitelist of currencies a payout may be denominated in
var payoutCurrencies = map[Currency]struct{}{
	CurrencyUSD:  {},
	CurrencyCAD:  {},
	CurrencyGBP:  {},
	CurrencyEUR:  {},
	CurrencyAUD:  {},
	CurrencyBTC:  {},
	CurrencyETH:  {},
	CurrencyUSDT: {},
	CurrencyUSDC: {},
}

// cryptoCurrencies is the set of tickers priced through the crypto rate lookup
var cryptoCurrencies = map[Currency]struct{}{
	CurrencyBTC:  {},
	CurrencyETH:  {},
	CurrencyUSDT: {},
	CurrencyUSDC: {},
	CurrencyLTC:  {},
	CurrencyBCH:  {},
	CurrencyXRP:  {},
	CurrencyADA:  {},
	CurrencyDOT:  {},
	CurrencyUNI:  {},
}

// IsCrypto reports whether the currency is a recognized cryptocurrency
func (c Currency) IsCrypto() bool {
	_, ok := cryptoCurrencies[c]
	return ok
}

// IsPayoutCurrency reports whether payouts may be denominated in this currency
func (c Currency) IsPayoutCurrency() bool {
	_, ok := payoutCurrencies[c]
	return ok
}

// AssetClass returns the rate lookup class for the currency
func (c Currency) AssetClass() AssetClass {
	if c.IsCrypto() {
		return AssetClassCrypto
	}
	return AssetClassFiat
}

// PayoutEvent is a normalized payout record emitted by the payment subsystem.
// It is passed by value; enrichment returns a new copy instead of mutating the caller's record.
type PayoutEvent struct {
	ID          string
	CreatorID   string
	ProcessorID string
	PayoutID    string

	Amount    decimal.NullDecimal // Gross amount, before processor fees
	NetAmount decimal.NullDecimal // Amount after processor fees
	Currency  Currency

	PayoutDate time.Time
	TaxYear    int

	// Set by enrichment
	FxRate      *decimal.Decimal // USD per 1 unit of Currency
	FmvUsd      *decimal.Decimal // Fair market value in USD
	FmvFallback bool             // FmvUsd came from the 1:1 crypto fallback, not a market rate
}

// IsEnriched reports whether a USD fair market value has been attached
func (p PayoutEvent) IsEnriched() bool {
	return p.FmvUsd != nil
}
