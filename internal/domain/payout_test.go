package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency_IsPayoutCurrency(t *testing.T) {
	for _, c := range []Currency{"USD", "CAD", "GBP", "EUR", "AUD", "BTC", "ETH", "USDT", "USDC"} {
		assert.True(t, c.IsPayoutCurrency(), "%s should be a payout currency", c)
	}

	// Recognized crypto but not whitelisted for payouts
	for _, c := range []Currency{"LTC", "XRP", "JPY", "usd", ""} {
		assert.False(t, c.IsPayoutCurrency(), "%s should not be a payout currency", c)
	}
}

func TestCurrency_IsCrypto(t *testing.T) {
	for _, c := range []Currency{"BTC", "ETH", "USDT", "USDC", "LTC", "BCH", "XRP", "ADA", "DOT", "UNI"} {
		assert.True(t, c.IsCrypto(), "%s should be crypto", c)
		assert.Equal(t, AssetClassCrypto, c.AssetClass())
	}

	for _, c := range []Currency{"USD", "CAD", "GBP", "EUR", "AUD", "SOL"} {
		assert.False(t, c.IsCrypto(), "%s should not be crypto", c)
		assert.Equal(t, AssetClassFiat, c.AssetClass())
	}
}

func TestPayoutEvent_IsEnriched(t *testing.T) {
	event := PayoutEvent{Currency: CurrencyCAD}
	assert.False(t, event.IsEnriched())

	fmv := decimal.NewFromInt(10)
	event.FmvUsd = &fmv
	assert.True(t, event.IsEnriched())
}
