package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFxRateHistory_Validate(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	valid := func() FxRateHistory {
		return FxRateHistory{
			ID:         uuid.New(),
			Base:       CurrencyCAD,
			Quote:      CurrencyUSD,
			AssetClass: AssetClassFiat,
			RateDate:   date,
			Rate:       decimal.RequireFromString("0.7391"),
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *FxRateHistory)
		wantErr bool
		errMsg  string
	}{
		{name: "Valid rate should pass", mutate: func(r *FxRateHistory) {}},
		{
			name:    "Missing base should fail",
			mutate:  func(r *FxRateHistory) { r.Base = "" },
			wantErr: true,
			errMsg:  "base and quote currencies are required",
		},
		{
			name:    "Same base and quote should fail",
			mutate:  func(r *FxRateHistory) { r.Quote = CurrencyCAD },
			wantErr: true,
			errMsg:  "must differ",
		},
		{
			name:    "Unknown asset class should fail",
			mutate:  func(r *FxRateHistory) { r.AssetClass = "EQUITY" },
			wantErr: true,
			errMsg:  "asset class must be FIAT or CRYPTO",
		},
		{
			name:    "Zero date should fail",
			mutate:  func(r *FxRateHistory) { r.RateDate = time.Time{} },
			wantErr: true,
			errMsg:  "date is required",
		},
		{
			name:    "Zero rate should fail",
			mutate:  func(r *FxRateHistory) { r.Rate = decimal.Zero },
			wantErr: true,
			errMsg:  "fx rate must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid()
			tt.mutate(&r)

			err := r.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	in := time.Date(2024, 3, 15, 23, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), DateOnly(in))
}
