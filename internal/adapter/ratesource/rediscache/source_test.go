package rediscache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

// MockClient is a mock implementation of Client
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *MockClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

// MockRateSource is a mock implementation of domain.RateSource
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) CryptoRate(ctx context.Context, ticker, quote domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, ticker, quote, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateSource) FiatRate(ctx context.Context, base, quote domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, base, quote, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var asOf = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

const ttl = 24 * time.Hour

func TestKey(t *testing.T) {
	assert.Equal(t, "fxrate:FIAT:CAD:USD:2024-03-15", Key(domain.AssetClassFiat, domain.CurrencyCAD, domain.CurrencyUSD, asOf))
	assert.Equal(t, "fxrate:CRYPTO:BTC:USD:2024-03-15", Key(domain.AssetClassCrypto, domain.CurrencyBTC, domain.CurrencyUSD, asOf.Add(20*time.Hour)))
}

func TestKey_UsesCalendarDayOfOffset(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	lateEvening := time.Date(2024, 12, 31, 21, 0, 0, 0, est)

	assert.Equal(t, "fxrate:FIAT:CAD:USD:2024-12-31", Key(domain.AssetClassFiat, domain.CurrencyCAD, domain.CurrencyUSD, lateEvening))
}

func TestSource_Hit(t *testing.T) {
	ctx := context.Background()
	client := new(MockClient)
	next := new(MockRateSource)
	key := "fxrate:FIAT:CAD:USD:2024-03-15"

	client.On("Get", ctx, key).Return(redis.NewStringResult("0.7391", nil))

	rate, err := NewSource(client, next, ttl, nil).FiatRate(ctx, domain.CurrencyCAD, domain.CurrencyUSD, asOf)

	assert.NoError(t, err)
	assert.Equal(t, "0.7391", rate.String())
	next.AssertNotCalled(t, "FiatRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSource_MissFetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	client := new(MockClient)
	next := new(MockRateSource)
	key := "fxrate:CRYPTO:BTC:USD:2024-03-15"

	client.On("Get", ctx, key).Return(redis.NewStringResult("", redis.Nil))
	next.On("CryptoRate", ctx, domain.CurrencyBTC, domain.CurrencyUSD, asOf).Return(decimal.NewFromInt(68000), nil)
	client.On("Set", ctx, key, "68000", ttl).Return(redis.NewStatusResult("OK", nil))

	rate, err := NewSource(client, next, ttl, nil).CryptoRate(ctx, domain.CurrencyBTC, domain.CurrencyUSD, asOf)

	assert.NoError(t, err)
	assert.Equal(t, "68000", rate.String())
	client.AssertExpectations(t)
	next.AssertExpectations(t)
}

func TestSource_SourceErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	client := new(MockClient)
	next := new(MockRateSource)
	key := "fxrate:FIAT:GBP:USD:2024-03-15"

	client.On("Get", ctx, key).Return(redis.NewStringResult("", redis.Nil))
	next.On("FiatRate", ctx, domain.CurrencyGBP, domain.CurrencyUSD, asOf).Return(decimal.Zero, domain.ErrRateNotFound)

	_, err := NewSource(client, next, ttl, nil).FiatRate(ctx, domain.CurrencyGBP, domain.CurrencyUSD, asOf)

	assert.True(t, errors.Is(err, domain.ErrRateNotFound))
	client.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSource_CacheFailuresFallThrough(t *testing.T) {
	tests := []struct {
		name     string
		cached   *redis.StringCmd
		setErr   error
		wantLogs []string
	}{
		{
			name:     "read error",
			cached:   redis.NewStringResult("", errors.New("connection refused")),
			wantLogs: []string{"fx rate cache read failed"},
		},
		{
			name:     "corrupt value",
			cached:   redis.NewStringResult("not-a-number", nil),
			wantLogs: []string{"discarding unparseable cached fx rate"},
		},
		{
			name:     "write error",
			cached:   redis.NewStringResult("", redis.Nil),
			setErr:   errors.New("READONLY"),
			wantLogs: []string{"fx rate cache write failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			client := new(MockClient)
			next := new(MockRateSource)
			core, logs := observer.New(zap.WarnLevel)
			key := "fxrate:FIAT:EUR:USD:2024-03-15"

			client.On("Get", ctx, key).Return(tt.cached)
			next.On("FiatRate", ctx, domain.CurrencyEUR, domain.CurrencyUSD, asOf).Return(decimal.RequireFromString("1.0850"), nil)
			client.On("Set", ctx, key, "1.085", ttl).Return(redis.NewStatusResult("", tt.setErr))

			rate, err := NewSource(client, next, ttl, zap.New(core)).FiatRate(ctx, domain.CurrencyEUR, domain.CurrencyUSD, asOf)

			assert.NoError(t, err)
			assert.Equal(t, "1.085", rate.String())
			var messages []string
			for _, entry := range logs.All() {
				messages = append(messages, entry.Message)
			}
			assert.Equal(t, tt.wantLogs, messages)
		})
	}
}
