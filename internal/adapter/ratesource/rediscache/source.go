package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

const keyPrefix = "fxrate:"

// Client is the subset of the redis client the cache needs
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Source caches rates from another domain.RateSource in Redis.
// Only successful lookups are cached. Cache failures never fail a lookup;
// they are logged and the wrapped source is consulted instead.
type Source struct {
	client Client
	next   domain.RateSource
	ttl    time.Duration
	logger *zap.Logger
}

// NewSource wraps next with a Redis read-through cache
func NewSource(client Client, next domain.RateSource, ttl time.Duration, log *zap.Logger) *Source {
	if log == nil {
		log = zap.NewNop()
	}
	return &Source{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: log,
	}
}

// CryptoRate implements domain.RateSource
func (s *Source) CryptoRate(ctx context.Context, ticker, quote domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	return s.lookup(ctx, domain.AssetClassCrypto, ticker, quote, asOf, s.next.CryptoRate)
}

// FiatRate implements domain.RateSource
func (s *Source) FiatRate(ctx context.Context, base, quote domain.Currency, asOf time.Time) (decimal.Decimal, error) {
	return s.lookup(ctx, domain.AssetClassFiat, base, quote, asOf, s.next.FiatRate)
}

type fetchFunc func(ctx context.Context, base, quote domain.Currency, asOf time.Time) (decimal.Decimal, error)

func (s *Source) lookup(ctx context.Context, class domain.AssetClass, base, quote domain.Currency, asOf time.Time, fetch fetchFunc) (decimal.Decimal, error) {
	key := Key(class, base, quote, asOf)

	cached, err := s.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		rate, parseErr := decimal.NewFromString(cached)
		if parseErr == nil {
			return rate, nil
		}
		s.logger.Warn("discarding unparseable cached fx rate", zap.String("key", key), zap.Error(parseErr))
	case errors.Is(err, redis.Nil):
		// miss
	default:
		s.logger.Warn("fx rate cache read failed", zap.String("key", key), zap.Error(err))
	}

	rate, err := fetch(ctx, base, quote, asOf)
	if err != nil {
		return decimal.Zero, err
	}

	if err := s.client.Set(ctx, key, rate.String(), s.ttl).Err(); err != nil {
		s.logger.Warn("fx rate cache write failed", zap.String("key", key), zap.Error(err))
	}

	return rate, nil
}

// Key returns the cache key for a rate, e.g. fxrate:FIAT:CAD:USD:2024-03-15.
// The date is the calendar day of asOf in its own location, matching the rate sources.
func Key(class domain.AssetClass, base, quote domain.Currency, asOf time.Time) string {
	return fmt.Sprintf("%s%s:%s:%s:%s", keyPrefix, class, base, quote, domain.DateOnly(asOf).Format(time.DateOnly))
}
