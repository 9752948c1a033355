//go:build integration

package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

type RedisCacheSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *redis.Client
}

func TestRedisCacheSuite(t *testing.T) {
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err, "failed to start redis container")
	s.container = container

	url, err := container.ConnectionString(ctx)
	s.Require().NoError(err)

	opts, err := redis.ParseURL(url)
	s.Require().NoError(err)

	s.client = redis.NewClient(opts)
	s.Require().NoError(s.client.Ping(ctx).Err())
}

func (s *RedisCacheSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = testcontainers.TerminateContainer(s.container)
	}
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *RedisCacheSuite) TestReadThrough() {
	ctx := context.Background()
	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	next := new(MockRateSource)
	next.On("FiatRate", ctx, domain.CurrencyCAD, domain.CurrencyUSD, asOf).Return(decimal.RequireFromString("0.7391"), nil).Once()

	source := NewSource(s.client, next, time.Hour, nil)

	first, err := source.FiatRate(ctx, domain.CurrencyCAD, domain.CurrencyUSD, asOf)
	s.Require().NoError(err)
	second, err := source.FiatRate(ctx, domain.CurrencyCAD, domain.CurrencyUSD, asOf)
	s.Require().NoError(err)

	s.Equal("0.7391", first.String())
	s.True(first.Equal(second))
	next.AssertNumberOfCalls(s.T(), "FiatRate", 1)

	ttl, err := s.client.TTL(ctx, Key(domain.AssetClassFiat, domain.CurrencyCAD, domain.CurrencyUSD, asOf)).Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Hour)
}
