//go:build integration

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

type FxRateRepositorySuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *DB
	repo      domain.FxRateRepository
}

func TestFxRateRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(FxRateRepositorySuite))
}

func (s *FxRateRepositorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("payouts"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.db, err = NewDB(ctx, dsn)
	s.Require().NoError(err)
	s.Require().NoError(s.db.Migrate(ctx))

	s.repo = NewFxRateRepository(s.db)
}

func (s *FxRateRepositorySuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
	_ = testcontainers.TerminateContainer(s.container)
}

func (s *FxRateRepositorySuite) SetupTest() {
	_, err := s.db.ExecContext(context.Background(), "TRUNCATE fx_rate_history")
	s.Require().NoError(err)
}

func (s *FxRateRepositorySuite) add(class domain.AssetClass, base domain.Currency, date string, rate string) {
	d, err := time.Parse(time.DateOnly, date)
	s.Require().NoError(err)

	err = s.repo.Add(context.Background(), &domain.FxRateHistory{
		ID:         uuid.New(),
		Base:       base,
		Quote:      domain.CurrencyUSD,
		AssetClass: class,
		RateDate:   d,
		Rate:       decimal.RequireFromString(rate),
	})
	s.Require().NoError(err)
}

func (s *FxRateRepositorySuite) TestGetLatestOnOrBeforeDate() {
	ctx := context.Background()
	s.add(domain.AssetClassFiat, domain.CurrencyCAD, "2024-03-13", "0.7380")
	s.add(domain.AssetClassFiat, domain.CurrencyCAD, "2024-03-15", "0.7391")
	s.add(domain.AssetClassFiat, domain.CurrencyCAD, "2024-03-18", "0.7402")

	entry, err := s.repo.GetLatest(ctx, domain.AssetClassFiat, domain.CurrencyCAD, domain.CurrencyUSD,
		time.Date(2024, 3, 16, 15, 0, 0, 0, time.UTC))

	s.Require().NoError(err)
	s.Equal("0.7391", entry.Rate.String())
	s.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), entry.RateDate)
	s.Equal(domain.AssetClassFiat, entry.AssetClass)
}

func (s *FxRateRepositorySuite) TestAddUpsertsSameDate() {
	ctx := context.Background()
	s.add(domain.AssetClassCrypto, domain.CurrencyBTC, "2024-03-15", "68000.00")
	s.add(domain.AssetClassCrypto, domain.CurrencyBTC, "2024-03-15", "68123.45")

	entry, err := s.repo.GetLatest(ctx, domain.AssetClassCrypto, domain.CurrencyBTC, domain.CurrencyUSD,
		time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	s.Require().NoError(err)
	s.Equal("68123.45", entry.Rate.String())
}

func (s *FxRateRepositorySuite) TestGetLatestNotFound() {
	ctx := context.Background()
	s.add(domain.AssetClassFiat, domain.CurrencyGBP, "2024-03-15", "1.27")

	_, err := s.repo.GetLatest(ctx, domain.AssetClassFiat, domain.CurrencyGBP, domain.CurrencyUSD,
		time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC))

	s.Error(err)
	s.True(errors.Is(err, domain.ErrRateNotFound))
}

func (s *FxRateRepositorySuite) TestAddRejectsInvalidEntry() {
	err := s.repo.Add(context.Background(), &domain.FxRateHistory{
		ID:         uuid.New(),
		Base:       domain.CurrencyEUR,
		Quote:      domain.CurrencyUSD,
		AssetClass: domain.AssetClassFiat,
		RateDate:   time.Now(),
		Rate:       decimal.Zero,
	})

	s.Error(err)
	s.Contains(err.Error(), "fx rate must be positive")
}
