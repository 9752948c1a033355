package seeder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/payoutcompliance-backend/internal/config"
	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

// rateNamespace derives stable ids so reseeding the same entry upserts the same row
var rateNamespace = uuid.MustParse("6f1c2a4e-8d3b-4f5a-9c7e-2b1d0a9e8f70")

// RateWriter stores reference rates
type RateWriter interface {
	Add(ctx context.Context, entry *domain.FxRateHistory) error
}

// RateSeeder loads configured reference rates on startup
type RateSeeder struct {
	repo   RateWriter
	rates  []config.SeedRate
	logger *zap.Logger
}

// NewRateSeeder creates a new RateSeeder instance
func NewRateSeeder(repo RateWriter, rates []config.SeedRate, log *zap.Logger) *RateSeeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &RateSeeder{
		repo:   repo,
		rates:  rates,
		logger: log,
	}
}

// Seed stores every configured rate and returns how many were written.
// Malformed entries are logged and skipped; a storage failure aborts seeding.
func (s *RateSeeder) Seed(ctx context.Context) (int, error) {
	seeded := 0

	for i, raw := range s.rates {
		entry, err := ParseSeedRate(raw)
		if err != nil {
			s.logger.Warn("skipping invalid seed rate",
				zap.Int("index", i),
				zap.String("base", raw.Base),
				zap.String("quote", raw.Quote),
				zap.Error(err),
			)
			continue
		}

		if err := s.repo.Add(ctx, entry); err != nil {
			return seeded, fmt.Errorf("seed rate %s/%s on %s: %w", entry.Base, entry.Quote, raw.Date, err)
		}
		seeded++
	}

	s.logger.Info("seeded reference fx rates", zap.Int("count", seeded), zap.Int("skipped", len(s.rates)-seeded))
	return seeded, nil
}

// ParseSeedRate converts a configured rate into a validated history entry
func ParseSeedRate(raw config.SeedRate) (*domain.FxRateHistory, error) {
	base := domain.Currency(strings.ToUpper(strings.TrimSpace(raw.Base)))
	quote := domain.Currency(strings.ToUpper(strings.TrimSpace(raw.Quote)))

	date, err := time.Parse(time.DateOnly, strings.TrimSpace(raw.Date))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", raw.Date, err)
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(raw.Rate))
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", raw.Rate, err)
	}

	key := fmt.Sprintf("%s:%s:%s", base, quote, date.Format(time.DateOnly))
	entry := &domain.FxRateHistory{
		ID:         uuid.NewSHA1(rateNamespace, []byte(key)),
		Base:       base,
		Quote:      quote,
		AssetClass: base.AssetClass(),
		RateDate:   date,
		Rate:       rate,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}
