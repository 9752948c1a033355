package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simaogato/payoutcompliance-backend/internal/domain"
)

// fxRateRepository implements domain.FxRateRepository
type fxRateRepository struct {
	db *DB
}

// NewFxRateRepository creates a new fx rate history repository
func NewFxRateRepository(db *DB) domain.FxRateRepository {
	return &fxRateRepository{db: db}
}

// Add upserts a rate observation for its pair, asset class and date
func (r *fxRateRepository) Add(ctx context.Context, entry *domain.FxRateHistory) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO fx_rate_history (id, base, quote, asset_class, rate_date, rate)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (asset_class, base, quote, rate_date)
		DO UPDATE SET rate = EXCLUDED.rate
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.Base),
		string(entry.Quote),
		string(entry.AssetClass),
		domain.DateOnly(entry.RateDate),
		entry.Rate.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fx rate history entry: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recent observation on or before asOf
func (r *fxRateRepository) GetLatest(
	ctx context.Context,
	class domain.AssetClass,
	base, quote domain.Currency,
	asOf time.Time,
) (*domain.FxRateHistory, error) {
	query := `
		SELECT id, base, quote, asset_class, rate_date, rate
		FROM fx_rate_history
		WHERE asset_class = $1 AND base = $2 AND quote = $3 AND rate_date <= $4
		ORDER BY rate_date DESC
		LIMIT 1
	`

	var entry domain.FxRateHistory
	var baseStr, quoteStr, classStr, rateStr string

	err := r.db.QueryRowContext(ctx, query, string(class), string(base), string(quote), domain.DateOnly(asOf)).Scan(
		&entry.ID,
		&baseStr,
		&quoteStr,
		&classStr,
		&entry.RateDate,
		&rateStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no %s rate for %s/%s on or before %s: %w",
				class, base, quote, asOf.Format(time.DateOnly), domain.ErrRateNotFound)
		}
		return nil, fmt.Errorf("failed to get latest fx rate: %w", err)
	}

	// Parse rate (NUMERIC)
	rate, err := decimal.NewFromString(rateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate: %w", err)
	}

	entry.Base = domain.Currency(baseStr)
	entry.Quote = domain.Currency(quoteStr)
	entry.AssetClass = domain.AssetClass(classStr)
	entry.RateDate = domain.DateOnly(entry.RateDate)
	entry.Rate = rate

	return &entry, nil
}
