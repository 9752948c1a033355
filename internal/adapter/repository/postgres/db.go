package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// schema creates the historical rate table used by the rate source
const schema = `
	CREATE TABLE IF NOT EXISTS fx_rate_history (
		id          UUID PRIMARY KEY,
		base        VARCHAR(10) NOT NULL,
		quote       VARCHAR(10) NOT NULL,
		asset_class VARCHAR(10) NOT NULL,
		rate_date   DATE NOT NULL,
		rate        NUMERIC(30, 12) NOT NULL CHECK (rate > 0),
		UNIQUE (asset_class, base, quote, rate_date)
	)
`

// NewDB opens and pings a database connection
// dsn should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=payouts sslmode=disable"
func NewDB(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Migrate creates the tables the repositories need if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
