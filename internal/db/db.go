package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var (
	DB *sqlx.DB
)

const (
	maxRetries    = 10
	retryInterval = 2 * time.Second
)

// Init opens a PostgreSQL connection and assigns it to DB, retrying while
// the database comes up. The prayer_schedules table must already exist.
func Init(ctx context.Context, databaseURL string) error {
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		DB, err = sqlx.ConnectContext(ctx, "postgres", databaseURL)
		if err == nil {
			log.Info().Msg("connected to database")
			return nil
		}

		log.Error().Err(err).
			Int("attempt", attempt).
			Msgf("failed to connect to database, retrying in %s", retryInterval)

		select {
		case <-ctx.Done():
			return fmt.Errorf("database connect cancelled: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	return fmt.Errorf("could not connect to database after %d attempts: %w", maxRetries, err)
}

// Close releases the shared connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}
