package db

import (
	"context"
	"errors"
	"os"
)

var TestStore Store

// InitTestDB connects to TEST_DATABASE_URL for integration tests.
func InitTestDB(ctx context.Context) error {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		return errors.New("TEST_DATABASE_URL environment variable is not set")
	}

	if err := Init(ctx, dbURL); err != nil {
		return err
	}

	TestStore = NewStore(DB)
	return nil
}
