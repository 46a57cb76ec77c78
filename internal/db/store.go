// exposes a Store interface that the timetable service and admin endpoints depend on
package db

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

var ErrScheduleNotFound = errors.New("schedule not found")

type Store interface {
	GetSchedule(ctx context.Context, location string, day time.Time) (model.ScheduleRecord, error)
	UpsertSchedule(ctx context.Context, rec model.ScheduleRecord) (model.ScheduleRecord, error)
	ListSchedules(ctx context.Context, location string, from, to time.Time) ([]model.ScheduleRecord, error)
	DeleteSchedule(ctx context.Context, location string, day time.Time) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

// NewStore wraps db, falling back to the shared DB set by Init.
func NewStore(db *sqlx.DB) Store {
	if db == nil {
		db = DB
	}
	return &pgStore{db: db}
}
