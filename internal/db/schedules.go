package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

const scheduleColumns = `id, location, day, fajr, sunrise, dhuhr, asr, maghrib, isha, source, created_at, updated_at`

func dayParam(t time.Time) string {
	return model.DayOf(t).Format("2006-01-02")
}

func (s *pgStore) GetSchedule(ctx context.Context, location string, day time.Time) (model.ScheduleRecord, error) {
	var rec model.ScheduleRecord
	q := `SELECT ` + scheduleColumns + ` FROM prayer_schedules WHERE location = $1 AND day = $2::date;`
	if err := s.db.GetContext(ctx, &rec, q, location, dayParam(day)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ScheduleRecord{}, ErrScheduleNotFound
		}
		log.Error().Err(err).Str("location", location).Time("day", day).Msg("GetSchedule failed")
		return model.ScheduleRecord{}, err
	}
	return rec, nil
}

func (s *pgStore) UpsertSchedule(ctx context.Context, rec model.ScheduleRecord) (model.ScheduleRecord, error) {
	var out model.ScheduleRecord
	q := `
	INSERT INTO prayer_schedules
	  (location, day, fajr, sunrise, dhuhr, asr, maghrib, isha, source, created_at, updated_at)
	VALUES
	  ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, now(), now())
	ON CONFLICT (location, day) DO UPDATE SET
	  fajr = EXCLUDED.fajr,
	  sunrise = EXCLUDED.sunrise,
	  dhuhr = EXCLUDED.dhuhr,
	  asr = EXCLUDED.asr,
	  maghrib = EXCLUDED.maghrib,
	  isha = EXCLUDED.isha,
	  source = EXCLUDED.source,
	  updated_at = now()
	RETURNING ` + scheduleColumns + `;`
	err := s.db.GetContext(ctx, &out, q,
		rec.Location, dayParam(rec.Day),
		rec.Fajr, rec.Sunrise, rec.Dhuhr, rec.Asr, rec.Maghrib, rec.Isha,
		rec.Source,
	)
	if err != nil {
		log.Error().Err(err).Str("location", rec.Location).Time("day", rec.Day).Msg("UpsertSchedule failed")
		return model.ScheduleRecord{}, err
	}
	return out, nil
}

// ListSchedules returns the stored days in [from, to], oldest first.
func (s *pgStore) ListSchedules(ctx context.Context, location string, from, to time.Time) ([]model.ScheduleRecord, error) {
	out := []model.ScheduleRecord{}
	q := `
	SELECT ` + scheduleColumns + `
	  FROM prayer_schedules
	 WHERE location = $1
	   AND day BETWEEN $2::date AND $3::date
	 ORDER BY day;`
	if err := s.db.SelectContext(ctx, &out, q, location, dayParam(from), dayParam(to)); err != nil {
		log.Error().Err(err).Str("location", location).Msg("ListSchedules failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) DeleteSchedule(ctx context.Context, location string, day time.Time) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM prayer_schedules WHERE location = $1 AND day = $2::date;`, location, dayParam(day))
	if err != nil {
		log.Error().Err(err).Str("location", location).Time("day", day).Msg("DeleteSchedule failed")
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
