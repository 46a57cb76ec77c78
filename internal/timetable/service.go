// Package timetable resolves which prayer table applies to a location on a
// given day, reading through the redis cache, the postgres store and the
// aladhan API in that order.
package timetable

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/aladhan"
	"github.com/Nixie-Tech-LLC/athan/internal/db"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	athanredis "github.com/Nixie-Tech-LLC/athan/internal/redis"
)

var (
	ErrNoSchedule     = errors.New("no prayer schedule for location and day")
	ErrStoreDisabled  = errors.New("schedule store is not configured")
	ErrLocationNeeded = errors.New("location is required")
	// ErrCorruptSchedule marks a stored or cached table that no longer
	// validates, e.g. after strict ordering was switched on.
	ErrCorruptSchedule = errors.New("stored prayer schedule is invalid")
)

type Cache interface {
	Get(ctx context.Context, location string, day time.Time) (model.ScheduleRecord, error)
	Set(ctx context.Context, rec model.ScheduleRecord) error
	Invalidate(ctx context.Context, location string, day time.Time) error
}

type Source interface {
	Timings(ctx context.Context, loc model.Location, day time.Time) (model.ScheduleRecord, error)
}

// Service is safe for concurrent use; it holds no mutable state of its own.
type Service struct {
	store     db.Store
	cache     Cache
	source    Source
	locations map[string]model.Location
	opts      []prayer.Option
}

type Config struct {
	Store  db.Store
	Cache  Cache
	Source Source
	// Locations with coordinates can be fetched from Source on a miss.
	Locations   []model.Location
	StrictOrder bool
}

// New builds a Service. Store, Cache and Source are each optional.
func New(cfg Config) *Service {
	s := &Service{
		store:     cfg.Store,
		cache:     cfg.Cache,
		source:    cfg.Source,
		locations: make(map[string]model.Location, len(cfg.Locations)),
	}
	for _, loc := range cfg.Locations {
		s.locations[loc.Name] = loc
	}
	if cfg.StrictOrder {
		s.opts = append(s.opts, prayer.WithStrictOrder())
	}
	return s
}

// Locations lists the configured location names, sorted.
func (s *Service) Locations() []string {
	out := make([]string, 0, len(s.locations))
	for name := range s.locations {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Schedule returns location's table for the calendar date of day.
func (s *Service) Schedule(ctx context.Context, location string, day time.Time) (*prayer.Schedule, error) {
	rec, err := s.record(ctx, location, day)
	if err != nil {
		return nil, err
	}
	sched, err := rec.ToSchedule(s.opts...)
	if err != nil {
		log.Error().Err(err).Str("location", location).Time("day", day).Msg("stored schedule failed validation")
		return nil, fmt.Errorf("%w: %s on %s: %v", ErrCorruptSchedule, location, model.DayOf(day).Format("2006-01-02"), err)
	}
	return sched, nil
}

func (s *Service) record(ctx context.Context, location string, day time.Time) (model.ScheduleRecord, error) {
	if location == "" {
		return model.ScheduleRecord{}, ErrLocationNeeded
	}

	if s.cache != nil {
		rec, err := s.cache.Get(ctx, location, day)
		if err == nil {
			return rec, nil
		}
		if !errors.Is(err, athanredis.ErrCacheMiss) {
			log.Warn().Err(err).Str("location", location).Msg("schedule cache unavailable")
		}
	}

	if s.store != nil {
		rec, err := s.store.GetSchedule(ctx, location, day)
		switch {
		case err == nil:
			s.remember(ctx, rec)
			return rec, nil
		case !errors.Is(err, db.ErrScheduleNotFound):
			return model.ScheduleRecord{}, fmt.Errorf("load schedule: %w", err)
		}
	}

	loc, known := s.locations[location]
	if s.source == nil || !known || !loc.HasCoordinates() {
		return model.ScheduleRecord{}, ErrNoSchedule
	}

	rec, err := s.source.Timings(ctx, loc, day)
	if err != nil {
		return model.ScheduleRecord{}, err
	}
	if _, err := rec.ToSchedule(s.opts...); err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("%w: table for %s: %v", aladhan.ErrUpstream, location, err)
	}
	if s.store != nil {
		if saved, err := s.store.UpsertSchedule(ctx, rec); err != nil {
			log.Error().Err(err).Str("location", location).Msg("failed to persist fetched schedule")
		} else {
			rec = saved
		}
	}
	s.remember(ctx, rec)
	return rec, nil
}

func (s *Service) remember(ctx context.Context, rec model.ScheduleRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, rec); err != nil {
		log.Warn().Err(err).Str("location", rec.Location).Msg("failed to cache schedule")
	}
}

func (s *Service) forget(ctx context.Context, location string, day time.Time) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, location, day); err != nil {
		log.Warn().Err(err).Str("location", location).Msg("failed to invalidate cached schedule")
	}
}

// Status evaluates location's table at now. When the next prayer is
// tomorrow's Fajr, tomorrow's table supplies its time if one is available.
func (s *Service) Status(ctx context.Context, location string, now time.Time) (prayer.Status, error) {
	today, err := s.Schedule(ctx, location, now)
	if err != nil {
		return prayer.Status{}, err
	}
	st, err := today.Status(now)
	if err != nil {
		return prayer.Status{}, err
	}
	if !st.Next.Tomorrow {
		return st, nil
	}

	tomorrow, err := s.Schedule(ctx, location, now.AddDate(0, 0, 1))
	if err != nil {
		log.Debug().Err(err).Str("location", location).Msg("no table for tomorrow, using today's fajr")
		return st, nil
	}
	st.Next.Time = tomorrow.Time(prayer.Fajr)
	st.Countdown, err = prayer.ComputeCountdown(st.Next.Time, now)
	if err != nil {
		return prayer.Status{}, err
	}
	return st, nil
}

// Save validates rec and stores it in canonical form.
func (s *Service) Save(ctx context.Context, rec model.ScheduleRecord) (model.ScheduleRecord, error) {
	if s.store == nil {
		return model.ScheduleRecord{}, ErrStoreDisabled
	}
	if rec.Location == "" {
		return model.ScheduleRecord{}, ErrLocationNeeded
	}
	sched, err := rec.ToSchedule(s.opts...)
	if err != nil {
		return model.ScheduleRecord{}, err
	}
	source := rec.Source
	if source == "" {
		source = model.SourceManual
	}

	saved, err := s.store.UpsertSchedule(ctx, model.RecordFromSchedule(sched, rec.Day, source))
	if err != nil {
		return model.ScheduleRecord{}, err
	}
	s.forget(ctx, rec.Location, rec.Day)
	return saved, nil
}

func (s *Service) List(ctx context.Context, location string, from, to time.Time) ([]model.ScheduleRecord, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	return s.store.ListSchedules(ctx, location, from, to)
}

func (s *Service) Delete(ctx context.Context, location string, day time.Time) error {
	if s.store == nil {
		return ErrStoreDisabled
	}
	if err := s.store.DeleteSchedule(ctx, location, day); err != nil {
		return err
	}
	s.forget(ctx, location, day)
	return nil
}
