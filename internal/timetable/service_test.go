package timetable_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/aladhan"
	"github.com/Nixie-Tech-LLC/athan/internal/db"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	athanredis "github.com/Nixie-Tech-LLC/athan/internal/redis"
	"github.com/Nixie-Tech-LLC/athan/internal/timetable"
)

type memStore struct {
	mu      sync.Mutex
	records map[string]model.ScheduleRecord
	upserts int
}

func newMemStore() *memStore {
	return &memStore{records: map[string]model.ScheduleRecord{}}
}

func key(location string, day time.Time) string {
	return location + "|" + model.DayOf(day).Format("2006-01-02")
}

func (m *memStore) GetSchedule(_ context.Context, location string, day time.Time) (model.ScheduleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[key(location, day)]
	if !ok {
		return model.ScheduleRecord{}, db.ErrScheduleNotFound
	}
	return rec, nil
}

func (m *memStore) UpsertSchedule(_ context.Context, rec model.ScheduleRecord) (model.ScheduleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	rec.ID = m.upserts
	rec.Day = model.DayOf(rec.Day)
	m.records[key(rec.Location, rec.Day)] = rec
	return rec, nil
}

func (m *memStore) ListSchedules(_ context.Context, location string, from, to time.Time) ([]model.ScheduleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.ScheduleRecord
	for d := model.DayOf(from); !d.After(model.DayOf(to)); d = d.AddDate(0, 0, 1) {
		if rec, ok := m.records[key(location, d)]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memStore) DeleteSchedule(_ context.Context, location string, day time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[key(location, day)]; !ok {
		return db.ErrScheduleNotFound
	}
	delete(m.records, key(location, day))
	return nil
}

type fakeSource struct {
	calls int
	rec   model.ScheduleRecord
	err   error
}

func (f *fakeSource) Timings(_ context.Context, loc model.Location, day time.Time) (model.ScheduleRecord, error) {
	f.calls++
	if f.err != nil {
		return model.ScheduleRecord{}, f.err
	}
	rec := f.rec
	rec.Location = loc.Name
	rec.Day = model.DayOf(day)
	rec.Source = model.SourceAladhan
	return rec, nil
}

func chicagoRecord(day time.Time) model.ScheduleRecord {
	return model.ScheduleRecord{
		Location: "Chicago",
		Day:      day,
		Fajr:     "5:30 AM",
		Sunrise:  "6:45 AM",
		Dhuhr:    "12:30 PM",
		Asr:      "3:45 PM",
		Maghrib:  "7:15 PM",
		Isha:     "8:45 PM",
	}
}

var chicago = model.Location{Name: "Chicago", Latitude: 41.8781, Longitude: -87.6298}

func newCache(t *testing.T) *athanredis.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	return athanredis.NewCache(athanredis.InitRedis(mr.Addr(), "", ""), time.Hour)
}

func TestScheduleFetchesUpstreamOnceThenCaches(t *testing.T) {
	store := newMemStore()
	source := &fakeSource{rec: chicagoRecord(time.Time{})}
	svc := timetable.New(timetable.Config{
		Store:       store,
		Cache:       newCache(t),
		Source:      source,
		Locations:   []model.Location{chicago},
		StrictOrder: true,
	})
	ctx := context.Background()
	now := time.Date(2025, 8, 5, 13, 0, 0, 0, time.UTC)

	s, err := svc.Schedule(ctx, "Chicago", now)
	require.NoError(t, err)
	assert.Equal(t, "3:45 PM", s.Time(prayer.Asr).String())
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1, store.upserts)

	_, err = svc.Schedule(ctx, "Chicago", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls, "second lookup should be served from cache")
}

func TestScheduleFromStoreWithoutCache(t *testing.T) {
	store := newMemStore()
	day := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	_, err := store.UpsertSchedule(context.Background(), chicagoRecord(day))
	require.NoError(t, err)

	svc := timetable.New(timetable.Config{Store: store})
	s, err := svc.Schedule(context.Background(), "Chicago", day.Add(9*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Chicago", s.Location())
}

func TestScheduleMisses(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 8, 5, 13, 0, 0, 0, time.UTC)

	svc := timetable.New(timetable.Config{Store: newMemStore()})
	_, err := svc.Schedule(ctx, "Lobby", now)
	assert.ErrorIs(t, err, timetable.ErrNoSchedule)

	_, err = svc.Schedule(ctx, "", now)
	assert.ErrorIs(t, err, timetable.ErrLocationNeeded)

	upstreamDown := errors.New("boom")
	svc = timetable.New(timetable.Config{
		Source:    &fakeSource{err: upstreamDown},
		Locations: []model.Location{chicago},
	})
	_, err = svc.Schedule(ctx, "Chicago", now)
	assert.ErrorIs(t, err, upstreamDown)
}

func TestScheduleRejectsBadUpstreamTable(t *testing.T) {
	rec := chicagoRecord(time.Time{})
	rec.Sunrise = "4:00 AM"
	svc := timetable.New(timetable.Config{
		Source:      &fakeSource{rec: rec},
		Locations:   []model.Location{chicago},
		StrictOrder: true,
	})
	_, err := svc.Schedule(context.Background(), "Chicago", time.Now())
	assert.ErrorIs(t, err, aladhan.ErrUpstream)
	assert.NotErrorIs(t, err, prayer.ErrInvalidSchedule)
}

func TestScheduleReportsCorruptStoredTable(t *testing.T) {
	store := newMemStore()
	day := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	rec := chicagoRecord(day)
	rec.Sunrise = "4:00 AM"
	_, err := store.UpsertSchedule(context.Background(), rec)
	require.NoError(t, err)

	lenient := timetable.New(timetable.Config{Store: store})
	_, err = lenient.Schedule(context.Background(), "Chicago", day)
	require.NoError(t, err)

	strict := timetable.New(timetable.Config{Store: store, StrictOrder: true})
	_, err = strict.Schedule(context.Background(), "Chicago", day)
	assert.ErrorIs(t, err, timetable.ErrCorruptSchedule)
	assert.NotErrorIs(t, err, prayer.ErrInvalidSchedule)

	_, err = strict.Status(context.Background(), "Chicago", day.Add(13*time.Hour))
	assert.ErrorIs(t, err, timetable.ErrCorruptSchedule)
}

func TestStatusUsesTomorrowsFajr(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	today := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)
	_, err := store.UpsertSchedule(ctx, chicagoRecord(today))
	require.NoError(t, err)

	svc := timetable.New(timetable.Config{Store: store, StrictOrder: true})
	now := today.Add(21 * time.Hour)

	st, err := svc.Status(ctx, "Chicago", now)
	require.NoError(t, err)
	assert.True(t, st.Next.Tomorrow)
	assert.Equal(t, "5:30 AM", st.Next.Time.String())
	assert.Equal(t, 510, st.Countdown.TotalMinutes)

	next := chicagoRecord(today.AddDate(0, 0, 1))
	next.Fajr = "5:31 AM"
	_, err = store.UpsertSchedule(ctx, next)
	require.NoError(t, err)

	st, err = svc.Status(ctx, "Chicago", now)
	require.NoError(t, err)
	assert.Equal(t, prayer.Fajr, st.Next.Name)
	assert.Equal(t, "5:31 AM", st.Next.Time.String())
	assert.Equal(t, 511, st.Countdown.TotalMinutes)
}

func TestSaveCanonicalisesAndInvalidates(t *testing.T) {
	store := newMemStore()
	cache := newCache(t)
	svc := timetable.New(timetable.Config{Store: store, Cache: cache, StrictOrder: true})
	ctx := context.Background()
	day := time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)

	first := chicagoRecord(day)
	_, err := svc.Save(ctx, first)
	require.NoError(t, err)
	_, err = svc.Schedule(ctx, "Chicago", day)
	require.NoError(t, err)

	edited := chicagoRecord(day)
	edited.Isha = "09:05 pm"
	saved, err := svc.Save(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, "9:05 PM", saved.Isha)
	assert.Equal(t, model.SourceManual, saved.Source)

	s, err := svc.Schedule(ctx, "Chicago", day)
	require.NoError(t, err)
	assert.Equal(t, "9:05 PM", s.Time(prayer.Isha).String())

	bad := chicagoRecord(day)
	bad.Asr = "25:00"
	_, err = svc.Save(ctx, bad)
	assert.ErrorIs(t, err, prayer.ErrMalformedTime)

	list, err := svc.List(ctx, "Chicago", day, day)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "Chicago", day))
	_, err = svc.Schedule(ctx, "Chicago", day)
	assert.ErrorIs(t, err, timetable.ErrNoSchedule)
}

func TestWritesNeedStore(t *testing.T) {
	svc := timetable.New(timetable.Config{})
	ctx := context.Background()
	_, err := svc.Save(ctx, chicagoRecord(time.Now()))
	assert.ErrorIs(t, err, timetable.ErrStoreDisabled)
	_, err = svc.List(ctx, "Chicago", time.Now(), time.Now())
	assert.ErrorIs(t, err, timetable.ErrStoreDisabled)
	assert.ErrorIs(t, svc.Delete(ctx, "Chicago", time.Now()), timetable.ErrStoreDisabled)
}

func TestLocationsSorted(t *testing.T) {
	svc := timetable.New(timetable.Config{Locations: []model.Location{{Name: "Toronto"}, chicago}})
	assert.Equal(t, []string{"Chicago", "Toronto"}, svc.Locations())
}
