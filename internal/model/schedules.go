package model

import (
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

const (
	SourceManual  = "manual"
	SourceAladhan = "aladhan"
)

// ScheduleRecord is one location's prayer table for one calendar day, as
// stored in postgres and cached in redis. Times are kept as "h:mm AM" text.
type ScheduleRecord struct {
	ID        int       `db:"id"         json:"id"`
	Location  string    `db:"location"   json:"location"`
	Day       time.Time `db:"day"        json:"day"`
	Fajr      string    `db:"fajr"       json:"fajr"`
	Sunrise   string    `db:"sunrise"    json:"sunrise"`
	Dhuhr     string    `db:"dhuhr"      json:"dhuhr"`
	Asr       string    `db:"asr"        json:"asr"`
	Maghrib   string    `db:"maghrib"    json:"maghrib"`
	Isha      string    `db:"isha"       json:"isha"`
	Source    string    `db:"source"     json:"source"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (r ScheduleRecord) times() [prayer.Count]string {
	return [prayer.Count]string{r.Fajr, r.Sunrise, r.Dhuhr, r.Asr, r.Maghrib, r.Isha}
}

// Entries parses the six stored times in fixed order.
func (r ScheduleRecord) Entries() ([]prayer.Entry, error) {
	raw := r.times()
	out := make([]prayer.Entry, 0, prayer.Count)
	for _, n := range prayer.Names() {
		ct, err := prayer.ParseClockTime(raw[n])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n, err)
		}
		out = append(out, prayer.Entry{Name: n, Time: ct})
	}
	return out, nil
}

// ToSchedule validates the record into an immutable schedule.
func (r ScheduleRecord) ToSchedule(opts ...prayer.Option) (*prayer.Schedule, error) {
	entries, err := r.Entries()
	if err != nil {
		return nil, err
	}
	return prayer.NewSchedule(r.Location, entries, opts...)
}

// RecordFromSchedule flattens a schedule back into its storage form.
func RecordFromSchedule(s *prayer.Schedule, day time.Time, source string) ScheduleRecord {
	return ScheduleRecord{
		Location: s.Location(),
		Day:      DayOf(day),
		Fajr:     s.Time(prayer.Fajr).String(),
		Sunrise:  s.Time(prayer.Sunrise).String(),
		Dhuhr:    s.Time(prayer.Dhuhr).String(),
		Asr:      s.Time(prayer.Asr).String(),
		Maghrib:  s.Time(prayer.Maghrib).String(),
		Isha:     s.Time(prayer.Isha).String(),
		Source:   source,
	}
}

// DayOf truncates t to midnight UTC of its calendar date so the same day
// always maps to the same key regardless of zone.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
