// Package prayer holds a day's prayer table and answers which prayer comes
// next and how long is left until it. Every operation takes "now" as an
// argument; nothing in here reads the system clock.
package prayer

import (
	"time"
)

// Entry is one named slot of the day's table.
type Entry struct {
	Name Name      `json:"name"`
	Time ClockTime `json:"time"`
}

// Schedule is a validated, immutable table of the six daily slots for one
// location. Times are indexed by Name so the order cannot drift.
type Schedule struct {
	location string
	times    [Count]ClockTime
	minutes  [Count]int
}

type options struct {
	strictOrder bool
}

type Option func(*options)

// WithStrictOrder rejects tables whose times go backwards between
// consecutive slots (Fajr <= Sunrise <= ... <= Isha).
func WithStrictOrder() Option {
	return func(o *options) { o.strictOrder = true }
}

// NewSchedule validates entries and stores them in fixed order. The input may
// list the six slots in any order but must name each exactly once.
func NewSchedule(location string, entries []Entry, opts ...Option) (*Schedule, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if len(entries) != Count {
		return nil, invalidSchedule("expected %d entries, got %d", Count, len(entries))
	}

	s := &Schedule{location: location}
	var seen [Count]bool
	for _, e := range entries {
		if !e.Name.Valid() {
			return nil, invalidSchedule("unknown slot %s", e.Name)
		}
		if seen[e.Name] {
			return nil, invalidSchedule("%s listed more than once", e.Name)
		}
		mins, err := e.Time.Minutes()
		if err != nil {
			return nil, err
		}
		seen[e.Name] = true
		s.times[e.Name] = e.Time
		s.minutes[e.Name] = mins
	}

	if o.strictOrder {
		for i := 1; i < Count; i++ {
			if s.minutes[i] < s.minutes[i-1] {
				return nil, invalidSchedule("%s (%s) is before %s (%s)",
					Name(i), s.times[i], Name(i-1), s.times[i-1])
			}
		}
	}
	return s, nil
}

// Location is the display label; it plays no part in any computation.
func (s *Schedule) Location() string {
	return s.location
}

// Time returns the clock time of one slot, or the zero ClockTime for a Name
// outside the six.
func (s *Schedule) Time(n Name) ClockTime {
	if !n.Valid() {
		return ClockTime{}
	}
	return s.times[n]
}

// Entries returns the six slots in fixed order.
func (s *Schedule) Entries() []Entry {
	out := make([]Entry, 0, Count)
	for _, n := range Names() {
		out = append(out, Entry{Name: n, Time: s.times[n]})
	}
	return out
}

// Next is the upcoming slot. Tomorrow is set when every slot of today has
// already passed and the answer is the following day's Fajr.
type Next struct {
	Entry
	Tomorrow bool `json:"tomorrow"`
}

// NextPrayer returns the first slot, in fixed order, whose time is strictly
// after now's time of day. At or past Isha it wraps to tomorrow's Fajr.
func (s *Schedule) NextPrayer(now time.Time) Next {
	nowMinutes := now.Hour()*60 + now.Minute()
	for _, n := range Names() {
		if s.minutes[n] > nowMinutes {
			return Next{Entry: Entry{Name: n, Time: s.times[n]}}
		}
	}
	return Next{Entry: Entry{Name: Fajr, Time: s.times[Fajr]}, Tomorrow: true}
}

// Status bundles what a screen shows: the table, the next slot and the
// countdown to it.
type Status struct {
	Location  string    `json:"location"`
	Date      string    `json:"date"`
	Entries   []Entry   `json:"entries"`
	Next      Next      `json:"next"`
	Countdown Countdown `json:"countdown"`
}

// Status evaluates the table at now.
func (s *Schedule) Status(now time.Time) (Status, error) {
	next := s.NextPrayer(now)
	cd, err := ComputeCountdown(next.Time, now)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Location:  s.location,
		Date:      now.Format("2006-01-02"),
		Entries:   s.Entries(),
		Next:      next,
		Countdown: cd,
	}, nil
}
