package prayer

import (
	"fmt"
	"time"
)

// Countdown is the time left until a target, truncated to whole minutes.
type Countdown struct {
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	TotalMinutes int `json:"total_minutes"`
}

// ComputeCountdown places target on now's date (in now's location, seconds
// zeroed). If that instant is not after now the target is taken to be
// tomorrow at the same wall-clock time.
func ComputeCountdown(target ClockTime, now time.Time) (Countdown, error) {
	at, err := target.On(now)
	if err != nil {
		return Countdown{}, err
	}
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}

	total := int(at.Sub(now) / time.Minute)
	if total < 0 {
		total = 0
	}
	return Countdown{
		Hours:        total / 60,
		Minutes:      total % 60,
		TotalMinutes: total,
	}, nil
}

// String formats the countdown as "2h 45m", or "45m" under an hour.
func (c Countdown) String() string {
	if c.Hours > 0 {
		return fmt.Sprintf("%dh %dm", c.Hours, c.Minutes)
	}
	return fmt.Sprintf("%dm", c.Minutes)
}

// Clock supplies "now" to the layers that drive the schedule. The schedule
// itself never reads it.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the given location (Local when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}
