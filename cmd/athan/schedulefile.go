package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

// scheduleFile is the on-disk form:
//
//	{"location": "Chicago", "times": {"Fajr": "5:30 AM", ...}}
type scheduleFile struct {
	Location string            `json:"location"`
	Times    map[string]string `json:"times"`
}

func loadSchedule(path string, strict bool) (*prayer.Schedule, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f scheduleFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	entries := make([]prayer.Entry, 0, len(f.Times))
	for name, value := range f.Times {
		n, err := prayer.ParseName(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		ct, err := prayer.ParseClockTime(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", path, n, err)
		}
		entries = append(entries, prayer.Entry{Name: n, Time: ct})
	}

	var opts []prayer.Option
	if strict {
		opts = append(opts, prayer.WithStrictOrder())
	}
	s, err := prayer.NewSchedule(f.Location, entries, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
