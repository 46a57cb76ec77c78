// Package aladhan fetches a day's prayer table from api.aladhan.com.
package aladhan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

const DefaultBaseURL = "https://api.aladhan.com/v1"

var ErrUpstream = errors.New("aladhan request failed")

// response is the subset of the timings payload we read.
type response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Timings map[string]string `json:"timings"`
		Meta    struct {
			Timezone string `json:"timezone"`
		} `json:"meta"`
	} `json:"data"`
}

type Client struct {
	BaseURL string
	// Method is the aladhan calculation method id (2 = ISNA).
	Method int
	HTTP   *http.Client
}

func NewClient(baseURL string, method int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		Method:  method,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Timings returns loc's table for day, converted to 12-hour clock times.
func (c *Client) Timings(ctx context.Context, loc model.Location, day time.Time) (model.ScheduleRecord, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(loc.Latitude, 'f', 6, 64))
	q.Set("longitude", strconv.FormatFloat(loc.Longitude, 'f', 6, 64))
	q.Set("method", strconv.Itoa(c.Method))
	endpoint := fmt.Sprintf("%s/timings/%s?%s", c.BaseURL, day.Format("02-01-2006"), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.ScheduleRecord{}, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		log.Error().Err(err).Str("location", loc.Name).Msg("aladhan request failed")
		return model.ScheduleRecord{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.ScheduleRecord{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	if body.Code != http.StatusOK {
		return model.ScheduleRecord{}, fmt.Errorf("%w: code %d (%s)", ErrUpstream, body.Code, body.Status)
	}

	var times [prayer.Count]string
	for _, n := range prayer.Names() {
		raw, ok := body.Data.Timings[n.String()]
		if !ok {
			return model.ScheduleRecord{}, fmt.Errorf("%w: missing %s", ErrUpstream, n)
		}
		// convert "17:30" → "5:30 PM"
		ct, err := prayer.ClockTimeFrom24h(raw)
		if err != nil {
			return model.ScheduleRecord{}, fmt.Errorf("%w: %s: %v", ErrUpstream, n, err)
		}
		times[n] = ct.String()
	}

	log.Debug().Str("location", loc.Name).Str("timezone", body.Data.Meta.Timezone).Msg("fetched prayer times")

	return model.ScheduleRecord{
		Location: loc.Name,
		Day:      model.DayOf(day),
		Fajr:     times[prayer.Fajr],
		Sunrise:  times[prayer.Sunrise],
		Dhuhr:    times[prayer.Dhuhr],
		Asr:      times[prayer.Asr],
		Maghrib:  times[prayer.Maghrib],
		Isha:     times[prayer.Isha],
		Source:   model.SourceAladhan,
	}, nil
}
