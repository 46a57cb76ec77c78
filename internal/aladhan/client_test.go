package aladhan_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/aladhan"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

const timingsBody = `{
  "code": 200,
  "status": "OK",
  "data": {
    "timings": {
      "Fajr": "04:12 (CDT)",
      "Sunrise": "05:48 (CDT)",
      "Dhuhr": "12:56 (CDT)",
      "Asr": "16:51 (CDT)",
      "Sunset": "20:03 (CDT)",
      "Maghrib": "20:03 (CDT)",
      "Isha": "21:39 (CDT)",
      "Imsak": "04:02 (CDT)",
      "Midnight": "00:56 (CDT)"
    },
    "meta": {"timezone": "America/Chicago"}
  }
}`

var chicago = model.Location{Name: "Chicago", Latitude: 41.8781, Longitude: -87.6298}

func TestTimings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/timings/05-08-2025", r.URL.Path)
		assert.Equal(t, "41.878100", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-87.629800", r.URL.Query().Get("longitude"))
		assert.Equal(t, "2", r.URL.Query().Get("method"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(timingsBody))
	}))
	defer srv.Close()

	client := aladhan.NewClient(srv.URL, 2)
	day := time.Date(2025, 8, 5, 15, 0, 0, 0, time.UTC)

	rec, err := client.Timings(context.Background(), chicago, day)
	require.NoError(t, err)
	assert.Equal(t, "Chicago", rec.Location)
	assert.Equal(t, "4:12 AM", rec.Fajr)
	assert.Equal(t, "12:56 PM", rec.Dhuhr)
	assert.Equal(t, "9:39 PM", rec.Isha)
	assert.Equal(t, model.SourceAladhan, rec.Source)
	assert.Equal(t, model.DayOf(day), rec.Day)

	s, err := rec.ToSchedule(prayer.WithStrictOrder())
	require.NoError(t, err)
	assert.Equal(t, prayer.Asr, s.NextPrayer(day).Name)
}

func TestTimingsUpstreamFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusInternalServerError, `oops`},
		{"api error code", http.StatusOK, `{"code": 400, "status": "BAD_REQUEST", "data": {}}`},
		{"missing slot", http.StatusOK, `{"code": 200, "status": "OK", "data": {"timings": {"Fajr": "04:12"}}}`},
		{"bad time", http.StatusOK, `{"code": 200, "status": "OK", "data": {"timings": {
			"Fajr": "4am", "Sunrise": "05:48", "Dhuhr": "12:56", "Asr": "16:51", "Maghrib": "20:03", "Isha": "21:39"}}}`},
		{"not json", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := aladhan.NewClient(srv.URL, 2).Timings(context.Background(), chicago, time.Now())
			assert.ErrorIs(t, err, aladhan.ErrUpstream)
		})
	}
}
