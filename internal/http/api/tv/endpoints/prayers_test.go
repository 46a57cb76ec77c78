package endpoints_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api/tv/endpoints"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	"github.com/Nixie-Tech-LLC/athan/internal/timetable"
)

type fakeTimetable struct {
	schedules map[string]*prayer.Schedule
}

func (f *fakeTimetable) Status(_ context.Context, location string, now time.Time) (prayer.Status, error) {
	s, ok := f.schedules[location]
	if !ok {
		return prayer.Status{}, timetable.ErrNoSchedule
	}
	return s.Status(now)
}

func newRouter(t *testing.T, now time.Time) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	entries := []prayer.Entry{
		{Name: prayer.Fajr, Time: prayer.MustClockTime("5:30 AM")},
		{Name: prayer.Sunrise, Time: prayer.MustClockTime("6:45 AM")},
		{Name: prayer.Dhuhr, Time: prayer.MustClockTime("12:30 PM")},
		{Name: prayer.Asr, Time: prayer.MustClockTime("3:45 PM")},
		{Name: prayer.Maghrib, Time: prayer.MustClockTime("7:15 PM")},
		{Name: prayer.Isha, Time: prayer.MustClockTime("8:45 PM")},
	}
	s, err := prayer.NewSchedule("Chicago", entries, prayer.WithStrictOrder())
	require.NoError(t, err)

	tt := &fakeTimetable{schedules: map[string]*prayer.Schedule{"Chicago": s}}

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api/tv"},
		endpoints.PrayerModule(tt, prayer.FixedClock(now), time.Hour))
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetPrayers(t *testing.T) {
	r := newRouter(t, time.Date(2025, 8, 5, 13, 0, 0, 0, time.UTC))

	w := get(r, "/api/tv/prayers/Chicago")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp packets.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Chicago", resp.Location)
	assert.Equal(t, "2025-08-05", resp.Date)
	require.Len(t, resp.Prayers, 6)
	assert.Equal(t, packets.PrayerSlot{Name: "Asr", Time: "3:45 PM", Time24h: "15:45", Next: true}, resp.Prayers[3])
	assert.False(t, resp.Prayers[2].Next)
	assert.Equal(t, packets.CountdownResponse{Hours: 2, Minutes: 45, TotalMinutes: 165, Label: "2h 45m"}, resp.Countdown)
}

func TestGetPrayersUnknownLocation(t *testing.T) {
	r := newRouter(t, time.Date(2025, 8, 5, 13, 0, 0, 0, time.UTC))

	w := get(r, "/api/tv/prayers/Atlantis")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetNextPrayerAfterIsha(t *testing.T) {
	r := newRouter(t, time.Date(2025, 8, 5, 21, 0, 0, 0, time.UTC))

	w := get(r, "/api/tv/prayers/Chicago/next")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"location": "Chicago",
		"next": {"name": "Fajr", "time": "5:30 AM", "tomorrow": true},
		"countdown": {"hours": 8, "minutes": 30, "total_minutes": 510, "label": "8h 30m"}
	}`, w.Body.String())
}

func TestGetCountdown(t *testing.T) {
	r := newRouter(t, time.Date(2025, 8, 5, 13, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		query string
		code  int
		total int
	}{
		{"later today", "?target=3:45%20PM", http.StatusOK, 165},
		{"rolls over", "?target=12:30%20PM", http.StatusOK, 1410},
		{"missing", "", http.StatusBadRequest, 0},
		{"malformed", "?target=25:00", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, "/api/tv/countdown"+tt.query)
			require.Equal(t, tt.code, w.Code, w.Body.String())
			if tt.code != http.StatusOK {
				return
			}
			var resp packets.CountdownResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.total, resp.TotalMinutes)
		})
	}
}

func TestStreamPrayers(t *testing.T) {
	r := newRouter(t, time.Date(2025, 8, 5, 6, 0, 0, 0, time.UTC))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/tv/prayers/Chicago/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var frame packets.StatusResponse
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "status", frame.Type)
	assert.Equal(t, "Sunrise", frame.Next.Name)
	assert.Equal(t, 45, frame.Countdown.TotalMinutes)
}

func TestStreamPrayersUnknownLocation(t *testing.T) {
	r := newRouter(t, time.Date(2025, 8, 5, 6, 0, 0, 0, time.UTC))
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/tv/prayers/Atlantis/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
