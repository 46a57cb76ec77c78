package packets

// RESPONSES FOR /api/tv/prayers/*

type PrayerSlot struct {
	Name    string `json:"name"`
	Time    string `json:"time"`
	Time24h string `json:"time_24h"`
	Next    bool   `json:"next"`
}

type NextPrayerResponse struct {
	Name     string `json:"name"`
	Time     string `json:"time"`
	Tomorrow bool   `json:"tomorrow"`
}

type CountdownResponse struct {
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	TotalMinutes int    `json:"total_minutes"`
	Label        string `json:"label"`
}

// StatusResponse is also the frame pushed over the websocket.
type StatusResponse struct {
	Type      string             `json:"type,omitempty"`
	Location  string             `json:"location"`
	Date      string             `json:"date"`
	Prayers   []PrayerSlot       `json:"prayers"`
	Next      NextPrayerResponse `json:"next"`
	Countdown CountdownResponse  `json:"countdown"`
}

type NextResponse struct {
	Location  string             `json:"location"`
	Next      NextPrayerResponse `json:"next"`
	Countdown CountdownResponse  `json:"countdown"`
}

type StreamError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
