package packets

// RESPONSES FOR /api/admin/*

type ScheduleResponse struct {
	ID        int    `json:"id"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	Fajr      string `json:"fajr"`
	Sunrise   string `json:"sunrise"`
	Dhuhr     string `json:"dhuhr"`
	Asr       string `json:"asr"`
	Maghrib   string `json:"maghrib"`
	Isha      string `json:"isha"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type LocationsResponse struct {
	Locations []string `json:"locations"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
