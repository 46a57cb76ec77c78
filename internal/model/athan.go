package model

// Location is a place a screen shows prayer times for. Coordinates are only
// needed when the table is fetched from upstream.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}
