package packets

// REQUESTS FOR /api/admin/schedules/*

// UpsertScheduleRequest carries the six times as "h:mm AM" text.
type UpsertScheduleRequest struct {
	Fajr    string `json:"fajr"    binding:"required"`
	Sunrise string `json:"sunrise" binding:"required"`
	Dhuhr   string `json:"dhuhr"   binding:"required"`
	Asr     string `json:"asr"     binding:"required"`
	Maghrib string `json:"maghrib" binding:"required"`
	Isha    string `json:"isha"    binding:"required"`
	Source  string `json:"source"  binding:"omitempty,oneof=manual aladhan"`
}

// ListSchedulesQuery bounds are inclusive YYYY-MM-DD dates.
type ListSchedulesQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}
