package packets

// REQUESTS FOR /api/tv/countdown
type CountdownQuery struct {
	Target string `form:"target" binding:"required"`
}
