package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api/tv/packets"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

// Timetable is the read side of timetable.Service.
type Timetable interface {
	Status(ctx context.Context, location string, now time.Time) (prayer.Status, error)
}

type PrayerController struct {
	timetable Timetable
	clock     prayer.Clock
	interval  time.Duration
}

func NewPrayerController(tt Timetable, clock prayer.Clock, interval time.Duration) *PrayerController {
	if interval <= 0 {
		interval = time.Minute
	}
	return &PrayerController{timetable: tt, clock: clock, interval: interval}
}

func PrayerModule(tt Timetable, clock prayer.Clock, interval time.Duration) api.Module {
	ctl := NewPrayerController(tt, clock, interval)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/prayers/:location", ctl.getPrayers)
		c.GET("/prayers/:location/next", ctl.getNextPrayer)
		c.Raw(http.MethodGet, "/prayers/:location/ws", ctl.streamPrayers)

		c.GET("/countdown", ctl.getCountdown)
	})
}

func (p *PrayerController) getPrayers(ctx *gin.Context) (any, *api.APIError) {
	st, err := p.timetable.Status(ctx.Request.Context(), ctx.Param("location"), p.clock.Now())
	if err != nil {
		return nil, api.ErrorFrom(err)
	}
	return statusResponse(st), nil
}

func (p *PrayerController) getNextPrayer(ctx *gin.Context) (any, *api.APIError) {
	st, err := p.timetable.Status(ctx.Request.Context(), ctx.Param("location"), p.clock.Now())
	if err != nil {
		return nil, api.ErrorFrom(err)
	}
	return packets.NextResponse{
		Location:  st.Location,
		Next:      nextResponse(st.Next),
		Countdown: countdownResponse(st.Countdown),
	}, nil
}

func (p *PrayerController) getCountdown(ctx *gin.Context) (any, *api.APIError) {
	var query packets.CountdownQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	target, err := prayer.ParseClockTime(query.Target)
	if err != nil {
		return nil, api.ErrorFrom(err)
	}
	cd, err := prayer.ComputeCountdown(target, p.clock.Now())
	if err != nil {
		return nil, api.ErrorFrom(err)
	}
	return countdownResponse(cd), nil
}

func statusResponse(st prayer.Status) packets.StatusResponse {
	slots := make([]packets.PrayerSlot, 0, len(st.Entries))
	for _, e := range st.Entries {
		slots = append(slots, packets.PrayerSlot{
			Name:    e.Name.String(),
			Time:    e.Time.String(),
			Time24h: e.Time.Format24h(),
			Next:    !st.Next.Tomorrow && e.Name == st.Next.Name,
		})
	}
	return packets.StatusResponse{
		Location:  st.Location,
		Date:      st.Date,
		Prayers:   slots,
		Next:      nextResponse(st.Next),
		Countdown: countdownResponse(st.Countdown),
	}
}

func nextResponse(n prayer.Next) packets.NextPrayerResponse {
	return packets.NextPrayerResponse{
		Name:     n.Name.String(),
		Time:     n.Time.String(),
		Tomorrow: n.Tomorrow,
	}
}

func countdownResponse(cd prayer.Countdown) packets.CountdownResponse {
	return packets.CountdownResponse{
		Hours:        cd.Hours,
		Minutes:      cd.Minutes,
		TotalMinutes: cd.TotalMinutes,
		Label:        cd.String(),
	}
}
