package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api/admin/packets"
	"github.com/Nixie-Tech-LLC/athan/internal/model"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
)

const (
	dateLayout = "2006-01-02"
	// default window for listing when no range is given
	defaultListDays = 30
)

type Timetable interface {
	Locations() []string
	Save(ctx context.Context, rec model.ScheduleRecord) (model.ScheduleRecord, error)
	List(ctx context.Context, location string, from, to time.Time) ([]model.ScheduleRecord, error)
	Delete(ctx context.Context, location string, day time.Time) error
}

type ScheduleController struct {
	timetable Timetable
	clock     prayer.Clock
}

func NewScheduleController(tt Timetable, clock prayer.Clock) *ScheduleController {
	return &ScheduleController{timetable: tt, clock: clock}
}

func ScheduleModule(tt Timetable, clock prayer.Clock) api.Module {
	ctl := NewScheduleController(tt, clock)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/locations", ctl.listLocations)

		c.GET("/schedules/:location", ctl.listSchedules)
		c.PUT("/schedules/:location/:date", ctl.upsertSchedule)
		c.DELETE("/schedules/:location/:date", ctl.deleteSchedule)
	})
}

func (s *ScheduleController) listLocations(ctx *gin.Context) (any, *api.APIError) {
	return packets.LocationsResponse{Locations: s.timetable.Locations()}, nil
}

func (s *ScheduleController) listSchedules(ctx *gin.Context) (any, *api.APIError) {
	var query packets.ListSchedulesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	from := model.DayOf(s.clock.Now())
	if query.From != "" {
		day, err := time.Parse(dateLayout, query.From)
		if err != nil {
			return nil, api.BadRequest("from must be YYYY-MM-DD")
		}
		from = day
	}
	to := from.AddDate(0, 0, defaultListDays)
	if query.To != "" {
		day, err := time.Parse(dateLayout, query.To)
		if err != nil {
			return nil, api.BadRequest("to must be YYYY-MM-DD")
		}
		to = day
	}
	if to.Before(from) {
		return nil, api.BadRequest("to is before from")
	}

	list, err := s.timetable.List(ctx.Request.Context(), ctx.Param("location"), from, to)
	if err != nil {
		log.Error().Err(err).Str("location", ctx.Param("location")).Msg("failed to list schedules")
		return nil, api.ErrorFrom(err)
	}

	response := make([]packets.ScheduleResponse, 0, len(list))
	for _, rec := range list {
		response = append(response, scheduleResponse(rec))
	}
	return response, nil
}

func (s *ScheduleController) upsertSchedule(ctx *gin.Context) (any, *api.APIError) {
	day, apiErr := parseDay(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpsertScheduleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BadRequest(err.Error())
	}

	saved, err := s.timetable.Save(ctx.Request.Context(), model.ScheduleRecord{
		Location: ctx.Param("location"),
		Day:      day,
		Fajr:     request.Fajr,
		Sunrise:  request.Sunrise,
		Dhuhr:    request.Dhuhr,
		Asr:      request.Asr,
		Maghrib:  request.Maghrib,
		Isha:     request.Isha,
		Source:   request.Source,
	})
	if err != nil {
		log.Warn().Err(err).Str("location", ctx.Param("location")).Msg("schedule rejected")
		return nil, api.ErrorFrom(err)
	}

	log.Info().
		Str("location", saved.Location).
		Str("date", saved.Day.Format(dateLayout)).
		Str("source", saved.Source).
		Msg("schedule saved")
	return scheduleResponse(saved), nil
}

func (s *ScheduleController) deleteSchedule(ctx *gin.Context) (any, *api.APIError) {
	day, apiErr := parseDay(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := s.timetable.Delete(ctx.Request.Context(), ctx.Param("location"), day); err != nil {
		return nil, api.ErrorFrom(err)
	}
	return packets.MessageResponse{Message: "schedule deleted"}, nil
}

func parseDay(ctx *gin.Context) (time.Time, *api.APIError) {
	day, err := time.Parse(dateLayout, ctx.Param("date"))
	if err != nil {
		return time.Time{}, &api.APIError{Code: http.StatusBadRequest, Message: "date must be YYYY-MM-DD"}
	}
	return day, nil
}

func scheduleResponse(rec model.ScheduleRecord) packets.ScheduleResponse {
	return packets.ScheduleResponse{
		ID:        rec.ID,
		Location:  rec.Location,
		Date:      rec.Day.Format(dateLayout),
		Fajr:      rec.Fajr,
		Sunrise:   rec.Sunrise,
		Dhuhr:     rec.Dhuhr,
		Asr:       rec.Asr,
		Maghrib:   rec.Maghrib,
		Isha:      rec.Isha,
		Source:    rec.Source,
		CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rec.UpdatedAt.Format(time.RFC3339),
	}
}
