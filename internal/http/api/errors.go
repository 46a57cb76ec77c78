package api

import (
	"errors"
	"net/http"

	"github.com/Nixie-Tech-LLC/athan/internal/aladhan"
	"github.com/Nixie-Tech-LLC/athan/internal/db"
	"github.com/Nixie-Tech-LLC/athan/internal/prayer"
	"github.com/Nixie-Tech-LLC/athan/internal/timetable"
)

func BadRequest(msg string) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: msg}
}

// ErrorFrom maps domain errors onto HTTP status codes.
func ErrorFrom(err error) *APIError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, prayer.ErrMalformedTime),
		errors.Is(err, prayer.ErrInvalidSchedule),
		errors.Is(err, prayer.ErrUnknownPrayer),
		errors.Is(err, timetable.ErrLocationNeeded):
		return &APIError{Code: http.StatusBadRequest, Message: err.Error()}
	case errors.Is(err, timetable.ErrNoSchedule),
		errors.Is(err, db.ErrScheduleNotFound):
		return &APIError{Code: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, aladhan.ErrUpstream):
		return &APIError{Code: http.StatusBadGateway, Message: "failed to get prayer times"}
	case errors.Is(err, timetable.ErrCorruptSchedule):
		return &APIError{Code: http.StatusInternalServerError, Message: "stored prayer schedule is invalid"}
	case errors.Is(err, timetable.ErrStoreDisabled):
		return &APIError{Code: http.StatusServiceUnavailable, Message: err.Error()}
	default:
		return &APIError{Code: http.StatusInternalServerError, Message: "internal error"}
	}
}
