package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lounge-floor/services"
	"github.com/yeremiapane/lounge-floor/utils"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

// ErrSlotTaken -> pesan user-facing untuk booking yang kalah race
var ErrSlotTaken = &CustomError{"Table is no longer available, please choose another"}

// respondServiceError -> petakan error sentinel service ke HTTP status
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrSlotConflict):
		utils.RespondError(c, http.StatusConflict, ErrSlotTaken)
	case errors.Is(err, services.ErrCancelTooLate):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrUnavailable), errors.Is(err, services.ErrUpstream):
		// Transien; caller boleh retry
		utils.RespondError(c, http.StatusServiceUnavailable, err)
	default:
		utils.RespondError(c, http.StatusBadRequest, err)
	}
}
