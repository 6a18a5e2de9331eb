package handlers

import (
	"errors"
	"net/http"

	"pitchside/services/booking"
	"pitchside/services/scheduling"
	"pitchside/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses and
// the {success:false, message, ...details} response shape.
func respondServiceError(c *gin.Context, err error) {
	var svcErr *booking.ServiceError
	if errors.As(err, &svcErr) {
		status := http.StatusInternalServerError
		switch svcErr.Code {
		case booking.CodeNotFound:
			status = http.StatusNotFound
		case booking.CodeForbidden:
			status = http.StatusForbidden
		case booking.CodeValidation:
			status = http.StatusBadRequest
		case booking.CodeConflict:
			status = http.StatusConflict
		}
		body := gin.H{"success": false, "message": svcErr.Message}
		for k, v := range svcErr.Details {
			body[k] = v
		}
		c.JSON(status, body)
		return
	}

	var valErr *scheduling.ValidationError
	if errors.As(err, &valErr) {
		body := gin.H{"success": false, "message": valErr.Message}
		for k, v := range valErr.Details {
			body[k] = v
		}
		c.JSON(http.StatusBadRequest, body)
		return
	}

	if errors.Is(err, scheduling.ErrCoachNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "coach not found"})
		return
	}

	utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
}
