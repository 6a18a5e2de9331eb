package handlers

import (
	"net/http"
	"strconv"

	"pitchside/services/scheduling"
	"pitchside/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves coach availability queries.
type AvailabilityHandler struct {
	Resolver scheduling.AvailabilityResolver
	Logger   *zap.Logger
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(resolver scheduling.AvailabilityResolver, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Resolver: resolver, Logger: logger}
}

// GetAvailabilityHandler resolves open windows for a coach on a date.
// Optional enrollment context (enrollmentDate, programDuration in weeks,
// sessionNumber) turns on booking-window validation.
func (h *AvailabilityHandler) GetAvailabilityHandler(c *gin.Context) {
	coachID := c.Query("coachId")
	date := c.Query("date")
	if coachID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "coachId and date are required", "")
		return
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "duration must be a positive integer", "")
			return
		}
		duration = parsed
	}

	var opts *scheduling.ResolveOptions
	if raw := c.Query("enrollmentDate"); raw != "" {
		enrollmentDate, err := utils.ParseDate(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		opts = &scheduling.ResolveOptions{EnrollmentDate: enrollmentDate}
		if weeks := c.Query("programDuration"); weeks != "" {
			if opts.ProgramWeeks, err = strconv.Atoi(weeks); err != nil {
				utils.JSONError(c, http.StatusBadRequest, "programDuration must be an integer (weeks)", "")
				return
			}
		}
		if sn := c.Query("sessionNumber"); sn != "" {
			if opts.SessionNumber, err = strconv.Atoi(sn); err != nil {
				utils.JSONError(c, http.StatusBadRequest, "sessionNumber must be an integer", "")
				return
			}
		}
		if perWeek := c.Query("sessionsPerWeek"); perWeek != "" {
			if opts.SessionsPerWeek, err = strconv.Atoi(perWeek); err != nil {
				utils.JSONError(c, http.StatusBadRequest, "sessionsPerWeek must be an integer", "")
				return
			}
		}
	}

	windows, err := h.Resolver.ResolveAvailability(c.Request.Context(), coachID, date, duration, opts)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	general, err := h.Resolver.GeneralAvailability(c.Request.Context(), coachID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"availableSlots":      windows,
		"generalAvailability": general,
	})
}
