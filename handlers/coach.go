package handlers

import (
	"net/http"

	coachRepo "pitchside/database/repository/coach"
	"pitchside/models"
	"pitchside/services/scheduling"
	"pitchside/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var weekdayNames = map[string]bool{
	"Sunday": true, "Monday": true, "Tuesday": true, "Wednesday": true,
	"Thursday": true, "Friday": true, "Saturday": true,
}

// CoachHandler serves coach availability-rule administration.
type CoachHandler struct {
	Coaches  coachRepo.CoachRepository
	Resolver scheduling.AvailabilityResolver
	Logger   *zap.Logger
}

// NewCoachHandler constructs a CoachHandler.
func NewCoachHandler(coaches coachRepo.CoachRepository, resolver scheduling.AvailabilityResolver, logger *zap.Logger) *CoachHandler {
	return &CoachHandler{Coaches: coaches, Resolver: resolver, Logger: logger}
}

// GetAvailabilityRulesHandler returns a coach's weekly availability rules.
func (h *CoachHandler) GetAvailabilityRulesHandler(c *gin.Context) {
	coach, err := h.Coaches.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch coach", err.Error())
		return
	}
	if coach == nil {
		utils.JSONError(c, http.StatusNotFound, "coach not found", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "availability": coach.Availability})
}

// ReplaceAvailabilityRulesHandler swaps a coach's full weekly rule set and
// drops their cached availability.
func (h *CoachHandler) ReplaceAvailabilityRulesHandler(c *gin.Context) {
	coachID := c.Param("id")

	var req struct {
		Availability []models.AvailabilityRule `json:"availability" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	for _, rule := range req.Availability {
		if !weekdayNames[rule.DayOfWeek] {
			utils.JSONError(c, http.StatusBadRequest, "invalid dayOfWeek: "+rule.DayOfWeek, "")
			return
		}
		start, err := utils.ParseClock(rule.StartTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		end, err := utils.ParseClock(rule.EndTime)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		if start >= end {
			utils.JSONError(c, http.StatusBadRequest, "rule startTime must be before endTime", "")
			return
		}
	}

	if err := h.Coaches.ReplaceAvailability(c.Request.Context(), coachID, req.Availability); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update availability", err.Error())
		return
	}
	h.Resolver.InvalidateCoach(c.Request.Context(), coachID)

	h.Logger.Info("coach availability replaced",
		zap.String("coachId", coachID), zap.Int("rules", len(req.Availability)))
	c.JSON(http.StatusOK, gin.H{"success": true, "availability": req.Availability})
}
