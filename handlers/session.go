package handlers

import (
	"net/http"

	"pitchside/services/booking"
	"pitchside/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler serves booking, reschedule, cancellation and session reads.
// Caller identity arrives in X-User-ID / X-Coach-ID headers set by the
// upstream gateway; authentication itself is not this service's concern.
type SessionHandler struct {
	Service booking.SessionService
	Logger  *zap.Logger
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(service booking.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Service: service, Logger: logger}
}

// DirectBookingHandler books a session against the caller's enrollment.
func (h *SessionHandler) DirectBookingHandler(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing X-User-ID header", "")
		return
	}

	var req booking.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.Service.CreateDirectSession(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "session": session})
}

// RescheduleHandler moves a session to a new date/time/slot.
func (h *SessionHandler) RescheduleHandler(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing X-User-ID header", "")
		return
	}

	var req booking.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.Service.RescheduleSession(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

// AttendanceHandler marks one participant's attendance on a session.
func (h *SessionHandler) AttendanceHandler(c *gin.Context) {
	coachID := c.GetHeader("X-Coach-ID")
	admin := c.GetHeader("X-Admin-Role") == "admin"
	if coachID == "" && !admin {
		utils.JSONError(c, http.StatusBadRequest, "missing X-Coach-ID header", "")
		return
	}

	var req struct {
		ParticipantID string `json:"participantId" binding:"required"`
		Attended      *bool  `json:"attended" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	session, err := h.Service.MarkAttendance(c.Request.Context(), c.Param("id"), req.ParticipantID, *req.Attended, coachID, admin)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": gin.H{
			"id":            session.ID,
			"scheduledDate": session.ScheduledDate,
			"status":        session.Status,
			"participants":  session.Participants,
		},
	})
}

// CancelHandler cancels a session, freeing its ground slot.
func (h *SessionHandler) CancelHandler(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing X-User-ID header", "")
		return
	}

	session, err := h.Service.CancelSession(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

// GetSessionHandler retrieves one session.
func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	session, err := h.Service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

// ListSessionsHandler lists sessions for an enrollment, or for a coach on a
// date (manager tooling surface).
func (h *SessionHandler) ListSessionsHandler(c *gin.Context) {
	if enrollmentID := c.Query("enrollmentId"); enrollmentID != "" {
		sessions, err := h.Service.ListEnrollmentSessions(c.Request.Context(), enrollmentID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "sessions": sessions})
		return
	}

	coachID := c.Query("coachId")
	date := c.Query("date")
	if coachID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "enrollmentId, or coachId and date, are required", "")
		return
	}
	sessions, err := h.Service.ListCoachSessions(c.Request.Context(), coachID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "sessions": sessions})
}
