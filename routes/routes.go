package routes

import (
	"time"

	"pitchside/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers wired in main.
type HandlerBundle struct {
	Availability *handlers.AvailabilityHandler
	Sessions     *handlers.SessionHandler
	Coaches      *handlers.CoachHandler
}

// RegisterSchedulingRoutes registers the availability endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *HandlerBundle) {
	scheduling := r.Group("/api/scheduling")
	{
		scheduling.GET("/availability", hb.Availability.GetAvailabilityHandler)
	}
}

// RegisterSessionRoutes registers booking, reschedule, attendance and reads.
func RegisterSessionRoutes(r *gin.Engine, hb *HandlerBundle) {
	sessions := r.Group("/api/sessions")
	{
		sessions.POST("/direct-booking", hb.Sessions.DirectBookingHandler)
		sessions.PUT("/reschedule", hb.Sessions.RescheduleHandler)
		sessions.PUT("/:id/attendance", hb.Sessions.AttendanceHandler)
		sessions.PUT("/:id/cancel", hb.Sessions.CancelHandler)
		sessions.GET("/:id", hb.Sessions.GetSessionHandler)
		sessions.GET("", hb.Sessions.ListSessionsHandler)
	}
}

// RegisterCoachRoutes registers availability-rule administration.
func RegisterCoachRoutes(r *gin.Engine, hb *HandlerBundle) {
	coaches := r.Group("/api/coaches")
	{
		coaches.GET("/:id/availability", hb.Coaches.GetAvailabilityRulesHandler)
		coaches.PUT("/:id/availability", hb.Coaches.ReplaceAvailabilityRulesHandler)
	}
}

// RegisterHealthRoute exposes the health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/api/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-User-ID", "X-Coach-ID", "X-Admin-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSchedulingRoutes(r, hb)
	RegisterSessionRoutes(r, hb)
	RegisterCoachRoutes(r, hb)
	RegisterHealthRoute(r)
}
