package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pitchside/config"
	"pitchside/cron"
	"pitchside/database"
	coachRepo "pitchside/database/repository/coach"
	enrollmentRepo "pitchside/database/repository/enrollment"
	groundRepo "pitchside/database/repository/ground"
	programRepo "pitchside/database/repository/program"
	sessionRepo "pitchside/database/repository/session"
	"pitchside/handlers"
	"pitchside/middleware"
	"pitchside/routes"
	"pitchside/services/booking"
	"pitchside/services/notification"
	"pitchside/services/scheduling"
	"pitchside/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	sessions := sessionRepo.NewMongoSessionRepo()
	coaches := coachRepo.NewMongoCoachRepo()
	enrollments := enrollmentRepo.NewMongoEnrollmentRepo()
	programs := programRepo.NewMongoProgramRepo()
	grounds := groundRepo.NewMongoGroundRepo()

	ctx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := sessions.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to create session indexes: %v", err)
	}
	cancelIndexes()

	// task queue client for notifications and reminders.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	defer asynqClient.Close()

	notifier, err := notification.NewAsynqNotificationService(asynqClient, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	cron.InitNotificationWorker(logger)

	// services.
	resolver := &scheduling.DefaultAvailabilityResolver{
		Coaches:                coaches,
		Sessions:               sessions,
		Cache:                  utils.GetCacheClient(),
		DefaultDurationMinutes: config.AppConfig.DefaultSlotMinutes,
	}

	sessionService := &booking.DefaultSessionService{
		Sessions:    sessions,
		Enrollments: enrollments,
		Programs:    programs,
		Coaches:     coaches,
		Grounds:     grounds,
		Resolver:    resolver,
		Notifier:    notifier,
		Logger:      logger,
		Policy: booking.Policy{
			RescheduleLeadTime:    time.Duration(config.AppConfig.RescheduleLeadHours) * time.Hour,
			RescheduleWindowDays:  config.AppConfig.RescheduleWindowDays,
			DefaultSlotMinutes:    config.AppConfig.DefaultSlotMinutes,
			AllowFutureAttendance: config.AppConfig.AllowFutureAttendance,
		},
	}

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(resolver, logger),
		Sessions:     handlers.NewSessionHandler(sessionService, logger),
		Coaches:      handlers.NewCoachHandler(coaches, resolver, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
