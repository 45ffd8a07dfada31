package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"staffboard/internal/handler"
	"staffboard/internal/hub"
	"staffboard/internal/middleware"
	"staffboard/internal/store"
	"staffboard/pkg/config"
	"staffboard/pkg/database"
	"staffboard/pkg/jwtutil"
	"staffboard/pkg/logger"
	"staffboard/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	if err := logger.InitLogger(cfg); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	log.Info("Starting staffboard service...", zap.String("environment", cfg.Server.Env))

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize JWT utility
	jwtutil.Initialize(&cfg.JWT)
	log.Info("JWT utility initialized")

	// Roster store and broadcast hub
	roster := store.New(database.GetDB())
	stateHub := hub.New(roster, log)
	go stateHub.Run()
	handler.Init(roster, stateHub)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware())
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/login", handler.Login)
	auth.POST("/worker-login", handler.WorkerLogin)

	// Public directory listings for the self-service login picker
	e.GET("/api/workers-list", handler.ListWorkersPublic)
	e.GET("/api/areas-list", handler.ListAreasPublic)

	// API routes - all require authentication (read tier)
	api := e.Group("/api")
	api.Use(middleware.AuthMiddleware)
	api.GET("/state", handler.State)
	api.GET("/me", handler.Me)
	api.GET("/verify-token", handler.VerifyToken)
	api.GET("/ws", handler.PushChannel)

	// Self-service routes - worker token bound to one worker id
	self := api.Group("/self")
	self.Use(middleware.RequireWorker)
	self.PUT("/status", handler.SelfSetStatus)
	self.PUT("/area", handler.SelfAssign)

	// Admin routes - write tier
	admin := api.Group("")
	admin.Use(middleware.RequireAdmin)

	admin.POST("/workers", handler.CreateWorker)
	admin.PUT("/workers/:id", handler.UpdateWorker)
	admin.DELETE("/workers/:id", handler.DeleteWorker)

	admin.POST("/areas", handler.CreateArea)
	admin.PUT("/areas/:id", handler.UpdateArea)
	admin.PUT("/areas/:id/auto-assign", handler.SetAreaAutoAssign)
	admin.DELETE("/areas/:id", handler.DeleteArea)

	admin.POST("/assign", handler.Assign)
	admin.POST("/status", handler.SetStatus)
	admin.POST("/distribute", handler.Distribute)
	admin.POST("/reset", handler.Reset)

	admin.POST("/teams", handler.CreateTeam)
	admin.DELETE("/teams/:id", handler.DeleteTeam)
	admin.POST("/assign-team", handler.AssignTeam)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}
