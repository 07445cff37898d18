package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefrontReco/app/echo-server/router"
	"storefrontReco/internal/bootstrap"
	"storefrontReco/internal/middleware"
	redisRepo "storefrontReco/internal/repository/redis"
	"storefrontReco/internal/rest"
	"storefrontReco/pkg/config"
	"storefrontReco/pkg/database"
	redisdb "storefrontReco/pkg/database/redis"
	"storefrontReco/pkg/logger"
	"storefrontReco/pkg/metrics"
	"storefrontReco/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting recommendation API", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()

	logger.Info("Database connected successfully")

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis", "error", err)
		}
	}()

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	// Init service
	recoService := bootstrap.NewRecommendationService(cfg, db, redisClient)

	// Init handler
	recoHandler := rest.NewRecommendationHandler(recoService)
	behaviorHandler := rest.NewBehaviorHandler(recoService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Metrics())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware, session checked against Redis when it is enabled
	authRequired := middleware.AuthMiddleware()
	if redisClient != nil {
		authRequired = middleware.AuthMiddlewareWithRedis(redisRepo.NewTokenRepository(redisClient))
	}
	adminOnly := middleware.AdminOnly()

	// Setup routes
	router.SetOpsRoutes(e)
	api := e.Group("/api/v1")
	router.SetRecommendationRoutes(api, recoHandler, authRequired)
	router.SetBehaviorRoutes(api, behaviorHandler, authRequired)
	router.SetAdminRecommendationRoutes(api, recoHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
