package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"secure-sense/internal/adapter"
	"secure-sense/internal/cache"
	"secure-sense/internal/config"
	"secure-sense/internal/database"
	"secure-sense/internal/domain"
	"secure-sense/internal/handler"
	"secure-sense/internal/logger"
	"secure-sense/internal/middleware"
	"secure-sense/internal/repository"
	"secure-sense/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXSQLiteDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.RunMigrations(db, cfg.DB.MigrationsDir); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	appLogger.Info("Database ready", zap.String("path", cfg.DB.Path))

	// Initialize repositories
	eventRepository := repository.NewSQLXEventRepository(db)
	quizSessionRepository := repository.NewSQLXQuizSessionRepository(db)
	threatRepository := repository.NewSQLXThreatRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Redis is optional: without it the recent-activity feed degrades to a no-op.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		appLogger.Info("Successfully connected to Redis")
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
	} else {
		appLogger.Warn("Redis address not configured; recent-activity feed disabled")
	}

	// Initialize services
	recentActivityService := service.NewRecentActivityService(cacheAdapter)
	analyticsService := service.NewAnalyticsService(eventRepository, quizSessionRepository, recentActivityService)
	quizResultService := service.NewQuizResultService(quizSessionRepository)
	threatService := service.NewThreatService(threatRepository, txManager)

	// Initialize handlers
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	quizHandler := handler.NewQuizHandler(quizResultService)
	threatHandler := handler.NewThreatHandler(threatService)
	healthHandler := handler.NewHealthHandler(db, cacheAdapter)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", healthHandler.Check)

	// API group
	apiGroup := app.Group("/api")

	analyticsGroup := apiGroup.Group("/analytics")
	analyticsGroup.Post("/track", analyticsHandler.TrackEvent)
	analyticsGroup.Get("/stats", analyticsHandler.GetStats)
	analyticsGroup.Get("/recent", analyticsHandler.GetRecentEvents)

	apiGroup.Post("/quiz/complete", quizHandler.CompleteQuiz)

	threatsGroup := apiGroup.Group("/threats")
	threatsGroup.Post("/track", threatHandler.TrackThreats)
	threatsGroup.Post("/remove", threatHandler.RemoveThreats)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Error("Failed to close database", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
