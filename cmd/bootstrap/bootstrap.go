package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-slot-backend/config"
	deliveryHttp "parking-slot-backend/internal/delivery/http"
	"parking-slot-backend/internal/delivery/http/handler"
	"parking-slot-backend/internal/delivery/http/middleware"
	"parking-slot-backend/internal/infrastructure/cache"
	"parking-slot-backend/internal/infrastructure/database"
	"parking-slot-backend/internal/infrastructure/storage"
	"parking-slot-backend/internal/repository"
	"parking-slot-backend/internal/service"
	"parking-slot-backend/internal/usecase"
	"parking-slot-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := database.SeedSlots(db, cfg.Parking.SlotCount); err != nil {
		return nil, fmt.Errorf("failed to seed parking slots: %w", err)
	}

	// Initialize Redis when configured; the slot board cache degrades to
	// plain database reads without it
	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
	} else {
		logrus.Info("Redis not configured, slot board cache disabled")
	}

	// Initialize all layers
	server, err := initializeServer(cfg, db, app.RedisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize image storage
	imageStorage, err := storage.NewLocalImageStorage(cfg.Upload.Dir)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	slotRepo := repository.NewSlotRepository()
	bookingRepo := repository.NewBookingRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize slot board cache (nil-safe when Redis is absent)
	var slotCache *service.SlotCacheService
	if redisClient != nil {
		slotCache = service.NewSlotCacheService(redisClient, log)
	}

	// Initialize usecases
	slotUsecase := usecase.NewSlotUsecase(db, log, slotRepo, slotCache)
	bookingUsecase := usecase.NewBookingUsecase(db, log, bookingRepo, slotRepo, imageStorage, slotCache)

	// Initialize handlers
	slotHandler := handler.NewSlotHandler(slotUsecase)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, customValidator, cfg.Upload.MaxBytes)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(slotHandler, bookingHandler, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
