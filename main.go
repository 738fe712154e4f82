package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/acadboost/academic-service/internal/ai"
	"github.com/acadboost/academic-service/internal/config"
	"github.com/acadboost/academic-service/internal/events"
	"github.com/acadboost/academic-service/internal/handlers"
	"github.com/acadboost/academic-service/internal/repositories/postgres"
	"github.com/acadboost/academic-service/internal/services"
	"github.com/acadboost/academic-service/internal/sessions"
	"github.com/acadboost/academic-service/internal/storage"
	"github.com/acadboost/academic-service/internal/utils"
	"github.com/acadboost/academic-service/internal/validator"
	"github.com/acadboost/academic-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize database
	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Initialize repositories
	repoManager := postgres.NewRepositoryManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	if err := repoManager.Initialize(); err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	// Session store: Redis when available, in-process otherwise.
	var sessionStore sessions.Store
	if redisClient != nil {
		sessionStore = sessions.NewRedisStore(redisClient, cfg.SessionTTL)
	} else {
		sessionStore = sessions.NewMemoryStore(cfg.SessionTTL)
		slogLogger.Warn("Redis not configured, sessions are held in memory")
	}

	// Event bus plus the audit subscriber that logs every domain event.
	publisher := events.NewWatermillPublisher(slogLogger)
	auditCtx, auditCancel := context.WithCancel(context.Background())
	defer auditCancel()
	go func() {
		if err := events.RunAuditSubscriber(auditCtx, publisher, slogLogger); err != nil {
			slogLogger.Error("Audit subscriber stopped", "error", err)
		}
	}()

	// Generative-text adapter and file storage
	generator := ai.NewClient(cfg.GenAI, slogLogger)
	fileStore, err := storage.NewStore(cfg.UploadDir, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Initialize services
	businessValidator := validator.NewBusinessValidator()
	serviceManager := services.NewServiceManager(
		repoManager.GetRepository(),
		slogLogger,
		businessValidator,
		sessionStore,
		publisher,
		generator,
		fileStore,
		services.ServiceManagerConfig{
			CertificateAutoVerify: cfg.CertificateAutoVerify,
		},
	)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Shutdown services (closes the event bus and the database)
	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
