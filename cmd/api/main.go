package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"io.winapps.moodjournal/internal/config"
	"io.winapps.moodjournal/internal/db"
	firebaseutil "io.winapps.moodjournal/internal/firebase"
	"io.winapps.moodjournal/internal/handlers"
	"io.winapps.moodjournal/internal/journal"
	"io.winapps.moodjournal/internal/kvstore"
	"io.winapps.moodjournal/internal/middleware"
	"io.winapps.moodjournal/internal/notifications"
	"io.winapps.moodjournal/internal/sentiment"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalw("server exited with error", "error", err)
	}
	sugar.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(cfg *config.Config, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Infow("key-value store ready", "backend", cfg.StoreBackend)

	var classifierClient *http.Client
	if cfg.Classifier.Timeout > 0 {
		classifierClient = &http.Client{Timeout: cfg.Classifier.Timeout}
	}
	if cfg.Classifier.Token == "" {
		logger.Warn("HF_TOKEN is not set; every entry will be classified neutral")
	}
	classifier := sentiment.NewHFClassifier(cfg.Classifier.APIURL, cfg.Classifier.Token, classifierClient, logger)

	entryStore := journal.NewStore(kv, logger)
	service := journal.NewService(classifier, entryStore, logger)
	tokens := notifications.NewTokenStore(kv)

	var firebaseApp *firebase.App
	if cfg.FirebaseRequired() {
		firebaseApp, err = firebaseutil.InitFirebase(ctx, cfg.Firebase)
		if err != nil {
			return err
		}
	}

	// Initialize Gin router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware(logger, "/health"))
	router.Use(middleware.CORSMiddleware())

	// Initialize handlers
	entryHandler := handlers.NewEntryHandler(service, logger)
	notificationsHandler := handlers.NewNotificationsHandler(tokens, logger)

	// Define routes
	v1 := router.Group("/api/v1")
	if cfg.AuthEnabled {
		authClient, err := firebaseutil.GetAuthClient(ctx, firebaseApp)
		if err != nil {
			return err
		}
		v1.Use(middleware.AuthMiddleware(authClient))
	}
	{
		entries := v1.Group("/entries")
		{
			entries.POST("/analyze", entryHandler.AnalyzeEntry)
			entries.GET("", entryHandler.ListEntries)
			entries.GET("/weekly-summary", entryHandler.WeeklySummary)
			entries.GET("/export", entryHandler.ExportEntries)
		}

		notificationsGroup := v1.Group("/notifications")
		{
			notificationsGroup.POST("/register-push-token", notificationsHandler.RegisterPushToken)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var scheduler *notifications.Scheduler
	if cfg.Notifications.Enabled {
		// A nil *messaging.Client must not reach the FCMClient interface
		var fcm notifications.FCMClient
		if firebaseApp != nil {
			messagingClient, err := firebaseutil.GetMessagingClient(ctx, firebaseApp)
			if err != nil {
				return err
			}
			fcm = messagingClient
		}
		notifier := notifications.NewPushNotifier(fcm, cfg.Notifications.ExpoPushURL, logger)
		scheduler, err = notifications.NewScheduler(cfg.Notifications, notifier, tokens, entryStore, logger)
		if err != nil {
			return err
		}
		scheduler.Start()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("Server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		// Give a 5 second timeout for graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if scheduler != nil {
			scheduler.Stop(shutdownCtx)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// openStore connects the configured backend and returns it with its cleanup
func openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := db.InitRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		return kvstore.NewRedis(client), func() { client.Close() }, nil
	case config.BackendPostgres:
		pool, err := db.InitPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		return kvstore.NewPostgres(pool), pool.Close, nil
	case config.BackendMemory:
		return kvstore.NewMemory(), func() {}, nil
	default:
		conn, err := db.InitSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		return kvstore.NewSQLite(conn), func() { conn.Close() }, nil
	}
}
