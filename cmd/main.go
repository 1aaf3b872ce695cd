package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/gridironlabs/playoff-system/config"
	"github.com/gridironlabs/playoff-system/db"
	"github.com/gridironlabs/playoff-system/handlers"
	"github.com/gridironlabs/playoff-system/playoffs"
	"github.com/gridironlabs/playoff-system/repositories"
	api "github.com/gridironlabs/playoff-system/routes"
	"github.com/gridironlabs/playoff-system/services"
	"github.com/gridironlabs/playoff-system/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	var uploader storage.FileUploader
	if cfg.R2Enabled() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 configuration absent, season archival disabled")
	}

	wsHub := playoffs.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	eventRepo := repositories.NewPostgresEventRepository(dbConn)
	standingRepo := repositories.NewPostgresStandingRepository(dbConn)
	seedingRepo := repositories.NewPostgresSeedingRepository(dbConn)
	dynastyRepo := repositories.NewPostgresDynastyRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(dynastyRepo)
	seedingService := services.NewSeedingService(standingRepo, seedingRepo, eventRepo, wsHub)
	stateService := services.NewStateService(eventRepo, seedingRepo, wsHub)
	schedulerService := services.NewSchedulerService(eventRepo)
	simulator := services.NewSeededSimulator(cfg.SimulatorSeed)

	var archiveService services.ArchiveService
	if uploader != nil {
		archiveService = services.NewArchiveService(stateService, uploader)
	}

	orchestrator := services.NewOrchestratorService(
		dynastyRepo,
		eventRepo,
		seedingService,
		stateService,
		schedulerService,
		archiveService,
		simulator,
		wsHub,
		logger,
	)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	seedingHandler := handlers.NewSeedingHandler(seedingService)
	playoffHandler := handlers.NewPlayoffHandler(orchestrator, stateService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		seedingHandler,
		playoffHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
