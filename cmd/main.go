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

	_ "github.com/lib/pq"

	"github.com/chathuri2/CrickInfo/config"
	"github.com/chathuri2/CrickInfo/db"
	"github.com/chathuri2/CrickInfo/handlers"
	"github.com/chathuri2/CrickInfo/repositories"
	"github.com/chathuri2/CrickInfo/routes"
	"github.com/chathuri2/CrickInfo/services"
	"github.com/chathuri2/CrickInfo/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

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

	// Photo storage is optional, the catalog works without it.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
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
		logger.Warn("Cloudflare R2 not configured, player photo uploads disabled")
	}

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	statsRepo := repositories.NewPostgresPlayerStatisticsRepository(dbConn)
	squadRepo := repositories.NewPostgresSquadRepository(dbConn)
	conditionsRepo := repositories.NewPostgresMatchConditionsRepository(dbConn)
	suggestionRepo := repositories.NewPostgresSuggestionRepository(dbConn)
	logger.Info("repositories initialized")

	var emailService services.EmailService
	if cfg.SMTPConfigured() {
		emailService = services.NewEmailService(cfg)
		logger.Info("SMTP email service initialized")
	} else {
		logger.Warn("SMTP not configured, outgoing email disabled")
	}

	authService := services.NewAuthService(userRepo, emailService)
	playerService := services.NewPlayerService(playerRepo, statsRepo, uploader)
	squadService := services.NewSquadService(squadRepo, playerRepo)
	analysisService := services.NewAnalysisService(squadRepo, playerRepo, statsRepo, conditionsRepo, suggestionRepo)
	adminService := services.NewAdminService(dbConn, userRepo, playerRepo, statsRepo, squadRepo)
	logger.Info("services initialized")

	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Player:   handlers.NewPlayerHandler(playerService),
		Squad:    handlers.NewSquadHandler(squadService),
		Analysis: handlers.NewAnalysisHandler(analysisService, playerService),
		Admin:    handlers.NewAdminHandler(adminService),
	}

	router := routes.SetupRoutes(cfg, h)
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

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
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
