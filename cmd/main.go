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

	"github.com/mkalnins/volleyball-league/config"
	"github.com/mkalnins/volleyball-league/db"
	"github.com/mkalnins/volleyball-league/handlers"
	"github.com/mkalnins/volleyball-league/live"
	"github.com/mkalnins/volleyball-league/repositories"
	api "github.com/mkalnins/volleyball-league/routes"
	"github.com/mkalnins/volleyball-league/services"
	"github.com/mkalnins/volleyball-league/storage"
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
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live update hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	clubRepo := repositories.NewPostgresClubRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	rosterRepo := repositories.NewPostgresTournamentTeamRepository(dbConn)
	sponsorRepo := repositories.NewPostgresSponsorRepository(dbConn)
	transferRepo := repositories.NewPostgresTransferRepository(dbConn)
	noticeRepo := repositories.NewPostgresNoticeRepository(dbConn)
	awardRepo := repositories.NewPostgresAwardRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	clubService := services.NewClubService(clubRepo, teamRepo, uploader)
	teamService := services.NewTeamService(teamRepo, playerRepo, uploader)
	playerService := services.NewPlayerService(playerRepo, teamRepo)
	tournamentService := services.NewTournamentService(dbConn, tournamentRepo, matchRepo, teamRepo, rosterRepo, uploader)
	matchService := services.NewMatchService(dbConn, matchRepo, tournamentRepo, teamRepo, hub, logger)
	sponsorService := services.NewSponsorService(sponsorRepo, uploader)
	transferService := services.NewTransferService(dbConn, transferRepo, playerRepo, teamRepo)
	noticeService := services.NewNoticeService(noticeRepo)
	awardService := services.NewAwardService(awardRepo, playerRepo)
	csvService := services.NewCSVService(tournamentService, matchService, teamRepo)
	logger.Info("services initialized")

	h := api.Handlers{
		Auth:       handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		Club:       handlers.NewClubHandler(clubService),
		Team:       handlers.NewTeamHandler(teamService, playerService),
		Player:     handlers.NewPlayerHandler(playerService, transferService),
		Tournament: handlers.NewTournamentHandler(tournamentService, awardService),
		Match:      handlers.NewMatchHandler(matchService),
		Sponsor:    handlers.NewSponsorHandler(sponsorService),
		Transfer:   handlers.NewTransferHandler(transferService),
		Notice:     handlers.NewNoticeHandler(noticeService),
		CSV:        handlers.NewCSVHandler(csvService),
		WebSocket:  handlers.NewWebSocketHandler(hub, logger),
	}

	router := chi.NewRouter()
	api.SetupRoutes(router, h, cfg.JWTSecretKey)
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
