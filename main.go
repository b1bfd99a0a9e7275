package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"Reelrank/config"
	"Reelrank/database"
	"Reelrank/handlers"
	"Reelrank/logger"
	"Reelrank/server"
	"Reelrank/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	logger.Init(cfg.Server.Environment, cfg.Server.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.Connect(ctx, &cfg.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	store := services.NewMovieStore(db)
	if n, err := store.Count(ctx); err == nil {
		logger.Info().Int("movies", n).Msg("Database ready")
	}

	tmdb := services.NewTMDBClient(cfg.TMDB)
	sessions := services.NewSessionStore(&cfg.Server)

	h, err := handlers.New(store, tmdb, sessions, cfg.TMDB.ImageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	srvCfg := server.DefaultConfig(":" + strconv.Itoa(cfg.Server.Port))
	srv := server.CreateServer(srvCfg, h.Routes())

	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("environment", cfg.Server.Environment).
			Bool("debug", cfg.Server.Debug).
			Msg("Reelrank is starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
