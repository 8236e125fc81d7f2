package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/resource-dashboard/backend/internal/config"
	"github.com/resource-dashboard/backend/internal/db"
	httpapi "github.com/resource-dashboard/backend/internal/http"
	"github.com/resource-dashboard/backend/internal/http/handlers"
	"github.com/resource-dashboard/backend/internal/seed"
	"github.com/resource-dashboard/backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", "resource-dashboard").Str("env", cfg.Env).Logger()

	ctx := context.Background()
	var (
		dataset seed.Dataset
		seedDB  handlers.Pinger
	)
	if cfg.DatabaseURL != "" {
		pg, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		defer pg.Close()
		loadCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		dataset, err = pg.LoadDataset(loadCtx)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load dataset from db")
		}
		seedDB = pg
		logger.Info().Msg("dataset loaded from database")
	} else {
		dataset, err = seed.Load(cfg.SeedFile)
		if err != nil {
			logger.Fatal().Err(err).Str("seed_file", cfg.SeedFile).Msg("failed to load seed")
		}
	}
	for _, problem := range seed.Check(dataset, validator.New()) {
		logger.Warn().Str("problem", problem).Msg("invalid seed record")
	}
	logger.Info().
		Int("resources", len(dataset.Resources)).
		Int("issues", len(dataset.Issues)).
		Msg("dataset ready")

	st := store.New(dataset.Resources, dataset.Issues, logger)
	router := httpapi.Router(cfg, st, seedDB, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
