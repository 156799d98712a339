// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

// Package main is the entry point for the recommender server.
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, YAML file, environment (Koanf v2)
//  2. Dataset check: the base interaction CSV must exist, or startup fails
//  3. Event log: BadgerDB-backed durable interaction log
//  4. Engine: matrix builder, ALS factorizer, model snapshot holder
//  5. Initial training (optional, RECOMMEND_TRAIN_ON_STARTUP)
//  6. HTTP server and retrain scheduler under a suture supervisor tree
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults. See internal/config for the full key list.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests, and closes the
// event log before exiting.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopstream/recommender/internal/api"
	"github.com/shopstream/recommender/internal/config"
	"github.com/shopstream/recommender/internal/dataset"
	"github.com/shopstream/recommender/internal/eventlog"
	"github.com/shopstream/recommender/internal/logging"
	"github.com/shopstream/recommender/internal/recommend"
	"github.com/shopstream/recommender/internal/recommend/algorithms"
	"github.com/shopstream/recommender/internal/supervisor"
	"github.com/shopstream/recommender/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet, use the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("dataset", cfg.Data.DatasetPath).
		Str("event_log", cfg.Data.EventLogDir).
		Int("factors", cfg.Recommend.Factors).
		Msg("Starting recommender")

	// The base dataset is a hard requirement. Refusing to start beats
	// serving cold-start responses to every user.
	source := dataset.NewCSVSource(cfg.Data.DatasetPath, logging.Logger())
	if err := source.Check(); err != nil {
		logging.Fatal().Err(err).Msg("Base dataset unavailable")
	}

	store, err := eventlog.Open(cfg.Data.EventLogDir, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open interaction log")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing interaction log")
		}
	}()
	if logged, err := store.Count(); err == nil {
		logging.Info().Int("logged_events", logged).Msg("Interaction log opened")
	}

	builder := recommend.NewMatrixBuilder(source, store, logging.Logger())
	trainer := algorithms.NewALS(algorithms.ALSConfig{
		NumFactors:     cfg.Recommend.Factors,
		NumIterations:  cfg.Recommend.Iterations,
		Regularization: cfg.Recommend.Regularization,
		Alpha:          cfg.Recommend.Alpha,
		Seed:           cfg.Recommend.Seed,
		NumWorkers:     cfg.Recommend.NumWorkers,
	})
	engine := recommend.NewEngine(recommend.EngineConfig{
		DefaultN: cfg.Recommend.DefaultN,
		MaxN:     cfg.Recommend.MaxN,
	}, builder, trainer, store, logging.Logger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Recommend.TrainOnStartup {
		logging.Info().Msg("Training initial model")
		elapsed, err := engine.Retrain(ctx)
		if err != nil {
			logging.Fatal().Err(err).Msg("Initial training failed")
		}
		logging.Info().Dur("duration", elapsed).Msg("Initial model published")
	}

	router := api.NewRouter(engine, api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// zerolog bridged to slog for sutureslog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	if cfg.Recommend.RetrainEvery > 0 {
		tree.AddTrainingService(services.NewRetrainService(engine, services.RetrainServiceConfig{
			Interval: cfg.Recommend.RetrainEvery,
		}, logging.Logger()))
		logging.Info().Dur("interval", cfg.Recommend.RetrainEvery).Msg("Retrain scheduler enabled")
	} else {
		logging.Info().Msg("Periodic retraining disabled, retrains are manual only")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Recommender stopped gracefully")
}
