// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstream/recommender/internal/recommend"
)

// Retrainer is the slice of the engine the scheduler needs.
type Retrainer interface {
	Retrain(ctx context.Context) (time.Duration, error)
}

// RetrainServiceConfig holds the scheduler's knobs.
type RetrainServiceConfig struct {
	// Interval between scheduled retrains. Must be positive; the
	// service is only added to the tree when scheduling is enabled.
	Interval time.Duration

	// Timeout bounds a single retrain cycle.
	Timeout time.Duration
}

// RetrainService retrains the model on a fixed schedule. A tick that
// lands while a manually triggered retrain is still running is skipped,
// not queued.
type RetrainService struct {
	engine Retrainer
	config RetrainServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRetrainService creates the periodic retrain scheduler.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRetrainService(engine Retrainer, cfg RetrainServiceConfig, logger zerolog.Logger) *RetrainService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Minute
	}
	return &RetrainService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "retrain").Logger(),
		name:   "retrain-scheduler",
	}
}

// Serve implements suture.Service.
func (s *RetrainService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Msg("retrain scheduler starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("retrain scheduler shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *RetrainService) runOnce(ctx context.Context) {
	retrainCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	elapsed, err := s.engine.Retrain(retrainCtx)
	switch {
	case errors.Is(err, recommend.ErrRetrainInProgress):
		s.logger.Debug().Msg("retrain already running, skipping scheduled cycle")
	case err != nil:
		s.logger.Warn().Err(err).Msg("scheduled retrain failed")
	default:
		s.logger.Info().Dur("duration", elapsed).Msg("scheduled retrain complete")
	}
}

// String identifies the service in supervisor logs.
func (s *RetrainService) String() string {
	return s.name
}
