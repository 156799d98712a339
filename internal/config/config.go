// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

// Package config loads and validates service configuration from defaults,
// an optional YAML file, and environment variables, in that order of
// priority.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the recommender service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Data      DataConfig      `koanf:"data"`
	Recommend RecommendConfig `koanf:"recommend"`
	Export    ExportConfig    `koanf:"export"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DataConfig holds dataset and interaction log locations.
type DataConfig struct {
	// DatasetPath is the base interaction dataset (CSV). The service
	// refuses to start when this file is missing.
	DatasetPath string `koanf:"dataset_path"`
	// EventLogDir is the directory for the durable interaction log.
	EventLogDir string `koanf:"event_log_dir"`
}

// RecommendConfig holds model training and serving settings.
type RecommendConfig struct {
	Factors        int           `koanf:"factors"`
	Iterations     int           `koanf:"iterations"`
	Regularization float64       `koanf:"regularization"`
	Alpha          float64       `koanf:"alpha"`
	Seed           int64         `koanf:"seed"`
	NumWorkers     int           `koanf:"num_workers"`
	DefaultN       int           `koanf:"default_n"`
	MaxN           int           `koanf:"max_n"`
	TrainOnStartup bool          `koanf:"train_on_startup"`
	RetrainEvery   time.Duration `koanf:"retrain_every"`
}

// ExportConfig holds settings for the offline catalog export tool.
type ExportConfig struct {
	TopK       int    `koanf:"top_k"`
	OutputPath string `koanf:"output_path"`
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Data.DatasetPath == "" {
		return fmt.Errorf("data.dataset_path must not be empty")
	}
	if c.Data.EventLogDir == "" {
		return fmt.Errorf("data.event_log_dir must not be empty")
	}
	if c.Recommend.Factors < 1 {
		return fmt.Errorf("recommend.factors must be positive, got %d", c.Recommend.Factors)
	}
	if c.Recommend.Iterations < 1 {
		return fmt.Errorf("recommend.iterations must be positive, got %d", c.Recommend.Iterations)
	}
	if c.Recommend.Regularization < 0 {
		return fmt.Errorf("recommend.regularization must not be negative, got %f", c.Recommend.Regularization)
	}
	if c.Recommend.Alpha <= 0 {
		return fmt.Errorf("recommend.alpha must be positive, got %f", c.Recommend.Alpha)
	}
	if c.Recommend.DefaultN < 1 {
		return fmt.Errorf("recommend.default_n must be positive, got %d", c.Recommend.DefaultN)
	}
	if c.Recommend.MaxN < c.Recommend.DefaultN {
		return fmt.Errorf("recommend.max_n (%d) must not be smaller than recommend.default_n (%d)",
			c.Recommend.MaxN, c.Recommend.DefaultN)
	}
	if c.Export.TopK < 1 {
		return fmt.Errorf("export.top_k must be positive, got %d", c.Export.TopK)
	}
	return nil
}
