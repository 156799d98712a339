// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got: %v", err)
	}
	if cfg.Recommend.Factors != 32 {
		t.Errorf("default factors = %d, want 32", cfg.Recommend.Factors)
	}
	if cfg.Recommend.Alpha != 10.0 {
		t.Errorf("default alpha = %f, want 10.0", cfg.Recommend.Alpha)
	}
	if cfg.Recommend.Seed != 42 {
		t.Errorf("default seed = %d, want 42", cfg.Recommend.Seed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults pass",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "zero port rejected",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "empty dataset path rejected",
			mutate:  func(c *Config) { c.Data.DatasetPath = "" },
			wantErr: true,
		},
		{
			name:    "zero factors rejected",
			mutate:  func(c *Config) { c.Recommend.Factors = 0 },
			wantErr: true,
		},
		{
			name:    "negative regularization rejected",
			mutate:  func(c *Config) { c.Recommend.Regularization = -0.1 },
			wantErr: true,
		},
		{
			name:    "zero alpha rejected",
			mutate:  func(c *Config) { c.Recommend.Alpha = 0 },
			wantErr: true,
		},
		{
			name:    "max_n below default_n rejected",
			mutate:  func(c *Config) { c.Recommend.MaxN = 2 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	yamlContent := `
server:
  port: 9100
recommend:
  factors: 16
data:
  dataset_path: /tmp/events.csv
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("RECOMMEND_FACTORS", "64")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// YAML overrides defaults.
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100 from file", cfg.Server.Port)
	}
	// Env overrides YAML.
	if cfg.Recommend.Factors != 64 {
		t.Errorf("factors = %d, want 64 from env", cfg.Recommend.Factors)
	}
	// Untouched keys keep defaults.
	if cfg.Recommend.Iterations != 10 {
		t.Errorf("iterations = %d, want default 10", cfg.Recommend.Iterations)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("read timeout = %v, want default 15s", cfg.Server.ReadTimeout)
	}
	// Comma-separated env slices are split.
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[0] != "https://a.example" {
		t.Errorf("cors origins = %v, want two parsed origins", cfg.Server.CORSOrigins)
	}
}

func TestLoadIgnoresUnmappedEnv(t *testing.T) {
	t.Setenv("SOME_RANDOM_VAR", "value")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Errorf("port = %d, want default 8000", cfg.Server.Port)
	}
}
