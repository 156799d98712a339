// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		logFn     func()
		wantField string
		wantEmpty bool
	}{
		{
			name:      "json output contains level field",
			cfg:       Config{Level: "info", Format: "json"},
			logFn:     func() { Info().Str("k", "v").Msg("hello") },
			wantField: `"level":"info"`,
		},
		{
			name:      "debug suppressed at info level",
			cfg:       Config{Level: "info", Format: "json"},
			logFn:     func() { Debug().Msg("hidden") },
			wantEmpty: true,
		},
		{
			name:      "invalid level falls back to info",
			cfg:       Config{Level: "nonsense", Format: "json"},
			logFn:     func() { Info().Msg("visible") },
			wantField: "visible",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.cfg.Output = &buf
			Init(tt.cfg)
			defer Init(DefaultConfig())

			tt.logFn()

			got := buf.String()
			if tt.wantEmpty {
				if got != "" {
					t.Errorf("expected no output, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.wantField) {
				t.Errorf("output %q does not contain %q", got, tt.wantField)
			}
		})
	}
}

func TestLevelHelpers(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "trace", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Trace().Msg("trace line")
	Debug().Msg("debug line")
	Warn().Msg("warn line")
	Error().Msg("error line")
	Errorf("formatted %d", 42)

	got := buf.String()
	for _, want := range []string{
		`"level":"trace"`,
		`"level":"debug"`,
		`"level":"warn"`,
		`"level":"error"`,
		"formatted 42",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}

func TestSlogHandler(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	logger := NewSlogLogger()
	logger.Info("supervisor event", slog.String("service", "http-server"), slog.Int("restarts", 2))

	got := buf.String()
	for _, want := range []string{"supervisor event", `"service":"http-server"`, `"restarts":2`} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q does not contain %q", got, want)
		}
	}
}

func TestSlogHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	logger := NewSlogLogger().WithGroup("tree").With(slog.String("name", "root"))
	logger.Warn("restart backoff")

	got := buf.String()
	if !strings.Contains(got, `"tree.name":"root"`) {
		t.Errorf("output %q missing grouped attribute", got)
	}
}
