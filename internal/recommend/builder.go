// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// BuildResult bundles the artifacts of one matrix build: a confidence
// matrix plus the identifier index and catalog that match it.
type BuildResult struct {
	Index   *IdentifierIndex
	Catalog *CatalogStore
	Matrix  *ConfidenceMatrix
	// Records is the number of dataset rows folded in.
	Records int
	// LoggedEvents is the number of interaction-log entries folded in.
	LoggedEvents int
}

// MatrixBuilder streams the historical dataset and the interaction log
// into a weighted sparse confidence matrix. Each build starts from an
// empty index space, so identical inputs in identical order produce
// identical assignments.
type MatrixBuilder struct {
	source RecordSource
	log    InteractionLog
	logger zerolog.Logger
}

// NewMatrixBuilder creates a builder over the given dataset source and
// interaction log. The log may be nil for history-only builds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMatrixBuilder(source RecordSource, log InteractionLog, logger zerolog.Logger) *MatrixBuilder {
	return &MatrixBuilder{source: source, log: log, logger: logger}
}

// Build produces a fresh BuildResult from the historical dataset plus
// all logged interactions. A missing or empty interaction log is not an
// error; an unreadable one degrades to a history-only build with a
// warning. A missing dataset fails the build with DataUnavailableError.
func (b *MatrixBuilder) Build(ctx context.Context) (*BuildResult, error) {
	result := &BuildResult{
		Index:   NewIdentifierIndex(),
		Catalog: NewCatalogStore(),
		Matrix:  NewConfidenceMatrix(),
	}

	err := b.source.ReadRecords(ctx, func(rec Record) error {
		uIdx := result.Index.AddUser(rec.UserID)
		iIdx := result.Index.AddItem(rec.ItemID)
		result.Matrix.Add(uIdx, iIdx, rec.Event.Weight())
		result.Catalog.Observe(rec)
		result.Records++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read historical dataset: %w", err)
	}

	if b.log != nil {
		entries, err := b.log.ReadAll(ctx)
		if err != nil {
			// Degrade to history only rather than aborting the build.
			b.logger.Warn().Err(err).Msg("interaction log unreadable, building from history only")
		} else {
			for _, in := range entries {
				if !in.Event.Valid() {
					b.logger.Warn().
						Int64("user_id", in.UserID).
						Int64("product_id", in.ItemID).
						Str("event_type", string(in.Event)).
						Msg("skipping logged interaction with unknown event type")
					continue
				}
				uIdx := result.Index.AddUser(in.UserID)
				iIdx := result.Index.AddItem(in.ItemID)
				result.Matrix.Add(uIdx, iIdx, in.Event.Weight())
				result.LoggedEvents++
			}
		}
	}

	b.logger.Info().
		Int("records", result.Records).
		Int("logged_events", result.LoggedEvents).
		Int("users", result.Index.NumUsers()).
		Int("items", result.Index.NumItems()).
		Int("nnz", result.Matrix.NNZ()).
		Msg("confidence matrix built")

	return result, nil
}
