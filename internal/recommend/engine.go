// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/shopstream/recommender/internal/metrics"
)

// RetrainState is the engine's position in the retrain lifecycle.
type RetrainState int32

// Retrain lifecycle states. Failed is terminal and only reached when the
// base dataset disappears; every other error returns the engine to Idle
// with the previous snapshot still live.
const (
	StateIdle RetrainState = iota
	StateBuilding
	StateTraining
	StatePublishing
	StateFailed
)

// String returns the state name for status reporting.
func (s RetrainState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateTraining:
		return "training"
	case StatePublishing:
		return "publishing"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EngineStatus is a point-in-time view of the engine for status
// endpoints.
type EngineStatus struct {
	State           string    `json:"state"`
	SnapshotVersion uint64    `json:"snapshot_version"`
	TrainedAt       time.Time `json:"trained_at"`
	Users           int       `json:"users"`
	Items           int       `json:"items"`
	Interactions    int       `json:"interactions"`
	PendingLogs     int       `json:"pending_logs"`
}

// Engine owns the current model snapshot and the retrain lifecycle. It
// is the single mutable service object behind the HTTP surface: readers
// load the snapshot pointer once per request, writers replace it with
// one atomic swap at the end of a successful retrain.
type Engine struct {
	cfg      EngineConfig
	builder  *MatrixBuilder
	trainer  Factorizer
	log      InteractionLog
	logger   zerolog.Logger
	snapshot atomic.Pointer[ModelSnapshot]
	version  atomic.Uint64
	state    atomic.Int32

	// trainMu admits one retrain at a time. Concurrent requests are
	// rejected, not queued.
	trainMu sync.Mutex
}

// NewEngine wires the engine over its collaborators. No snapshot exists
// until the first successful Retrain.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg EngineConfig, builder *MatrixBuilder, trainer Factorizer, log InteractionLog, logger zerolog.Logger) *Engine {
	return &Engine{
		cfg:     cfg,
		builder: builder,
		trainer: trainer,
		log:     log,
		logger:  logger.With().Str("component", "engine").Logger(),
	}
}

// RecordInteraction validates and appends one live event to the
// interaction log. It never touches the current snapshot. The returned
// count is the log's total size after the append.
func (e *Engine) RecordInteraction(ctx context.Context, userID, itemID int64, kind EventKind) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("unknown event type %q", kind)
	}

	total, err := e.log.Append(ctx, Interaction{
		UserID:    userID,
		ItemID:    itemID,
		Event:     kind,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}

	metrics.InteractionsLogged.WithLabelValues(string(kind)).Inc()
	return total, nil
}

// Recommend returns up to n items for the user, scored against the
// current snapshot. Unknown users and the pre-first-train window get the
// popularity cold-start shape, never an error. n <= 0 selects the
// configured default; n above the configured cap is clamped.
func (e *Engine) Recommend(_ context.Context, userID int64, n int) Recommendation {
	if n <= 0 {
		n = e.cfg.DefaultN
	}
	if n > e.cfg.MaxN {
		n = e.cfg.MaxN
	}

	snap := e.snapshot.Load()
	if snap == nil {
		return Recommendation{Type: RecTypePopular, Items: []RecommendedItem{}}
	}

	scored, known := snap.TopN(userID, n)
	if !known {
		return Recommendation{Type: RecTypePopular, Items: []RecommendedItem{}}
	}

	items := make([]RecommendedItem, 0, len(scored))
	for _, s := range scored {
		items = append(items, resolveItem(snap.Catalog, s.ItemID))
	}
	return Recommendation{Type: RecTypePersonalized, Items: items}
}

// resolveItem maps an item id to display fields, synthesizing fallbacks
// when the catalog has no metadata for it.
func resolveItem(catalog *CatalogStore, itemID int64) RecommendedItem {
	meta, ok := catalog.Lookup(itemID)
	if !ok {
		return RecommendedItem{
			ID:       itemID,
			Name:     fmt.Sprintf("Item #%d", itemID),
			Price:    "Unknown",
			Category: "",
		}
	}
	return RecommendedItem{
		ID:       itemID,
		Name:     meta.Name,
		Price:    fmt.Sprintf("$%.2f", meta.Price),
		Category: meta.Category,
	}
}

// Retrain runs one full build-train-publish cycle and returns its
// duration. While a retrain is running, further calls fail immediately
// with ErrRetrainInProgress. On success the new snapshot replaces the
// current one atomically; on failure the previous snapshot stays live,
// except when the base dataset itself is gone, which parks the engine in
// the terminal failed state.
func (e *Engine) Retrain(ctx context.Context) (time.Duration, error) {
	if !e.trainMu.TryLock() {
		return 0, ErrRetrainInProgress
	}
	defer e.trainMu.Unlock()

	start := time.Now()
	runID := uuid.NewString()
	e.logger.Info().Str("run_id", runID).Msg("retrain started")
	metrics.RetrainRuns.Inc()

	e.state.Store(int32(StateBuilding))
	result, err := e.builder.Build(ctx)
	if err != nil {
		return 0, e.failRetrain("build", err)
	}

	e.state.Store(int32(StateTraining))
	userFactors, itemFactors, err := e.trainer.Factorize(ctx, result.Matrix)
	if err != nil {
		return 0, e.failRetrain("train", err)
	}

	e.state.Store(int32(StatePublishing))
	snap := &ModelSnapshot{
		Index:       result.Index,
		Catalog:     result.Catalog,
		Matrix:      result.Matrix,
		UserFactors: userFactors,
		ItemFactors: itemFactors,
		TrainedAt:   time.Now().UTC(),
		Version:     e.version.Add(1),
	}
	e.snapshot.Store(snap)
	e.state.Store(int32(StateIdle))

	elapsed := time.Since(start)
	metrics.RetrainDuration.Observe(elapsed.Seconds())
	metrics.SnapshotVersion.Set(float64(snap.Version))
	metrics.MatrixUsers.Set(float64(result.Index.NumUsers()))
	metrics.MatrixItems.Set(float64(result.Index.NumItems()))

	e.logger.Info().
		Str("run_id", runID).
		Uint64("version", snap.Version).
		Int("users", result.Index.NumUsers()).
		Int("items", result.Index.NumItems()).
		Dur("elapsed", elapsed).
		Msg("retrain complete, snapshot published")

	return elapsed, nil
}

// failRetrain records a retrain failure and picks the resulting state:
// terminal failed when the base dataset is unavailable, otherwise back
// to idle with the previous snapshot intact.
func (e *Engine) failRetrain(phase string, err error) error {
	metrics.RetrainFailures.Inc()

	if IsDataUnavailable(err) {
		e.state.Store(int32(StateFailed))
		e.logger.Error().Err(err).Str("phase", phase).Msg("retrain failed fatally, base dataset unavailable")
	} else {
		e.state.Store(int32(StateIdle))
		e.logger.Error().Err(err).Str("phase", phase).Msg("retrain failed, previous snapshot remains live")
	}
	return fmt.Errorf("retrain %s phase: %w", phase, err)
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() RetrainState {
	return RetrainState(e.state.Load())
}

// Ready reports whether a snapshot has been published.
func (e *Engine) Ready() bool {
	return e.snapshot.Load() != nil
}

// Status assembles a point-in-time status view.
func (e *Engine) Status(_ context.Context) EngineStatus {
	status := EngineStatus{State: e.State().String()}

	if snap := e.snapshot.Load(); snap != nil {
		status.SnapshotVersion = snap.Version
		status.TrainedAt = snap.TrainedAt
		status.Users = snap.Index.NumUsers()
		status.Items = snap.Index.NumItems()
		status.Interactions = snap.Matrix.NNZ()
	}
	if count, err := e.log.Count(); err == nil {
		status.PendingLogs = count
	}
	return status
}
