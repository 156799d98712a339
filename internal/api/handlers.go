// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

// Package api exposes the recommendation engine over HTTP: interaction
// logging, synchronous retrains, and top-N recommendation queries, plus
// the ambient health, status, and metrics endpoints.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/shopstream/recommender/internal/metrics"
	"github.com/shopstream/recommender/internal/recommend"
	"github.com/shopstream/recommender/internal/validation"
)

// Engine is the surface the handlers need from the recommendation
// engine.
type Engine interface {
	RecordInteraction(ctx context.Context, userID, itemID int64, kind recommend.EventKind) (int, error)
	Recommend(ctx context.Context, userID int64, n int) recommend.Recommendation
	Retrain(ctx context.Context) (time.Duration, error)
	Status(ctx context.Context) recommend.EngineStatus
	Ready() bool
}

// Handler carries the handler dependencies.
type Handler struct {
	engine Engine
}

// NewHandler creates the HTTP handler set over an engine.
func NewHandler(engine Engine) *Handler {
	return &Handler{engine: engine}
}

// Home reports the service is up.
// GET /
func (h *Handler) Home(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "Active"})
}

// logActionRequest is the POST /log_action body.
type logActionRequest struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	EventType string `json:"event_type" validate:"required,oneof=view cart purchase"`
}

// logActionResponse is the POST /log_action response body.
type logActionResponse struct {
	Status    string `json:"status"`
	TotalLogs int    `json:"total_logs"`
}

// LogAction appends one interaction event to the durable log. The
// timestamp is server-assigned.
// POST /log_action
func (h *Handler) LogAction(w http.ResponseWriter, r *http.Request) {
	var req logActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), nil)
		return
	}

	total, err := h.engine.RecordInteraction(r.Context(), req.UserID, req.ProductID, recommend.EventKind(req.EventType))
	if err != nil {
		if recommend.IsPersistence(err) {
			respondError(w, http.StatusInternalServerError, "PERSISTENCE_ERROR", "failed to store the interaction", err)
			return
		}
		respondError(w, http.StatusBadRequest, "INVALID_EVENT", "unknown event type", err)
		return
	}

	respondJSON(w, http.StatusOK, logActionResponse{Status: "Logged", TotalLogs: total})
}

// retrainResponse is the POST /trigger_retrain response body.
type retrainResponse struct {
	Status   string `json:"status"`
	Duration string `json:"duration"`
}

// TriggerRetrain runs one synchronous build-train-publish cycle.
// Requests arriving while a retrain is in flight get 409 and are not
// queued.
// POST /trigger_retrain
func (h *Handler) TriggerRetrain(w http.ResponseWriter, r *http.Request) {
	elapsed, err := h.engine.Retrain(r.Context())
	if err != nil {
		if errors.Is(err, recommend.ErrRetrainInProgress) {
			metrics.RetrainRejections.Inc()
			respondError(w, http.StatusConflict, "RETRAIN_IN_PROGRESS", "a retrain is already running", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "RETRAIN_FAILED", "retrain failed, previous model remains active", err)
		return
	}

	respondJSON(w, http.StatusOK, retrainResponse{
		Status:   "Retrained",
		Duration: fmt.Sprintf("%.2fs", elapsed.Seconds()),
	})
}

// Recommend returns top-N items for a user. Unknown users get the
// popularity cold-start shape with an empty item list.
// GET /recommend/{user_id}
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_USER_ID", "user_id must be an integer", err)
		return
	}

	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			n = parsed
		}
	}

	rec := h.engine.Recommend(r.Context(), userID, n)
	metrics.RecommendationsServed.WithLabelValues(rec.Type).Inc()
	respondJSON(w, http.StatusOK, rec)
}

// HealthLive reports process liveness.
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthReady reports whether a model snapshot has been published.
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, _ *http.Request) {
	if !h.engine.Ready() {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "initializing"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Status reports the retrain state machine and current snapshot stats.
// GET /api/v1/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Status(r.Context()))
}
