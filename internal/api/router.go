// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the full HTTP surface over the engine.
func NewRouter(engine Engine, mw MiddlewareConfig) http.Handler {
	h := NewHandler(engine)

	r := chi.NewRouter()

	// Global middleware, applied to every route in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(PrometheusMetrics())

	// Core recommendation surface. Paths are part of the public
	// contract, existing storefront clients depend on them.
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.Get("/", h.Home)
		r.Post("/log_action", h.LogAction)
		r.Post("/trigger_retrain", h.TriggerRetrain)
		r.Get("/recommend/{user_id}", h.Recommend)
	})

	// Health and status endpoints stay outside the rate limit so
	// monitoring cannot be starved by API traffic.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)
		r.Get("/status", h.Status)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
