// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

// Package metrics defines the service's Prometheus instrumentation:
// HTTP traffic, interaction logging, retrain runs, and the dimensions
// of the published model snapshot.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Interaction log metrics
	InteractionsLogged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_logged_total",
			Help: "Total number of interaction events appended to the log",
		},
		[]string{"event_type"},
	)

	InteractionLogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interaction_log_entries",
			Help: "Current number of entries in the interaction log",
		},
	)

	// Retrain metrics
	RetrainRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "retrain_runs_total",
			Help: "Total number of retrain attempts",
		},
	)

	RetrainFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "retrain_failures_total",
			Help: "Total number of failed retrain attempts",
		},
	)

	RetrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrain_duration_seconds",
			Help:    "Duration of full build-train-publish cycles in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	RetrainRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "retrain_rejections_total",
			Help: "Total number of retrain requests rejected because one was in progress",
		},
	)

	// Model snapshot metrics
	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_snapshot_version",
			Help: "Version number of the currently published model snapshot",
		},
	)

	MatrixUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_matrix_users",
			Help: "User dimension of the current confidence matrix",
		},
	)

	MatrixItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_matrix_items",
			Help: "Item dimension of the current confidence matrix",
		},
	)

	// Recommendation serving metrics
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation responses by type",
		},
		[]string{"type"},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
