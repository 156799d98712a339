// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

import (
	"context"
	"time"
)

// EventKind classifies an interaction event.
type EventKind string

// Interaction event kinds and their confidence weights.
const (
	EventView     EventKind = "view"
	EventCart     EventKind = "cart"
	EventPurchase EventKind = "purchase"
)

// Valid reports whether k is a known event kind.
func (k EventKind) Valid() bool {
	switch k {
	case EventView, EventCart, EventPurchase:
		return true
	default:
		return false
	}
}

// Weight returns the confidence weight contributed by one event of this
// kind. Unknown kinds contribute nothing.
func (k EventKind) Weight() float64 {
	switch k {
	case EventView:
		return 1.0
	case EventCart:
		return 10.0
	case EventPurchase:
		return 50.0
	default:
		return 0
	}
}

// Interaction is one user-item event, either from the historical dataset
// or logged live through the API.
type Interaction struct {
	UserID    int64     `json:"user_id"`
	ItemID    int64     `json:"product_id"`
	Event     EventKind `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// Record is one row of the historical dataset: an interaction plus the
// item metadata carried alongside it. MetaValid is false when the row's
// price or category could not be parsed; such rows still count as
// interaction signal but contribute no catalog metadata.
type Record struct {
	UserID       int64
	ItemID       int64
	Event        EventKind
	Brand        string
	CategoryCode string
	Price        float64
	MetaValid    bool
}

// RecordSource streams historical interaction records. Implementations
// return DataUnavailableError when the underlying dataset is missing and
// report per-row problems by skipping the row, not by failing the read.
type RecordSource interface {
	ReadRecords(ctx context.Context, fn func(Record) error) error
}

// InteractionLog is a durable append-only store of live interaction
// events. Entries survive restarts and are replayed in full on every
// matrix build.
type InteractionLog interface {
	// Append stores one interaction and returns the total number of
	// entries in the log after the write.
	Append(ctx context.Context, in Interaction) (int, error)
	// ReadAll returns every logged interaction in append order.
	ReadAll(ctx context.Context) ([]Interaction, error)
	// Count returns the number of logged entries.
	Count() (int, error)
	Close() error
}

// Factorizer fits latent factor matrices to a confidence matrix. The
// returned slices are indexed by the matrix's dense user and item
// indices.
type Factorizer interface {
	Factorize(ctx context.Context, m *ConfidenceMatrix) (userFactors, itemFactors [][]float64, err error)
}

// Recommendation response types.
const (
	RecTypePersonalized = "Personalized (AI)"
	RecTypePopular      = "Popular (New User)"
)

// RecommendedItem is one entry of a recommendation response. Price is
// pre-formatted for display ("$12.34", or "Unknown" when the catalog has
// no metadata for the item).
type RecommendedItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category"`
}

// Recommendation is the full response to a recommend query.
type Recommendation struct {
	Type  string            `json:"type"`
	Items []RecommendedItem `json:"items"`
}
