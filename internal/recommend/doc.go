// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

// Package recommend implements the incremental collaborative-filtering
// core: identifier indexing, catalog bookkeeping, confidence-matrix
// construction, and the retrain/serve lifecycle around an immutable
// model snapshot.
//
// The engine merges a historical interaction dataset with live events
// from a durable interaction log, builds a sparse user-item confidence
// matrix, factorizes it through a pluggable Factorizer (ALS for
// implicit feedback in internal/recommend/algorithms), and serves
// top-N recommendations against the current snapshot. Retrains publish
// a complete new snapshot through one atomic pointer swap, so the read
// path never blocks on training.
package recommend
