// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

// EngineConfig bounds the engine's serving behavior. Training
// hyperparameters live with the factorizer.
type EngineConfig struct {
	// DefaultN is the number of items returned when the caller does not
	// ask for a specific count.
	DefaultN int
	// MaxN caps the number of items any single query may request.
	MaxN int
}

// DefaultEngineConfig returns the serving defaults.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		DefaultN: 5,
		MaxN:     100,
	}
}
