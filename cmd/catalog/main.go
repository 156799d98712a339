// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

// Package main is the offline catalog export tool. It aggregates the
// interaction dataset into per-category top product lists and writes
// them as JSON, for seeding storefront landing pages.
//
// Usage:
//
//	catalog -dataset events.csv -out top_products.json -top 5
//
// Flags default to the service configuration, so running the tool with
// no arguments next to a config.yaml produces the configured export.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/shopstream/recommender/internal/catalog"
	"github.com/shopstream/recommender/internal/config"
	"github.com/shopstream/recommender/internal/dataset"
	"github.com/shopstream/recommender/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	datasetPath := flag.String("dataset", cfg.Data.DatasetPath, "interaction dataset CSV to aggregate")
	outputPath := flag.String("out", cfg.Export.OutputPath, "output JSON path")
	topK := flag.Int("top", cfg.Export.TopK, "products to keep per category")
	flag.Parse()

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	source := dataset.NewCSVSource(*datasetPath, logging.Logger())
	if err := source.Check(); err != nil {
		logging.Fatal().Err(err).Msg("Dataset unavailable")
	}

	exporter := catalog.NewExporter(source, *topK, logging.Logger())

	start := time.Now()
	if err := exporter.Write(context.Background(), *outputPath); err != nil {
		logging.Fatal().Err(err).Msg("Catalog export failed")
	}

	logging.Info().
		Str("dataset", *datasetPath).
		Str("output", *outputPath).
		Int("top_k", *topK).
		Dur("duration", time.Since(start)).
		Msg("Catalog export complete")
}
