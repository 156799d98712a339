// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

// Package catalog builds a curated product inventory from the
// interaction dataset: one record per product with first-seen brand and
// category, mean price, and interaction count as popularity, grouped by
// main category and truncated to the most popular items per category.
// It backs the cmd/catalog batch utility and runs outside the serving
// core.
package catalog

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/shopstream/recommender/internal/recommend"
)

// ExportItem is one curated inventory record.
type ExportItem struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Category   string  `json:"category"`
	Popularity int     `json:"popularity"`
}

// Exporter aggregates a record source into a curated inventory.
type Exporter struct {
	source recommend.RecordSource
	logger zerolog.Logger
	// TopK is the number of items kept per main category.
	TopK int
}

// NewExporter creates an exporter keeping topK items per main category.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewExporter(source recommend.RecordSource, topK int, logger zerolog.Logger) *Exporter {
	if topK <= 0 {
		topK = 5
	}
	return &Exporter{
		source: source,
		TopK:   topK,
		logger: logger.With().Str("component", "catalog-export").Logger(),
	}
}

// aggregate is the per-product accumulator: first-seen brand/category,
// running price mean, interaction count.
type aggregate struct {
	id           int64
	brand        string
	categoryCode string
	priceSum     float64
	priceCount   int
	popularity   int
	order        int
}

// Build aggregates the dataset into curated export items, sorted by
// descending popularity within each main category and truncated to
// TopK. Products in the synthetic "Other" category are dropped.
func (e *Exporter) Build(ctx context.Context) ([]ExportItem, error) {
	byProduct := make(map[int64]*aggregate)
	var order []int64

	err := e.source.ReadRecords(ctx, func(rec recommend.Record) error {
		agg, ok := byProduct[rec.ItemID]
		if !ok {
			agg = &aggregate{id: rec.ItemID, order: len(order)}
			byProduct[rec.ItemID] = agg
			order = append(order, rec.ItemID)
		}
		agg.popularity++
		if rec.MetaValid {
			if agg.brand == "" {
				agg.brand = rec.Brand
			}
			if agg.categoryCode == "" {
				agg.categoryCode = rec.CategoryCode
			}
			agg.priceSum += rec.Price
			agg.priceCount++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate dataset: %w", err)
	}

	// Bucket by main category, preserving first-seen category order so
	// the output is deterministic.
	buckets := make(map[string][]*aggregate)
	var catOrder []string
	for _, id := range order {
		agg := byProduct[id]
		cat := mainCategory(agg.categoryCode)
		if cat == "Other" {
			continue
		}
		if _, seen := buckets[cat]; !seen {
			catOrder = append(catOrder, cat)
		}
		buckets[cat] = append(buckets[cat], agg)
	}

	var out []ExportItem
	for _, cat := range catOrder {
		items := buckets[cat]
		sort.Slice(items, func(a, b int) bool {
			if items[a].popularity != items[b].popularity {
				return items[a].popularity > items[b].popularity
			}
			return items[a].order < items[b].order
		})

		k := e.TopK
		if k > len(items) {
			k = len(items)
		}
		for _, agg := range items[:k] {
			out = append(out, agg.export(cat))
		}
	}

	e.logger.Info().
		Int("products", len(byProduct)).
		Int("categories", len(catOrder)).
		Int("exported", len(out)).
		Msg("catalog aggregated")
	return out, nil
}

// Write runs Build and writes the inventory as indented JSON to path.
func (e *Exporter) Write(ctx context.Context, path string) error {
	items, err := e.Build(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode inventory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write inventory to %s: %w", path, err)
	}

	e.logger.Info().Str("path", path).Int("items", len(items)).Msg("inventory written")
	return nil
}

// export converts an aggregate to its output record.
func (a *aggregate) export(mainCat string) ExportItem {
	var meanPrice float64
	if a.priceCount > 0 {
		meanPrice = a.priceSum / float64(a.priceCount)
	}

	subCat := ""
	if a.categoryCode != "" {
		segments := strings.Split(a.categoryCode, ".")
		subCat = titleWords(strings.ReplaceAll(segments[len(segments)-1], "_", " "))
	}

	brand := titleWords(a.brand)
	if brand == "Nan" || brand == "Generic" {
		brand = ""
	}

	return ExportItem{
		ID:         a.id,
		Name:       strings.TrimSpace(brand + " " + subCat),
		Price:      round2(meanPrice),
		Category:   mainCat,
		Popularity: a.popularity,
	}
}

// mainCategory extracts the leading category segment:
// "appliances.kitchen.washer" becomes "Appliances". Unknown or missing
// codes collapse into "Other".
func mainCategory(code string) string {
	if code == "" || strings.Contains(strings.ToLower(code), "unknown") {
		return "Other"
	}
	return titleWords(strings.Split(code, ".")[0])
}

// titleWords upper-cases the first letter of each space-separated word.
func titleWords(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// round2 rounds to two decimal places for display prices.
func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
