// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

// Package dataset reads the historical interaction dataset. The base
// format is the e-commerce behavior CSV: one row per event with
// event_type, product_id, category_code, brand, price, and user_id
// columns, addressed by header name so column order does not matter.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shopstream/recommender/internal/recommend"
)

// CSVSource streams interaction records from a CSV file.
type CSVSource struct {
	path   string
	logger zerolog.Logger
}

// NewCSVSource creates a source over the CSV file at path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCSVSource(path string, logger zerolog.Logger) *CSVSource {
	return &CSVSource{path: path, logger: logger.With().Str("component", "dataset").Logger()}
}

// Check verifies the dataset exists and is readable. Called at startup
// so the service refuses to come up without its base data.
func (s *CSVSource) Check() error {
	f, err := os.Open(s.path)
	if err != nil {
		return &recommend.DataUnavailableError{Path: s.path, Err: err}
	}
	return f.Close()
}

// ReadRecords streams every parseable row to fn in file order. Rows with
// an unusable id or event type are skipped with a warning; rows with
// unusable metadata still flow through as pure interaction signal.
// A missing file fails with DataUnavailableError.
func (s *CSVSource) ReadRecords(ctx context.Context, fn func(recommend.Record) error) error {
	f, err := os.Open(s.path)
	if err != nil {
		return &recommend.DataUnavailableError{Path: s.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows, validated per field below

	header, err := r.Read()
	if err != nil {
		return &recommend.DataUnavailableError{Path: s.path, Err: fmt.Errorf("reading header: %w", err)}
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"user_id", "product_id", "event_type"} {
		if _, ok := cols[required]; !ok {
			return &recommend.DataUnavailableError{Path: s.path, Err: fmt.Errorf("missing column %q", required)}
		}
	}

	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			line++
			s.logger.Warn().Err(err).Int("line", line).Msg("skipping unreadable row")
			continue
		}
		line++

		rec, perr := s.parseRow(row, cols, line)
		if perr != nil {
			s.logger.Warn().Err(perr).Int("line", line).Msg("skipping malformed row")
			continue
		}

		if err := fn(rec); err != nil {
			return err
		}
	}
}

// parseRow converts one CSV row to a Record. Id and event problems fail
// the row; metadata problems only clear MetaValid.
func (s *CSVSource) parseRow(row []string, cols map[string]int, line int) (recommend.Record, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	userID, err := strconv.ParseInt(field("user_id"), 10, 64)
	if err != nil {
		return recommend.Record{}, &recommend.MalformedRecordError{Line: line, Field: "user_id", Reason: "not an integer"}
	}
	itemID, err := strconv.ParseInt(field("product_id"), 10, 64)
	if err != nil {
		return recommend.Record{}, &recommend.MalformedRecordError{Line: line, Field: "product_id", Reason: "not an integer"}
	}
	event := recommend.EventKind(field("event_type"))
	if !event.Valid() {
		return recommend.Record{}, &recommend.MalformedRecordError{Line: line, Field: "event_type", Reason: "unknown event kind"}
	}

	rec := recommend.Record{
		UserID:       userID,
		ItemID:       itemID,
		Event:        event,
		Brand:        field("brand"),
		CategoryCode: field("category_code"),
		MetaValid:    true,
	}

	// Metadata problems degrade the row to interaction-only signal.
	switch priceStr := field("price"); priceStr {
	case "":
		// Missing price is a documented fallback, not an error.
		rec.Price = 0.0
	default:
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			s.logger.Warn().
				Err(&recommend.MalformedRecordError{Line: line, Field: "price", Reason: "not numeric"}).
				Msg("dropping metadata for row")
			rec.MetaValid = false
		} else {
			rec.Price = price
		}
	}
	if rec.Brand == "" || rec.CategoryCode == "" {
		rec.MetaValid = false
	}

	return rec, nil
}

// Ensure interface compliance.
var _ recommend.RecordSource = (*CSVSource)(nil)
