// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shopstream/recommender/internal/recommend"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func collect(t *testing.T, src *CSVSource) []recommend.Record {
	t.Helper()
	var out []recommend.Record
	err := src.ReadRecords(context.Background(), func(rec recommend.Record) error {
		out = append(out, rec)
		return nil
	})
	if err != nil {
		t.Fatalf("ReadRecords() error: %v", err)
	}
	return out
}

func TestReadRecords(t *testing.T) {
	path := writeCSV(t, `event_type,product_id,category_code,brand,price,user_id
view,1005115,electronics.smartphone,apple,949.99,520088904
purchase,1005115,electronics.smartphone,apple,949.99,520088904
cart,4804056,electronics.audio.headphone,xiaomi,61.18,530496790
`)

	recs := collect(t, NewCSVSource(path, zerolog.Nop()))

	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	first := recs[0]
	if first.UserID != 520088904 || first.ItemID != 1005115 {
		t.Errorf("ids = %d/%d, want 520088904/1005115", first.UserID, first.ItemID)
	}
	if first.Event != recommend.EventView {
		t.Errorf("event = %q, want view", first.Event)
	}
	if !first.MetaValid || first.Price != 949.99 || first.Brand != "apple" {
		t.Errorf("metadata = %+v, want valid apple @ 949.99", first)
	}
}

func TestMalformedRows(t *testing.T) {
	tests := []struct {
		name        string
		rows        string
		wantRecords int
		wantMeta    []bool
	}{
		{
			name: "bad user id skips the row",
			rows: `view,1,electronics.tv,lg,100.00,notanumber
view,1,electronics.tv,lg,100.00,7`,
			wantRecords: 1,
			wantMeta:    []bool{true},
		},
		{
			name:        "unknown event type skips the row",
			rows:        `refund,1,electronics.tv,lg,100.00,7`,
			wantRecords: 0,
		},
		{
			name:        "non-numeric price keeps interaction, drops metadata",
			rows:        `view,1,electronics.tv,lg,notaprice,7`,
			wantRecords: 1,
			wantMeta:    []bool{false},
		},
		{
			name:        "missing category drops metadata",
			rows:        `view,1,,lg,100.00,7`,
			wantRecords: 1,
			wantMeta:    []bool{false},
		},
		{
			name:        "missing brand drops metadata",
			rows:        `view,1,electronics.tv,,100.00,7`,
			wantRecords: 1,
			wantMeta:    []bool{false},
		},
		{
			name:        "empty price falls back to zero with metadata kept",
			rows:        `view,1,electronics.tv,lg,,7`,
			wantRecords: 1,
			wantMeta:    []bool{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, "event_type,product_id,category_code,brand,price,user_id\n"+tt.rows+"\n")
			recs := collect(t, NewCSVSource(path, zerolog.Nop()))

			if len(recs) != tt.wantRecords {
				t.Fatalf("got %d records, want %d", len(recs), tt.wantRecords)
			}
			for i, want := range tt.wantMeta {
				if recs[i].MetaValid != want {
					t.Errorf("record %d MetaValid = %v, want %v", i, recs[i].MetaValid, want)
				}
			}
		})
	}
}

func TestEmptyPriceIsZero(t *testing.T) {
	path := writeCSV(t, "event_type,product_id,category_code,brand,price,user_id\nview,1,electronics.tv,lg,,7\n")
	recs := collect(t, NewCSVSource(path, zerolog.Nop()))

	if len(recs) != 1 {
		t.Fatal("want one record")
	}
	if recs[0].Price != 0.0 {
		t.Errorf("Price = %v, want 0.0", recs[0].Price)
	}
}

func TestMissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "absent.csv"), zerolog.Nop())

	if err := src.Check(); !recommend.IsDataUnavailable(err) {
		t.Errorf("Check() error = %v, want DataUnavailableError", err)
	}

	err := src.ReadRecords(context.Background(), func(recommend.Record) error { return nil })
	if !recommend.IsDataUnavailable(err) {
		t.Errorf("ReadRecords() error = %v, want DataUnavailableError", err)
	}
}

func TestMissingRequiredColumn(t *testing.T) {
	path := writeCSV(t, "event_type,product_id,price\nview,1,9.99\n")
	src := NewCSVSource(path, zerolog.Nop())

	err := src.ReadRecords(context.Background(), func(recommend.Record) error { return nil })
	if !recommend.IsDataUnavailable(err) {
		t.Errorf("error = %v, want DataUnavailableError for missing user_id column", err)
	}
}
