// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

import (
	"testing"
	"time"
)

// fixedSnapshot builds a snapshot with hand-picked factors so rankings
// are fully controlled: user 0 has interacted with item 0 only.
func fixedSnapshot() *ModelSnapshot {
	ix := NewIdentifierIndex()
	ix.AddUser(1)
	for _, id := range []int64{100, 101, 102} {
		ix.AddItem(id)
	}

	m := NewConfidenceMatrix()
	m.Add(0, 0, 50.0)

	return &ModelSnapshot{
		Index:   ix,
		Catalog: NewCatalogStore(),
		Matrix:  m,
		UserFactors: [][]float64{
			{1.0, 0.0},
		},
		ItemFactors: [][]float64{
			{0.9, 0.0}, // item 100, interacted
			{0.5, 0.0}, // item 101
			{0.7, 0.0}, // item 102
		},
		TrainedAt: time.Now(),
		Version:   1,
	}
}

func TestTopNExcludesInteracted(t *testing.T) {
	snap := fixedSnapshot()

	top, known := snap.TopN(1, 5)
	if !known {
		t.Fatal("user 1 should be known")
	}

	for _, s := range top {
		if s.ItemID == 100 {
			t.Error("interacted item 100 must be excluded")
		}
	}
	if len(top) != 2 {
		t.Fatalf("len(top) = %d, want 2", len(top))
	}
	// 102 (0.7) ranks above 101 (0.5).
	if top[0].ItemID != 102 || top[1].ItemID != 101 {
		t.Errorf("order = [%d, %d], want [102, 101]", top[0].ItemID, top[1].ItemID)
	}
}

func TestTopNRespectsLimit(t *testing.T) {
	snap := fixedSnapshot()

	top, _ := snap.TopN(1, 1)
	if len(top) != 1 {
		t.Fatalf("len(top) = %d, want 1", len(top))
	}
	if top[0].ItemID != 102 {
		t.Errorf("top item = %d, want 102", top[0].ItemID)
	}
}

func TestTopNUnknownUser(t *testing.T) {
	snap := fixedSnapshot()

	if _, known := snap.TopN(99, 5); known {
		t.Error("unknown user should report known=false")
	}
}

func TestTopNTieBreaksByItemIndex(t *testing.T) {
	snap := fixedSnapshot()
	// Equal scores for items 101 and 102.
	snap.ItemFactors[1] = []float64{0.5, 0.0}
	snap.ItemFactors[2] = []float64{0.5, 0.0}

	top, _ := snap.TopN(1, 2)
	if len(top) != 2 {
		t.Fatal("want 2 items")
	}
	// Lower dense index (101) wins the tie.
	if top[0].ItemID != 101 {
		t.Errorf("tie broken toward %d, want 101", top[0].ItemID)
	}
}
