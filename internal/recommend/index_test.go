// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

import "testing"

func TestIdentifierIndexFirstSeenOrder(t *testing.T) {
	ix := NewIdentifierIndex()

	users := []int64{520088904, 530496790, 520088904, 561587266}
	wantIdx := []int{0, 1, 0, 2}

	for i, id := range users {
		if got := ix.AddUser(id); got != wantIdx[i] {
			t.Errorf("AddUser(%d) = %d, want %d", id, got, wantIdx[i])
		}
	}

	if ix.NumUsers() != 3 {
		t.Errorf("NumUsers() = %d, want 3", ix.NumUsers())
	}
}

func TestIdentifierIndexRoundTrip(t *testing.T) {
	ix := NewIdentifierIndex()
	items := []int64{1005115, 1005100, 4804056}

	for _, id := range items {
		ix.AddItem(id)
	}

	for wantIdx, id := range items {
		idx, ok := ix.ItemIndex(id)
		if !ok {
			t.Fatalf("ItemIndex(%d) not found", id)
		}
		if idx != wantIdx {
			t.Errorf("ItemIndex(%d) = %d, want %d", id, idx, wantIdx)
		}
		if back := ix.ItemID(idx); back != id {
			t.Errorf("ItemID(%d) = %d, want %d", idx, back, id)
		}
	}
}

func TestIdentifierIndexUnknownLookup(t *testing.T) {
	ix := NewIdentifierIndex()
	ix.AddUser(1)

	if _, ok := ix.UserIndex(99); ok {
		t.Error("UserIndex(99) found an unregistered user")
	}
	if _, ok := ix.ItemIndex(99); ok {
		t.Error("ItemIndex(99) found an unregistered item")
	}
}

func TestIdentifierIndexIdempotentRebuild(t *testing.T) {
	input := []int64{7, 3, 9, 3, 7, 11}

	build := func() map[int64]int {
		ix := NewIdentifierIndex()
		for _, id := range input {
			ix.AddUser(id)
		}
		out := make(map[int64]int)
		for _, id := range input {
			idx, _ := ix.UserIndex(id)
			out[id] = idx
		}
		return out
	}

	first := build()
	second := build()

	for id, idx := range first {
		if second[id] != idx {
			t.Errorf("rebuild assigned user %d index %d, first run had %d", id, second[id], idx)
		}
	}
}
