// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

import "testing"

func TestMatrixAccumulatesWeights(t *testing.T) {
	m := NewConfidenceMatrix()

	// One view, one cart, one purchase on the same cell sum to 61.0.
	m.Add(0, 0, EventView.Weight())
	m.Add(0, 0, EventCart.Weight())
	m.Add(0, 0, EventPurchase.Weight())

	if got := m.Weight(0, 0); got != 61.0 {
		t.Errorf("Weight(0,0) = %v, want 61.0", got)
	}
	if m.NNZ() != 1 {
		t.Errorf("NNZ() = %d, want 1", m.NNZ())
	}
}

func TestMatrixDimensions(t *testing.T) {
	m := NewConfidenceMatrix()
	m.Add(2, 5, 1.0)
	m.Add(0, 1, 1.0)

	if m.NumUsers() != 3 {
		t.Errorf("NumUsers() = %d, want 3", m.NumUsers())
	}
	if m.NumItems() != 6 {
		t.Errorf("NumItems() = %d, want 6", m.NumItems())
	}
	if m.Weight(1, 1) != 0 {
		t.Errorf("absent cell = %v, want 0", m.Weight(1, 1))
	}
}

func TestMatrixTranspose(t *testing.T) {
	m := NewConfidenceMatrix()
	m.Add(0, 1, 10.0)
	m.Add(2, 1, 50.0)
	m.Add(2, 0, 1.0)

	cols := m.Transpose()

	if cols[1][0] != 10.0 || cols[1][2] != 50.0 {
		t.Errorf("column 1 = %v, want {0:10, 2:50}", cols[1])
	}
	if cols[0][2] != 1.0 {
		t.Errorf("column 0 = %v, want {2:1}", cols[0])
	}
}

func TestEventWeights(t *testing.T) {
	tests := []struct {
		kind EventKind
		want float64
	}{
		{EventView, 1.0},
		{EventCart, 10.0},
		{EventPurchase, 50.0},
		{EventKind("refund"), 0},
	}

	for _, tt := range tests {
		if got := tt.kind.Weight(); got != tt.want {
			t.Errorf("Weight(%q) = %v, want %v", tt.kind, got, tt.want)
		}
	}

	if EventKind("refund").Valid() {
		t.Error("refund should not be a valid event kind")
	}
	if !EventPurchase.Valid() {
		t.Error("purchase should be a valid event kind")
	}
}
