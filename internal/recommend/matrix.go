// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

// ConfidenceMatrix is a sparse user-item matrix of accumulated
// interaction weights, keyed by dense indices. Cells hold the raw weight
// sum r_ui; the implicit-feedback confidence transform c = 1 + alpha*r
// is applied inside the factorizer. A zero (absent) cell means "no
// observed interaction", not negative preference.
type ConfidenceMatrix struct {
	rows     map[int]map[int]float64
	numUsers int
	numItems int
	nnz      int
}

// NewConfidenceMatrix returns an empty matrix. Dimensions grow as cells
// are added.
func NewConfidenceMatrix() *ConfidenceMatrix {
	return &ConfidenceMatrix{rows: make(map[int]map[int]float64)}
}

// Add accumulates weight into cell (userIdx, itemIdx). Repeated
// interactions for the same pair sum into one cell.
func (m *ConfidenceMatrix) Add(userIdx, itemIdx int, weight float64) {
	row := m.rows[userIdx]
	if row == nil {
		row = make(map[int]float64)
		m.rows[userIdx] = row
	}
	if _, ok := row[itemIdx]; !ok {
		m.nnz++
	}
	row[itemIdx] += weight

	if userIdx >= m.numUsers {
		m.numUsers = userIdx + 1
	}
	if itemIdx >= m.numItems {
		m.numItems = itemIdx + 1
	}
}

// Row returns the sparse row for a user index. The returned map is the
// matrix's own storage and must not be mutated by callers.
func (m *ConfidenceMatrix) Row(userIdx int) map[int]float64 {
	return m.rows[userIdx]
}

// Weight returns the accumulated weight of one cell, or 0 when absent.
func (m *ConfidenceMatrix) Weight(userIdx, itemIdx int) float64 {
	return m.rows[userIdx][itemIdx]
}

// NumUsers returns the row dimension.
func (m *ConfidenceMatrix) NumUsers() int { return m.numUsers }

// NumItems returns the column dimension.
func (m *ConfidenceMatrix) NumItems() int { return m.numItems }

// NNZ returns the number of nonzero cells.
func (m *ConfidenceMatrix) NNZ() int { return m.nnz }

// Transpose returns item-major sparse storage: itemIdx -> userIdx ->
// weight. Used by the factorizer for the item-factor pass.
func (m *ConfidenceMatrix) Transpose() map[int]map[int]float64 {
	cols := make(map[int]map[int]float64)
	for u, row := range m.rows {
		for i, w := range row {
			col := cols[i]
			if col == nil {
				col = make(map[int]float64)
				cols[i] = col
			}
			col[u] = w
		}
	}
	return cols
}
