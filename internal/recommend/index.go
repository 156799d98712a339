// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

// IdentifierIndex maps raw external user and item identifiers to dense
// zero-based matrix indices and back. Indices are assigned in first-seen
// order, contiguous from 0, and never reassigned within one snapshot.
// A rebuild produces a fresh index space.
//
// The index is mutated only during a build; once published inside a
// ModelSnapshot it is read-only.
type IdentifierIndex struct {
	userToIdx map[int64]int
	itemToIdx map[int64]int
	idxToUser []int64
	idxToItem []int64
}

// NewIdentifierIndex returns an empty index.
func NewIdentifierIndex() *IdentifierIndex {
	return &IdentifierIndex{
		userToIdx: make(map[int64]int),
		itemToIdx: make(map[int64]int),
	}
}

// AddUser returns the dense index for id, assigning the next free index
// on first sight.
func (ix *IdentifierIndex) AddUser(id int64) int {
	if idx, ok := ix.userToIdx[id]; ok {
		return idx
	}
	idx := len(ix.idxToUser)
	ix.userToIdx[id] = idx
	ix.idxToUser = append(ix.idxToUser, id)
	return idx
}

// AddItem returns the dense index for id, assigning the next free index
// on first sight.
func (ix *IdentifierIndex) AddItem(id int64) int {
	if idx, ok := ix.itemToIdx[id]; ok {
		return idx
	}
	idx := len(ix.idxToItem)
	ix.itemToIdx[id] = idx
	ix.idxToItem = append(ix.idxToItem, id)
	return idx
}

// UserIndex looks up the dense index for a raw user id.
func (ix *IdentifierIndex) UserIndex(id int64) (int, bool) {
	idx, ok := ix.userToIdx[id]
	return idx, ok
}

// ItemIndex looks up the dense index for a raw item id.
func (ix *IdentifierIndex) ItemIndex(id int64) (int, bool) {
	idx, ok := ix.itemToIdx[id]
	return idx, ok
}

// UserID returns the raw user id for a dense index.
func (ix *IdentifierIndex) UserID(idx int) int64 { return ix.idxToUser[idx] }

// ItemID returns the raw item id for a dense index.
func (ix *IdentifierIndex) ItemID(idx int) int64 { return ix.idxToItem[idx] }

// NumUsers returns the number of indexed users.
func (ix *IdentifierIndex) NumUsers() int { return len(ix.idxToUser) }

// NumItems returns the number of indexed items.
func (ix *IdentifierIndex) NumItems() int { return len(ix.idxToItem) }
