// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

import (
	"sort"
	"time"
)

// ModelSnapshot is one immutable, internally consistent bundle of index,
// catalog, confidence matrix, and factor matrices produced by a single
// retrain. Exactly one snapshot is current at any time; readers pick up
// the pointer once per request and use it for the whole request.
type ModelSnapshot struct {
	Index       *IdentifierIndex
	Catalog     *CatalogStore
	Matrix      *ConfidenceMatrix
	UserFactors [][]float64
	ItemFactors [][]float64
	TrainedAt   time.Time
	Version     uint64
}

// ScoredItem is one ranked candidate from a snapshot query.
type ScoredItem struct {
	ItemID int64
	Score  float64
}

// TopN scores every item for the given user, excludes items the user has
// already interacted with, and returns up to n items by descending score.
// Ties break by ascending dense item index so rankings are deterministic.
// The second return is false when the user is absent from the snapshot's
// index (the cold-start case).
func (s *ModelSnapshot) TopN(userID int64, n int) ([]ScoredItem, bool) {
	uIdx, ok := s.Index.UserIndex(userID)
	if !ok || uIdx >= len(s.UserFactors) {
		return nil, false
	}

	userVec := s.UserFactors[uIdx]
	seen := s.Matrix.Row(uIdx)

	type candidate struct {
		itemIdx int
		score   float64
	}
	candidates := make([]candidate, 0, len(s.ItemFactors))

	for iIdx, itemVec := range s.ItemFactors {
		if _, interacted := seen[iIdx]; interacted {
			continue
		}
		var score float64
		for f := range userVec {
			score += userVec[f] * itemVec[f]
		}
		candidates = append(candidates, candidate{itemIdx: iIdx, score: score})
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].score != candidates[b].score {
			return candidates[a].score > candidates[b].score
		}
		return candidates[a].itemIdx < candidates[b].itemIdx
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	top := make([]ScoredItem, 0, n)
	for _, c := range candidates[:n] {
		top = append(top, ScoredItem{ItemID: s.Index.ItemID(c.itemIdx), Score: c.score})
	}
	return top, true
}
