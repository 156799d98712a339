// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package recommend

import (
	"strings"
	"unicode"
)

// ItemMeta is the display metadata retained for one catalog item.
type ItemMeta struct {
	Name       string
	Price      float64
	Category   string
	Popularity int

	resolved bool
}

// CatalogStore maps item ids to display metadata. The first well-formed
// record seen for an item supplies its metadata; every record, valid or
// not, bumps its popularity count. Items that never produce a
// well-formed record fail Lookup and are resolved through synthesized
// fallbacks at query time.
type CatalogStore struct {
	items map[int64]*ItemMeta
}

// NewCatalogStore returns an empty catalog.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{items: make(map[int64]*ItemMeta)}
}

// Observe folds one dataset record into the catalog. Every record
// counts toward popularity; display metadata is taken from the first
// record with valid brand/category/price, whenever it arrives.
func (c *CatalogStore) Observe(rec Record) {
	meta := c.items[rec.ItemID]
	if meta == nil {
		meta = &ItemMeta{}
		c.items[rec.ItemID] = meta
	}
	meta.Popularity++

	if !meta.resolved && rec.MetaValid {
		category := categoryLabel(rec.CategoryCode)
		meta.Name = displayName(rec.Brand, category)
		meta.Price = rec.Price
		meta.Category = category
		meta.resolved = true
	}
}

// Lookup returns the metadata for an item id. Items seen only through
// meta-invalid records report false and resolve through fallbacks.
func (c *CatalogStore) Lookup(itemID int64) (ItemMeta, bool) {
	meta, ok := c.items[itemID]
	if !ok || !meta.resolved {
		return ItemMeta{}, false
	}
	return *meta, true
}

// Len returns the number of cataloged items.
func (c *CatalogStore) Len() int { return len(c.items) }

// categoryLabel derives a display category from a dotted category code:
// the last segment, underscores to spaces, title-cased.
// "electronics.audio.headphone" becomes "Headphone".
func categoryLabel(code string) string {
	if code == "" {
		return ""
	}
	segments := strings.Split(code, ".")
	return titleCase(strings.ReplaceAll(segments[len(segments)-1], "_", " "))
}

// displayName combines brand and category into a product display name.
// Placeholder brands are dropped rather than shown.
func displayName(brand, category string) string {
	brand = titleCase(brand)
	if brand == "Nan" || brand == "Generic" {
		brand = ""
	}
	return strings.TrimSpace(brand + " " + category)
}

// titleCase upper-cases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
