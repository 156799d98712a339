// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

package eventlog

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/shopstream/recommender/internal/recommend"
)

func openTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	return s
}

func TestAppendAndReadAll(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	defer s.Close()

	ctx := context.Background()
	events := []recommend.Interaction{
		{UserID: 1, ItemID: 100, Event: recommend.EventView, Timestamp: time.Now().UTC()},
		{UserID: 1, ItemID: 100, Event: recommend.EventPurchase, Timestamp: time.Now().UTC()},
		{UserID: 2, ItemID: 102, Event: recommend.EventCart, Timestamp: time.Now().UTC()},
	}

	for i, in := range events {
		total, err := s.Append(ctx, in)
		if err != nil {
			t.Fatalf("Append(%d) error: %v", i, err)
		}
		if total != i+1 {
			t.Errorf("Append(%d) total = %d, want %d", i, total, i+1)
		}
	}

	got, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("ReadAll() len = %d, want %d", len(got), len(events))
	}
	for i := range events {
		if got[i].UserID != events[i].UserID || got[i].ItemID != events[i].ItemID || got[i].Event != events[i].Event {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], events[i])
		}
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := openTestStore(t, dir)
	if _, err := s.Append(ctx, recommend.Interaction{UserID: 7, ItemID: 700, Event: recommend.EventPurchase}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2 := openTestStore(t, dir)
	defer s2.Close()

	count, err := s2.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Count() after reopen = %d, want 1", count)
	}

	// Totals continue rather than restarting at 1.
	total, err := s2.Append(ctx, recommend.Interaction{UserID: 7, ItemID: 701, Event: recommend.EventView})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("Append() after reopen total = %d, want 2", total)
	}

	all, err := s2.ReadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("ReadAll() len = %d, want 2", len(all))
	}
	if all[0].ItemID != 700 || all[1].ItemID != 701 {
		t.Errorf("append order not preserved: %+v", all)
	}
}

func TestEmptyStore(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	defer s.Close()

	count, err := s.Count()
	if err != nil || count != 0 {
		t.Errorf("Count() = %d, %v, want 0, nil", count, err)
	}

	all, err := s.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("ReadAll() on empty store returned %d entries", len(all))
	}
}

func TestConcurrentAppends(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	defer s.Close()

	ctx := context.Background()
	const n = 20

	done := make(chan error, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			_, err := s.Append(ctx, recommend.Interaction{
				UserID: int64(i), ItemID: int64(100 + i), Event: recommend.EventView,
			})
			done <- err
		}(i)
	}
	for i := 0; i < n; i++ {
		if err := <-done; err != nil {
			t.Fatalf("concurrent Append error: %v", err)
		}
	}

	count, _ := s.Count()
	if count != n {
		t.Errorf("Count() = %d, want %d", count, n)
	}

	all, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != n {
		t.Errorf("ReadAll() len = %d, want %d", len(all), n)
	}
}
