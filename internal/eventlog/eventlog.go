// ShopStream Recommender - Incremental Collaborative Filtering for Commerce
// Copyright 2026 ShopStream Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recommender

// Package eventlog persists live interaction events in an append-only
// BadgerDB store. Entries are written with fsync durability, survive
// process restarts, and are replayed in full on every matrix build.
package eventlog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/shopstream/recommender/internal/recommend"
)

// keyPrefix namespaces log entries. The sequence number is zero-padded
// so lexicographic key order equals append order.
const keyPrefix = "event:"

// Store is a durable append-only interaction log on BadgerDB.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger

	// mu serializes appends; reads go through Badger snapshots and do
	// not take it.
	mu   sync.Mutex
	seq  uint64
	size atomic.Int64
}

// Open opens (or creates) the log store in dir. Existing entries are
// counted so Append totals continue across restarts.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(dir string, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.SyncWrites = true
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, &recommend.PersistenceError{Op: "open", Err: err}
	}

	s := &Store{db: db, logger: logger.With().Str("component", "eventlog").Logger()}

	// Recover the sequence counter and entry count from disk.
	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		var count int64
		var lastSeq uint64
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
			if _, err := fmt.Sscanf(string(it.Item().Key()), keyPrefix+"%020d", &lastSeq); err != nil {
				s.logger.Warn().Str("key", string(it.Item().Key())).Msg("unparseable log key, skipping for sequence recovery")
			}
		}
		s.seq = lastSeq
		s.size.Store(count)
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, &recommend.PersistenceError{Op: "scan", Err: err}
	}

	s.logger.Info().
		Str("dir", dir).
		Int64("entries", s.size.Load()).
		Msg("interaction log opened")
	return s, nil
}

// Append durably stores one interaction and returns the log's total
// entry count after the write.
func (s *Store) Append(_ context.Context, in recommend.Interaction) (int, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return 0, &recommend.PersistenceError{Op: "encode", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := []byte(fmt.Sprintf(keyPrefix+"%020d", s.seq+1))
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return 0, &recommend.PersistenceError{Op: "append", Err: err}
	}

	s.seq++
	total := int(s.size.Add(1))
	return total, nil
}

// ReadAll returns every logged interaction in append order. Entries that
// fail to decode are skipped with a warning; they never abort a build.
func (s *Store) ReadAll(_ context.Context) ([]recommend.Interaction, error) {
	var out []recommend.Interaction

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				var in recommend.Interaction
				if err := json.Unmarshal(val, &in); err != nil {
					s.logger.Warn().Err(err).Str("key", string(item.Key())).Msg("skipping undecodable log entry")
					return nil
				}
				out = append(out, in)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &recommend.PersistenceError{Op: "read", Err: err}
	}

	return out, nil
}

// Count returns the number of logged entries.
func (s *Store) Count() (int, error) {
	return int(s.size.Load()), nil
}

// Close shuts the store down.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return &recommend.PersistenceError{Op: "close", Err: err}
	}
	return nil
}

// Ensure interface compliance.
var _ recommend.InteractionLog = (*Store)(nil)
