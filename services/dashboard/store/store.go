// Copyright (C) 2026 Sonorous Guardian
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/SonorousGuardian/risk-management-dashboard/services/dashboard/datatypes"
)

// ErrRiskNotFound is returned when a risk identifier does not resolve to
// an existing record. The transport layer maps it to a 404.
var ErrRiskNotFound = errors.New("risk not found")

// riskKeyPrefix namespaces risk records in the key space so other record
// types can share the database later.
const riskKeyPrefix = "risk:"

func riskKey(riskID string) []byte {
	return []byte(riskKeyPrefix + riskID)
}

// RiskStore is the persistent risk register.
//
// Records are keyed by their human-facing RiskID, which is also the
// upsert key for ingestion. All reads used for aggregation go through
// List, which produces one consistent snapshot inside a single read
// transaction.
type RiskStore struct {
	db  *badger.DB
	now func() time.Time
}

// Open opens a RiskStore backed by BadgerDB at cfg.Path.
func Open(cfg Config) (*RiskStore, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	return &RiskStore{db: db, now: time.Now}, nil
}

// OpenInMemory opens a throwaway in-memory store for tests.
func OpenInMemory() (*RiskStore, error) {
	return Open(Config{InMemory: true})
}

// Close releases the underlying database.
func (s *RiskStore) Close() error {
	return s.db.Close()
}

// List returns a snapshot of every risk in the register, ordered by
// RiskID. The snapshot is taken inside one read transaction, so the
// aggregators downstream see an internally consistent register.
func (s *RiskStore) List() ([]datatypes.Risk, error) {
	var risks []datatypes.Risk
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(riskKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var r datatypes.Risk
				if err := json.Unmarshal(val, &r); err != nil {
					return fmt.Errorf("decode risk %s: %w", it.Item().Key(), err)
				}
				risks = append(risks, r)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(risks, func(i, j int) bool { return risks[i].RiskID < risks[j].RiskID })
	return risks, nil
}

// Count returns the number of risks without decoding record bodies.
func (s *RiskStore) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(riskKeyPrefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Get fetches one risk by its RiskID. Returns ErrRiskNotFound when no
// record exists.
func (s *RiskStore) Get(riskID string) (datatypes.Risk, error) {
	var r datatypes.Risk
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(riskKey(riskID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrRiskNotFound, riskID)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	return r, err
}

// update runs fn in an Update transaction, retrying on transaction
// conflicts. Badger detects write conflicts with SSI and aborts the
// later transaction; retrying makes concurrent toggles on the same key
// serialize with the second writer observing the first's result.
func (s *RiskStore) update(fn func(txn *badger.Txn) error) error {
	// A transaction conflicts at most once per concurrently committed
	// writer, so the bound caps tolerated write concurrency per key.
	const maxAttempts = 10
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

// Upsert writes a risk by RiskID. When a record with the same RiskID
// already exists its mutable fields are overwritten and the derived
// score recomputed; otherwise a new record is created with a fresh
// internal ID. Returns true when the record was created.
//
// The read and write happen inside one Update transaction, so the
// derived-score invariant cannot be broken by a concurrent writer.
func (s *RiskStore) Upsert(incoming datatypes.Risk) (datatypes.Risk, bool, error) {
	if incoming.RiskID == "" {
		return datatypes.Risk{}, false, errors.New("risk_id is required")
	}

	now := s.now()
	created := false
	var saved datatypes.Risk

	err := s.update(func(txn *badger.Txn) error {
		key := riskKey(incoming.RiskID)
		item, err := txn.Get(key)
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			created = true
			saved = incoming
			saved.ID = uuid.NewString()
			saved.CreatedAt = now
		case err != nil:
			return err
		default:
			var existing datatypes.Risk
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &existing)
			}); err != nil {
				return err
			}
			saved = incoming
			// Identity fields are immutable after creation.
			saved.ID = existing.ID
			saved.CreatedAt = existing.CreatedAt
		}

		saved.Recalculate(now)
		if !incoming.LastUpdated.IsZero() {
			saved.LastUpdated = incoming.LastUpdated
		}

		buf, err := json.Marshal(saved)
		if err != nil {
			return fmt.Errorf("encode risk %s: %w", saved.RiskID, err)
		}
		return txn.Set(key, buf)
	})
	if err != nil {
		return datatypes.Risk{}, false, err
	}
	return saved, created, nil
}

// ToggleMitigation flips the IsMitigated flag of one risk and bumps
// LastUpdated. The read-modify-write happens in a single Update
// transaction: there is no lost-update window, and Badger aborts one of
// two conflicting transactions so concurrent toggles serialize.
//
// The toggle does not touch Status; the two fields are decoupled.
func (s *RiskStore) ToggleMitigation(riskID string) (datatypes.Risk, error) {
	var toggled datatypes.Risk
	err := s.update(func(txn *badger.Txn) error {
		key := riskKey(riskID)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrRiskNotFound, riskID)
		}
		if err != nil {
			return err
		}
		var r datatypes.Risk
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		}); err != nil {
			return err
		}

		r.IsMitigated = !r.IsMitigated
		r.LastUpdated = s.now()

		buf, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode risk %s: %w", riskID, err)
		}
		if err := txn.Set(key, buf); err != nil {
			return err
		}
		toggled = r
		return nil
	})
	if err != nil {
		return datatypes.Risk{}, err
	}
	return toggled, nil
}
