// Package inventory owns the shared chip inventory. The engine in
// internal/chips only ever sees read-only snapshots; this package is the
// single synchronization point for replacing counts between computations.
package inventory

import (
	"fmt"
	"sync"

	"github.com/lox/chipflow/internal/chips"
)

// Store holds the process-wide chip counts behind a lock. Snapshots are
// copies, so a computation that already started is never affected by a
// concurrent Replace.
type Store struct {
	mu     sync.RWMutex
	counts chips.Inventory
}

// NewStore creates a store seeded with the given counts. The input is
// copied; the caller keeps ownership of its map.
func NewStore(counts chips.Inventory) *Store {
	return &Store{counts: counts.Clone()}
}

// Default returns the stock inventory of a standard 500-piece chip case.
func Default() chips.Inventory {
	return chips.Inventory{1: 150, 5: 150, 25: 100, 100: 50, 500: 25, 1000: 25}
}

// Snapshot returns an independent copy of the current counts.
func (s *Store) Snapshot() chips.Inventory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts.Clone()
}

// Replace swaps the inventory wholesale. There is no merge: denominations
// absent from the new map are gone afterwards. Unknown denominations and
// negative counts are rejected and leave the store untouched.
func (s *Store) Replace(counts chips.Inventory) error {
	for d, count := range counts {
		if !chips.IsStandardDenomination(d) {
			return fmt.Errorf("unknown chip denomination: %d", d)
		}
		if count < 0 {
			return fmt.Errorf("chip count for denomination %d cannot be negative", d)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts = counts.Clone()
	return nil
}

// TotalValue returns the monetary worth of the whole inventory in chip
// units.
func (s *Store) TotalValue() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts.TotalValue()
}
