package state

import (
	"sync"

	"github.com/therewillbecode/Fae-1/ids"
)

// Storage is the mapping from transaction ID to transaction entry named
// in spec.md §3. It is safe for concurrent use.
type Storage struct {
	mu      sync.Mutex
	entries map[ids.TransactionID]*Entry
}

// NewStorage builds an empty Storage.
func NewStorage() *Storage {
	return &Storage{entries: map[ids.TransactionID]*Entry{}}
}

// Get returns the entry committed under tx, if any.
func (s *Storage) Get(tx ids.TransactionID) (*Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[tx]
	return e, ok
}

// Commit installs e under tx. Called exactly once per transaction, with
// either a successful Entry (New) or a poisoned one (Poisoned), per
// spec.md §4's exception-safety rule.
func (s *Storage) Commit(tx ids.TransactionID, e *Entry) {
	s.mu.Lock()
	s.entries[tx] = e
	s.mu.Unlock()
}
