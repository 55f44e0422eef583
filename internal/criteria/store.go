// Package criteria keeps per-requester collection settings. The store is the
// explicit, injectable replacement for ambient per-user state: it is keyed by
// the requester's Telegram ID and lives for the process lifetime.
package criteria

import (
	"sync"

	"groupscout/pkg/scrape"
)

// Store holds collection criteria per requester.
type Store interface {
	// Get returns the requester's criteria, creating defaults on first use.
	Get(requesterID int64) scrape.Criteria

	// Update applies fn to the requester's criteria under the store's lock
	// and returns the new value.
	Update(requesterID int64, fn func(*scrape.Criteria)) scrape.Criteria
}

// MemoryStore is the in-memory Store implementation.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[int64]scrape.Criteria
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[int64]scrape.Criteria)}
}

// Get implements Store.
func (s *MemoryStore) Get(requesterID int64) scrape.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(requesterID)
}

// Update implements Store.
func (s *MemoryStore) Update(requesterID int64, fn func(*scrape.Criteria)) scrape.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.get(requesterID)
	fn(&c)
	s.entries[requesterID] = c
	return c
}

func (s *MemoryStore) get(requesterID int64) scrape.Criteria {
	c, ok := s.entries[requesterID]
	if !ok {
		c = scrape.DefaultCriteria()
		s.entries[requesterID] = c
	}
	return c
}
