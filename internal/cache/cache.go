// Package cache holds the last successfully fetched digest per calendar day.
// Entries are in-memory only and live for the session; the working set is
// dozens of days at most, so there is no eviction. Staleness is the
// orchestrator's concern, not the cache's.
package cache

import (
	"sync"

	"github.com/phishwise/phishwise/internal/news"
)

type Store struct {
	mu      sync.RWMutex
	digests map[news.Date]*news.Digest
}

func NewStore() *Store {
	return &Store{digests: make(map[news.Date]*news.Digest)}
}

// Get returns the cached digest for the date, if any.
func (s *Store) Get(date news.Date) (*news.Digest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.digests[date]
	return d, ok
}

// Put stores the digest under its own reported date, replacing any prior
// entry wholesale. A later fetch for the same date is the more authoritative
// one. Entries are treated as immutable once stored.
func (s *Store) Put(d *news.Digest) {
	if d == nil || d.Date == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.digests[d.Date] = d
}

// Has reports whether a digest is cached for the date.
func (s *Store) Has(date news.Date) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.digests[date]
	return ok
}

// Len returns the number of cached days.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.digests)
}
