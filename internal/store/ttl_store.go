// Package store provides the recently-seen key tracking used to
// deduplicate page views and content view counts. It is the server-side
// replacement for the browser's "recently viewed" local-storage maps: a
// key marked fresh within the TTL window suppresses the next write.
package store

import (
	"sync"
	"time"
)

// Marker is the dedup capability injected into the tracking services.
// Implementations must be safe for concurrent use.
type Marker interface {
	// Fresh reports whether the key was marked within the TTL window.
	Fresh(key string) bool
	// Mark records the key as seen now.
	Mark(key string)
}

// TTLStore is an in-memory Marker with a fixed freshness window and an
// optional background sweeper. Entries are also pruned lazily on read, so
// the sweeper only bounds memory, never correctness.
type TTLStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
	now     func() time.Time
}

// NewTTLStore creates a store whose keys stay fresh for ttl.
func NewTTLStore(ttl time.Duration) *TTLStore {
	return &TTLStore{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// WithNow overrides the clock, used by tests.
func (s *TTLStore) WithNow(now func() time.Time) *TTLStore {
	if now != nil {
		s.now = now
	}
	return s
}

// Fresh reports whether key was marked within the TTL window. An expired
// entry is removed on the way out.
func (s *TTLStore) Fresh(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	markedAt, ok := s.entries[key]
	if !ok {
		return false
	}
	if s.now().Sub(markedAt) >= s.ttl {
		delete(s.entries, key)
		return false
	}
	return true
}

// Mark records key as seen at the current time.
func (s *TTLStore) Mark(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = s.now()
}

// Len returns the number of tracked keys, expired or not.
func (s *TTLStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops expired entries and returns how many were removed.
func (s *TTLStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	cutoff := s.now()
	for key, markedAt := range s.entries {
		if cutoff.Sub(markedAt) >= s.ttl {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until the returned stop
// function is called.
func (s *TTLStore) StartSweeper(interval time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-stop:
				return
			}
		}
	}()
	return func() { close(stop) }
}
