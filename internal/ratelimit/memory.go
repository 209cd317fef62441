package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count   int64
	expires time.Time
}

// MemoryStore is a process-local Store for tests, development, and
// single-instance deployments. State is not shared across replicas.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return 0, false, nil
	}
	if s.now().After(entry.expires) {
		delete(s.entries, key)
		return 0, false, nil
	}
	return entry.count, true, nil
}

func (s *MemoryStore) IncrWithTTL(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || s.now().After(entry.expires) {
		entry = memoryEntry{}
	}
	entry.count++
	entry.expires = s.now().Add(ttl)
	s.entries[key] = entry
	return entry.count, nil
}

func (s *MemoryStore) TTL(_ context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return 0, nil
	}
	ttl := entry.expires.Sub(s.now())
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
