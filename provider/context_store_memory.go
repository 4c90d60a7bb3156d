package provider

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process ContextStore with lazy TTL expiration.
type MemoryStore[C any] struct {
	mu    sync.RWMutex
	items map[string]memEntry[C]
	now   func() time.Time
}

type memEntry[C any] struct {
	val       *C
	expiresAt time.Time
}

func (e memEntry[C]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore[C any]() *MemoryStore[C] {
	return &MemoryStore[C]{
		items: make(map[string]memEntry[C]),
		now:   time.Now,
	}
}

// Load implements ContextStore.
func (s *MemoryStore[C]) Load(_ context.Context, key string) (*C, error) {
	s.mu.RLock()
	entry, ok := s.items[key]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if entry.expired(s.now()) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, nil
	}
	return entry.val, nil
}

// Save implements ContextStore.
func (s *MemoryStore[C]) Save(_ context.Context, key string, val *C, ttl time.Duration) error {
	entry := memEntry[C]{val: val}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = entry
	return nil
}

// Delete implements ContextStore.
func (s *MemoryStore[C]) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Purge drops expired entries and returns how many were removed.
func (s *MemoryStore[C]) Purge() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, entry := range s.items {
		if entry.expired(now) {
			delete(s.items, key)
			n++
		}
	}
	return n
}

// Len returns the number of entries, including expired ones not yet purged.
func (s *MemoryStore[C]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

var _ ContextStore[any] = (*MemoryStore[any])(nil)
