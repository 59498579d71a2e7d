package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryBlacklist is an in-process Blacklist used by tests and by
// local development without a redis instance. Expired entries are
// dropped lazily on lookup.
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		entries: map[string]time.Time{},
		now:     time.Now,
	}
}

// SetClock replaces the wall clock, letting tests cross TTL boundaries
// without sleeping.
func (m *MemoryBlacklist) SetClock(now func() time.Time) {
	m.mu.Lock()
	m.now = now
	m.mu.Unlock()
}

func (m *MemoryBlacklist) Add(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	m.mu.Lock()
	m.entries[key] = m.now().Add(ttl)
	m.mu.Unlock()
	return nil
}

func (m *MemoryBlacklist) Contains(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	if m.now().After(expiry) {
		delete(m.entries, key)
		return false, nil
	}
	return true, nil
}
