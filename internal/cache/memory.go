package cache

import (
	"context"
	"sync"
	"time"
)

const defaultMaxItems = 1000

// Memory is an in-process Store with per-item TTL. It is the default when
// no Redis address is configured, and the backend used in tests.
type Memory struct {
	mu       sync.RWMutex
	items    map[string]memoryItem
	maxItems int
}

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// NewMemory creates a new in-process cache.
func NewMemory() *Memory {
	m := &Memory{
		items:    make(map[string]memoryItem),
		maxItems: defaultMaxItems,
	}

	go m.cleanup()

	return m
}

// Get retrieves an item from the cache.
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[key]
	if !ok {
		return "", false
	}

	if time.Now().After(item.expiresAt) {
		return "", false
	}

	return item.value, true
}

// Set stores an item in the cache.
func (m *Memory) Set(_ context.Context, key string, value string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) >= m.maxItems {
		m.evictOldest()
	}

	m.items[key] = memoryItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Len returns the number of items in the cache.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// evictOldest removes expired items, then the oldest 10% if still at
// capacity (must be called with lock held).
func (m *Memory) evictOldest() {
	now := time.Now()
	for key, item := range m.items {
		if now.After(item.expiresAt) {
			delete(m.items, key)
		}
	}

	if len(m.items) >= m.maxItems {
		toRemove := m.maxItems / 10
		if toRemove < 1 {
			toRemove = 1
		}

		var oldest []string
		var oldestTimes []time.Time

		for key, item := range m.items {
			if len(oldest) < toRemove {
				oldest = append(oldest, key)
				oldestTimes = append(oldestTimes, item.expiresAt)
			} else {
				for i, t := range oldestTimes {
					if item.expiresAt.Before(t) {
						oldest[i] = key
						oldestTimes[i] = item.expiresAt
						break
					}
				}
			}
		}

		for _, key := range oldest {
			delete(m.items, key)
		}
	}
}

// cleanup periodically removes expired items.
func (m *Memory) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()
		for key, item := range m.items {
			if now.After(item.expiresAt) {
				delete(m.items, key)
			}
		}
		m.mu.Unlock()
	}
}
