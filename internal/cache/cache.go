// Package cache memoizes derived views by a content hash of their inputs.
//
// Keys are derived from the inputs themselves, so an entry never goes stale: when the
// underlying data changes the key changes with it and the old entry is simply never read
// again. A miss is always safe, callers just recompute.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
)

// Cache stores opaque values by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Key hashes the JSON encoding of inputs into a namespaced cache key.
func Key(namespace string, inputs any) (string, error) {
	raw, err := json.Marshal(inputs)
	if err != nil {
		return "", fmt.Errorf("cache key %s: %w", namespace, err)
	}
	sum := sha256.Sum256(raw)
	return "golf-cup:" + namespace + ":" + hex.EncodeToString(sum[:]), nil
}

// DefaultMemoryEntries bounds the in-process cache.
const DefaultMemoryEntries = 512

// Memory is an in-process Cache. When full it drops every entry and starts over,
// which is enough for content-addressed values that are cheap to rebuild.
type Memory struct {
	mu    sync.RWMutex
	items map[string][]byte
	max   int
}

// NewMemory returns a Memory cache holding at most max entries (DefaultMemoryEntries if max <= 0).
func NewMemory(max int) *Memory {
	if max <= 0 {
		max = DefaultMemoryEntries
	}
	return &Memory{items: make(map[string][]byte), max: max}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[key]; !ok && len(m.items) >= m.max {
		m.items = make(map[string][]byte, m.max)
	}
	m.items[key] = value
	return nil
}

// Len reports the number of cached entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
