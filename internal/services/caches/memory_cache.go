package caches

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process ListingCache with per-entry TTL.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates a MemoryCache whose entries expire after ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (mc *MemoryCache) Name() string {
	return "MEMORY"
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	entry, ok := mc.entries[key]
	mc.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		mc.mu.Lock()
		delete(mc.entries, key)
		mc.mu.Unlock()
		return nil, false
	}
	return entry.data, true
}

func (mc *MemoryCache) Set(_ context.Context, key string, data []byte) {
	mc.mu.Lock()
	mc.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(mc.ttl)}
	mc.mu.Unlock()
}

func (mc *MemoryCache) Invalidate(_ context.Context, key string) {
	mc.mu.Lock()
	delete(mc.entries, key)
	mc.mu.Unlock()
}
