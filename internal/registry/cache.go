package registry

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	info      TokenInfo
	expiresAt time.Time
}

// CachedLookup serves repeated registry lookups from memory for ttl.
// Only successful lookups are cached.
type CachedLookup struct {
	next Lookup
	ttl  time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCachedLookup wraps next with a TTL cache.
func NewCachedLookup(next Lookup, ttl time.Duration) *CachedLookup {
	return &CachedLookup{
		next:    next,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedLookup) TokenInfo(ctx context.Context, tokenID string) (TokenInfo, error) {
	if info, ok := c.get(tokenID); ok {
		return info, nil
	}

	info, err := c.next.TokenInfo(ctx, tokenID)
	if err != nil {
		return TokenInfo{}, err
	}
	c.set(tokenID, info)
	return info, nil
}

func (c *CachedLookup) get(key string) (TokenInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return TokenInfo{}, false
	}
	return entry.info, true
}

func (c *CachedLookup) set(key string, info TokenInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		info:      info,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Sweep removes expired entries and returns how many were removed.
func (c *CachedLookup) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
