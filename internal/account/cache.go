package account

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/KubeRPG_Go/internal/domain"
)

// CacheConfig sizes the account read cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the standard cache sizing
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// cachedAccountEntry wraps an account with version metadata for cache invalidation
type cachedAccountEntry struct {
	Version  string          `json:"version"`
	Account  *domain.Account `json:"account"`
	CachedAt time.Time       `json:"cached_at"`
}

// accountCache is an in-memory LRU cache for account lookups with
// time-based expiration and version-based invalidation.
// Entries are stored and returned as copies.
type accountCache struct {
	lru    *expirable.LRU[string, *cachedAccountEntry]
	hits   atomic.Int64
	misses atomic.Int64
}

func newAccountCache(cfg CacheConfig) *accountCache {
	if cfg.Size <= 0 {
		cfg.Size = DefaultCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	return &accountCache{
		lru: expirable.NewLRU[string, *cachedAccountEntry](cfg.Size, nil, cfg.TTL),
	}
}

// Get returns (account, true) if found and the version matches.
// Entries with a stale version are dropped.
func (c *accountCache) Get(pseudonym string) (*domain.Account, bool) {
	entry, found := c.lru.Get(pseudonym)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(pseudonym)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return entry.Account.Clone(), true
}

// Set stores a copy of acc with the current schema version
func (c *accountCache) Set(acc *domain.Account) {
	c.lru.Add(acc.Pseudonym, &cachedAccountEntry{
		Version:  CacheSchemaVersion,
		Account:  acc.Clone(),
		CachedAt: time.Now(),
	})
}

// Invalidate removes an account from the cache
func (c *accountCache) Invalidate(pseudonym string) {
	c.lru.Remove(pseudonym)
}

// Clear removes all entries from the cache
func (c *accountCache) Clear() {
	c.lru.Purge()
}

// GetStats reports hit and miss counts
func (c *accountCache) GetStats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}
