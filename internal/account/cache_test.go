package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/KubeRPG_Go/internal/domain"
)

func TestCacheInvalidation(t *testing.T) {
	cache := newAccountCache(CacheConfig{Size: 10, TTL: time.Minute})
	acc := domain.NewAccount("alice", "#fff")

	cache.Set(acc)

	got, found := cache.Get("alice")
	require.True(t, found)
	assert.Equal(t, acc.Pseudonym, got.Pseudonym)

	cache.Invalidate("alice")

	got, found = cache.Get("alice")
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestCache_ReturnsCopies(t *testing.T) {
	cache := newAccountCache(CacheConfig{Size: 10, TTL: time.Minute})
	acc := domain.NewAccount("alice", "")
	cache.Set(acc)

	acc.Inventory = nil
	got, _ := cache.Get("alice")
	got.Inventory[0].Power = 99

	again, _ := cache.Get("alice")
	require.Len(t, again.Inventory, 2)
	assert.Equal(t, domain.StarterSwordPower, again.Inventory[0].Power)
}

func TestCache_VersionMismatchEvicts(t *testing.T) {
	cache := newAccountCache(CacheConfig{Size: 10, TTL: time.Minute})
	cache.lru.Add("alice", &cachedAccountEntry{Version: "0.9", Account: domain.NewAccount("alice", "")})

	_, found := cache.Get("alice")
	assert.False(t, found)
	assert.Equal(t, 0, cache.GetStats().Size)
}

func TestCache_Expires(t *testing.T) {
	cache := newAccountCache(CacheConfig{Size: 10, TTL: 20 * time.Millisecond})
	cache.Set(domain.NewAccount("alice", ""))

	assert.Eventually(t, func() bool {
		_, found := cache.Get("alice")
		return !found
	}, time.Second, 10*time.Millisecond)
}

func TestCacheStats(t *testing.T) {
	cache := newAccountCache(DefaultCacheConfig())

	stats := cache.GetStats()
	assert.Equal(t, int64(0), stats.Hits)
	assert.Equal(t, int64(0), stats.Misses)

	cache.Get("nobody")
	cache.Set(domain.NewAccount("alice", ""))
	cache.Get("alice")

	stats = cache.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 1, stats.Size)

	cache.Clear()
	assert.Equal(t, 0, cache.GetStats().Size)
}
