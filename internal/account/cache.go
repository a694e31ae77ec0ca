package account

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/saofrance/shop-api/internal/domain"
)

// CacheSchemaVersion is bumped whenever PublicProfile changes shape
const CacheSchemaVersion = "1"

type cachedProfile struct {
	version string
	profile *domain.PublicProfile
}

// profileCache holds public profiles keyed by account id
type profileCache struct {
	lru *expirable.LRU[string, cachedProfile]
}

func newProfileCache(size int, ttl time.Duration) *profileCache {
	if size <= 0 {
		size = DefaultProfileCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultProfileCacheTTL
	}
	return &profileCache{lru: expirable.NewLRU[string, cachedProfile](size, nil, ttl)}
}

func (c *profileCache) Get(accountID string) (*domain.PublicProfile, bool) {
	entry, ok := c.lru.Get(accountID)
	if !ok {
		return nil, false
	}
	if entry.version != CacheSchemaVersion {
		c.lru.Remove(accountID)
		return nil, false
	}
	return entry.profile, true
}

func (c *profileCache) Set(accountID string, p *domain.PublicProfile) {
	c.lru.Add(accountID, cachedProfile{version: CacheSchemaVersion, profile: p})
}

func (c *profileCache) Invalidate(accountID string) {
	c.lru.Remove(accountID)
}
