package news

import (
	"sync"
	"time"

	"medverify/internal/domain/entity"
	"medverify/internal/observability/metrics"
)

// DefaultCacheTTL is how long fetched articles stay fresh.
const DefaultCacheTTL = 300 * time.Second

// cacheKey identifies one cached fetch. Requests for the same source
// with different limits are cached independently.
type cacheKey struct {
	Source string
	Limit  int
}

type cacheEntry struct {
	articles  []entity.NewsArticle
	expiresAt time.Time
}

// Cache is an in-memory TTL cache for fetched news articles.
//
// Thread safety: Cache is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given TTL. Pass ttl as 0 to use
// DefaultCacheTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached articles for (source, limit) if still fresh.
func (c *Cache) Get(source string, limit int) ([]entity.NewsArticle, bool) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey{Source: source, Limit: limit}]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		metrics.RecordNewsCacheMiss()
		return nil, false
	}

	metrics.RecordNewsCacheHit()
	return entry.articles, true
}

// Set stores articles for (source, limit) with a fresh TTL.
func (c *Cache) Set(source string, limit int, articles []entity.NewsArticle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{Source: source, Limit: limit}] = cacheEntry{
		articles:  articles,
		expiresAt: c.now().Add(c.ttl),
	}
}
