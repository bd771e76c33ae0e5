package planner

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rcliao/cropcal/internal/model"
)

// Cache holds assembled plans for the life of the process. Entries are written
// once and never evicted or expired, so a cached plan keeps the progress
// pointer computed when it was first assembled.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*model.Plan

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats is a snapshot of cache counters.
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*model.Plan)}
}

// CacheKey returns the cache key of a query: language, season, crop and
// variety, lower-cased and joined.
func CacheKey(q model.PlanQuery) string {
	lang := q.Language
	if lang == "" {
		lang = model.LanguageSource
	}
	return strings.ToLower(strings.Join([]string{string(lang), q.Season, q.Crop, q.Variety}, ":"))
}

// Get returns the plan stored under key.
func (c *Cache) Get(key string) (*model.Plan, bool) {
	c.mu.RLock()
	p, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return p, ok
}

// Put stores plan under key unless the key is already populated, and returns
// the plan now held for key.
func (c *Cache) Put(key string, plan *model.Plan) *model.Plan {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = plan
	return plan
}

// Len returns the number of cached plans.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the current counters.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
