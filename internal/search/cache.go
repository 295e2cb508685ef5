package search

import "sync"

// ScrapedMeta is the positive payload memoized for one scraped lookup.
type ScrapedMeta struct {
	Title        string
	Author       string
	Synopsis     string
	Rating       *float64
	RatingSource string
	Source       string
	Resource     Resource
}

// ScrapeCache memoizes the best scraped match per normalized query key. A
// hit carrying a nil meta is a negative entry: the lookup already ran and
// found nothing worth keeping, so repeat queries skip the network entirely.
type ScrapeCache interface {
	Get(key string) (meta *ScrapedMeta, ok bool)
	Put(key string, meta *ScrapedMeta)
}

// MemoryScrapeCache is the process-wide implementation, shared across
// in-flight searches. Entries are pure functions of the key, so a
// last-write-wins race between two searches is harmless.
type MemoryScrapeCache struct {
	mu      sync.RWMutex
	entries map[string]*ScrapedMeta
}

func NewMemoryScrapeCache() *MemoryScrapeCache {
	return &MemoryScrapeCache{entries: make(map[string]*ScrapedMeta)}
}

func (c *MemoryScrapeCache) Get(key string) (*ScrapedMeta, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	meta, ok := c.entries[key]
	return meta, ok
}

func (c *MemoryScrapeCache) Put(key string, meta *ScrapedMeta) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = meta
}
