package climate

import (
	"context"
	"sync"
)

// CachedSource wraps a Source with an in-memory LRU cache. Only successful
// lookups are cached, so a site added to the backing store later is found.
type CachedSource struct {
	inner Source
	cache *lruCache
}

// NewCachedSource creates a cache decorator around a source.
func NewCachedSource(inner Source, maxEntries int) *CachedSource {
	return &CachedSource{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedSource) Lookup(ctx context.Context, siteID string) (Site, error) {
	if site, ok := c.cache.get(siteID); ok {
		return site, nil
	}
	site, err := c.inner.Lookup(ctx, siteID)
	if err != nil {
		return site, err
	}
	c.cache.put(siteID, site)
	return site, nil
}

// lruCache is a small thread-safe LRU cache of sites.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value Site
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (Site, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Site{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value Site) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
