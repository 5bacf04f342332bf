package useragent

import (
	"container/list"
	"sync"
)

type cacheKey struct {
	ua       string
	fillNone bool
}

type cacheEntry struct {
	key    cacheKey
	result *Result
}

// resultCache is a bounded LRU of classification results keyed by the input
// string and the fill-none flag. Stored results are never handed out directly.
type resultCache struct {
	capacity int
	items    map[cacheKey]*list.Element
	eviction *list.List
	mu       sync.Mutex
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		capacity: capacity,
		items:    make(map[cacheKey]*list.Element, capacity),
		eviction: list.New(),
	}
}

func (c *resultCache) get(key cacheKey) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.eviction.MoveToFront(elem)
	return elem.Value.(*cacheEntry).result.Clone(), true
}

func (c *resultCache) put(key cacheKey, res *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		elem.Value.(*cacheEntry).result = res.Clone()
		return
	}

	c.items[key] = c.eviction.PushFront(&cacheEntry{key: key, result: res.Clone()})
	if c.eviction.Len() > c.capacity {
		oldest := c.eviction.Back()
		c.eviction.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}
