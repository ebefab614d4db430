package filter

import (
	"container/list"
	"sync"
)

// lruCache is a thread-safe LRU of compiled expressions keyed by source text
type lruCache struct {
	size      int
	evictList *list.List
	items     map[string]*list.Element
	mu        sync.Mutex
}

type cacheEntry struct {
	key   string
	value *Expression
}

func newLRUCache(size int) *lruCache {
	return &lruCache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element),
	}
}

// Get retrieves an expression and marks it most recently used
func (c *lruCache) Get(key string) (*Expression, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, exists := c.items[key]
	if !exists {
		return nil, false
	}
	c.evictList.MoveToFront(node)
	return node.Value.(*cacheEntry).value, true
}

// Put adds or updates an expression, evicting the oldest when full
func (c *lruCache) Put(key string, value *Expression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, exists := c.items[key]; exists {
		c.evictList.MoveToFront(node)
		node.Value.(*cacheEntry).value = value
		return
	}

	c.items[key] = c.evictList.PushFront(&cacheEntry{key: key, value: value})

	if c.evictList.Len() > c.size {
		if oldest := c.evictList.Back(); oldest != nil {
			c.evictList.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Clear removes all items from the cache
func (c *lruCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.evictList.Init()
}

// Size returns the number of items in the cache
func (c *lruCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.evictList.Len()
}
