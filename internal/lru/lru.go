// Package lru provides a small bounded cache for derived lookup tables.
package lru

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a mutex guarded least-recently-used cache.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
}

// New creates a cache holding at most capacity entries.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache[K, V]{
		capacity: capacity,
		items:    map[K]*list.Element{},
		order:    list.New(),
	}
}

// Get returns the cached value and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// GetOrCreate returns the cached value or computes, stores and returns a new one.
// create runs outside the lock; when two callers race the first stored value wins.
func (c *Cache[K, V]) GetOrCreate(key K, create func(K) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := create(key)
	if err != nil {
		return v, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(entry[K, V]).value, nil
	}
	c.items[key] = c.order.PushFront(entry[K, V]{key: key, value: v})
	c.evict()
	return v, nil
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *Cache[K, V]) evict() {
	for c.order.Len() > c.capacity {
		last := c.order.Back()
		if last == nil {
			return
		}
		c.order.Remove(last)
		delete(c.items, last.Value.(entry[K, V]).key)
	}
}
