// Package cache provides a thread-safe generic map and the rendered quote cache.
package cache

import (
	"html/template"
	"sort"
	"sync"
)

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Keys returns the keys in unspecified order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]K, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	return keys
}

// SortedKeys returns the keys of a string-keyed cache in ascending order.
func SortedKeys[V any](c *Cache[string, V]) []string {
	keys := c.Keys()
	sort.Strings(keys)
	return keys
}

// Rendered quote HTML, keyed by the content hash of the quote text.
var renderedQuoteCache = NewCache[string, template.HTML]()

func GetRenderedQuote(contentHash string) (template.HTML, bool) {
	return renderedQuoteCache.Get(contentHash)
}

func SetRenderedQuote(contentHash string, html template.HTML) {
	renderedQuoteCache.Set(contentHash, html)
}

func ClearRenderedQuoteCache() {
	renderedQuoteCache.Clear()
}
