// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache implements a small random-replacement memo for pure
// computations, such as compiled layouts and walked year offsets.
package cache

import (
	"sync"
)

// DefaultSize is the default number of entries kept by a Cache.
const DefaultSize = 1 << 10

// Cache memoizes the results of a pure function of K. When it holds more than
// MaxSize entries, arbitrary entries are evicted. As the memoized function is
// pure, eviction is never observable except as a recomputation.
//
// Its zero value is safe to use. It is safe for concurrent use.
type Cache[K comparable, V any] struct {
	// MaxSize is the maximum number of entries. If it is zero, DefaultSize is
	// used.
	//
	// MaxSize is not safe to mutate concurrently with calls to Get.
	MaxSize int

	mu sync.RWMutex
	m  map[K]V
}

// Get returns the value associated with k, using fill to compute it if it is
// missing. fill may be called concurrently for the same key; only one result
// is kept.
func (c *Cache[K, V]) Get(k K, fill func(K) V) V {
	c.mu.RLock()
	if v, ok := c.m[k]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	nv := fill(k)

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.m[k]; ok {
		// another goroutine filled the cache in the meantime
		return v
	}
	if c.m == nil {
		c.m = make(map[K]V)
	}
	limit := c.MaxSize
	if limit <= 0 {
		limit = DefaultSize
	}
	for old := range c.m {
		if len(c.m) < limit {
			break
		}
		delete(c.m, old)
	}
	c.m[k] = nv
	return nv
}

// Len returns the number of memoized entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
