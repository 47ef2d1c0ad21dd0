/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/robfig/cron/v3"
)

// MemoryCache is an in-memory cache with optional per-item expiration.
// It is safe for concurrent use and lock free on reads.
type MemoryCache[V any] struct {
	// We use xsync.MapOf instead of sync.Map since it is faster on the
	// read-mostly path and has generic types.
	items *xsync.MapOf[string, item[V]]
	// now is replaced in tests.
	now func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

// item is a cached value. expiration is a Unix nano timestamp, 0 never expires.
type item[V any] struct {
	value      V
	expiration int64
}

func (it item[V]) expired(now int64) bool {
	return it.expiration > 0 && now > it.expiration
}

// NewMemoryCache creates an empty cache. GC is not started automatically,
// call StartGC to purge expired items periodically.
func NewMemoryCache[V any]() *MemoryCache[V] {
	return &MemoryCache[V]{
		items: xsync.NewMapOf[string, item[V]](),
		now:   time.Now,
	}
}

func (c *MemoryCache[V]) expiration(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return c.now().Add(ttl).UnixNano()
}

// Set stores value under key. A ttl <= 0 never expires.
func (c *MemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.items.Store(key, item[V]{value: value, expiration: c.expiration(ttl)})
}

// Get returns the value for key if it is present and not expired.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	it, ok := c.items.Load(key)
	if !ok || it.expired(c.now().UnixNano()) {
		var zero V
		return zero, false
	}
	return it.value, true
}

// Has reports whether key is present and not expired.
func (c *MemoryCache[V]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// GetOrCompute returns the cached value for key, computing and storing it
// with the given ttl when it is missing or expired. Concurrent callers for the
// same key compute once.
func (c *MemoryCache[V]) GetOrCompute(key string, ttl time.Duration, compute func() V) V {
	now := c.now().UnixNano()
	if it, ok := c.items.Load(key); ok && !it.expired(now) {
		return it.value
	}
	it, _ := c.items.Compute(key, func(old item[V], loaded bool) (item[V], bool) {
		if loaded && !old.expired(now) {
			return old, false
		}
		return item[V]{value: compute(), expiration: c.expiration(ttl)}, false
	})
	return it.value
}

func (c *MemoryCache[V]) Delete(key string) {
	c.items.Delete(key)
}

// DeleteByPrefix removes all items whose key starts with prefix.
func (c *MemoryCache[V]) DeleteByPrefix(prefix string) {
	c.items.Range(func(k string, _ item[V]) bool {
		if strings.HasPrefix(k, prefix) {
			c.items.Delete(k)
		}
		return true
	})
}

// Len returns the number of stored items, expired ones included until GC runs.
func (c *MemoryCache[V]) Len() int {
	return c.items.Size()
}

// StartGC purges expired items on the given cron spec, e.g. "@every 1m".
// Calling it while GC is running is a no-op.
func (c *MemoryCache[V]) StartGC(spec string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		return nil
	}
	cr := cron.New()
	if _, err := cr.AddFunc(spec, c.DeleteExpired); err != nil {
		return err
	}
	cr.Start()
	c.cron = cr
	return nil
}

// StopGC stops the purge job. Safe to call multiple times.
func (c *MemoryCache[V]) StopGC() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		c.cron.Stop()
		c.cron = nil
	}
}

// DeleteExpired removes every expired item.
func (c *MemoryCache[V]) DeleteExpired() {
	now := c.now().UnixNano()
	c.items.Range(func(k string, _ item[V]) bool {
		// re-check under the bucket lock, the item may have been refreshed
		c.items.Compute(k, func(old item[V], loaded bool) (item[V], bool) {
			return old, !loaded || old.expired(now)
		})
		return true
	})
}
