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
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time { return c.t }

func newTestCache() (*MemoryCache[string], *clock) {
	clk := &clock{t: time.Unix(1_700_000_000, 0)}
	c := NewMemoryCache[string]()
	c.now = clk.now
	return c, clk
}

func TestMemoryCache(t *testing.T) {
	t.Run("SetAndGet", func(t *testing.T) {
		c, clk := newTestCache()
		c.Set("key1", "value1", time.Minute)
		v, ok := c.Get("key1")
		assert.True(t, ok)
		assert.Equal(t, "value1", v)

		c.Set("key2", "value2", time.Second)
		clk.t = clk.t.Add(2 * time.Second)
		_, ok = c.Get("key2")
		assert.False(t, ok)
		assert.True(t, c.Has("key1"))
	})

	t.Run("NoExpiration", func(t *testing.T) {
		c, clk := newTestCache()
		c.Set("key", "value", 0)
		clk.t = clk.t.Add(24 * time.Hour)
		assert.True(t, c.Has("key"))
	})

	t.Run("Delete", func(t *testing.T) {
		c, _ := newTestCache()
		c.Set("key1", "value1", time.Minute)
		c.Delete("key1")
		assert.False(t, c.Has("key1"))
	})

	t.Run("DeleteByPrefix", func(t *testing.T) {
		c, _ := newTestCache()
		c.Set("label:a", "1", 0)
		c.Set("label:b", "2", 0)
		c.Set("other", "3", 0)
		c.DeleteByPrefix("label:")
		assert.False(t, c.Has("label:a"))
		assert.False(t, c.Has("label:b"))
		assert.True(t, c.Has("other"))
	})

	t.Run("DeleteExpired", func(t *testing.T) {
		c, clk := newTestCache()
		c.Set("short", "1", time.Second)
		c.Set("long", "2", time.Hour)
		c.Set("forever", "3", 0)
		clk.t = clk.t.Add(time.Minute)
		c.DeleteExpired()
		assert.Equal(t, 2, c.Len())
		assert.False(t, c.Has("short"))
	})

	t.Run("GetOrCompute", func(t *testing.T) {
		c, clk := newTestCache()
		var calls int32
		compute := func() string {
			atomic.AddInt32(&calls, 1)
			return "computed"
		}
		assert.Equal(t, "computed", c.GetOrCompute("k", time.Minute, compute))
		assert.Equal(t, "computed", c.GetOrCompute("k", time.Minute, compute))
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

		clk.t = clk.t.Add(2 * time.Minute)
		c.GetOrCompute("k", time.Minute, compute)
		assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	})

	t.Run("GetOrComputeConcurrent", func(t *testing.T) {
		c := NewMemoryCache[int]()
		var calls int32
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v := c.GetOrCompute("k", 0, func() int {
					atomic.AddInt32(&calls, 1)
					return 42
				})
				assert.Equal(t, 42, v)
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("GC", func(t *testing.T) {
		c, _ := newTestCache()
		require.NoError(t, c.StartGC("@every 1m"))
		require.NoError(t, c.StartGC("@every 1m"))
		c.StopGC()
		c.StopGC()
		assert.Error(t, c.StartGC("not a spec"))
	})
}
