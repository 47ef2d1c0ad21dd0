/*
 * Copyright 2024 The RuleGo Authors.
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

package filter

import (
	"time"

	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/utils/cache"
)

// Compiler memoizes Parse per distinct label text. Labels can change between
// events; a changed label is a different key, so a stale entry is never used
// for the new text.
type Compiler struct {
	ttl   time.Duration
	cache *cache.MemoryCache[Expression]
}

// NewCompiler creates a Compiler keeping parsed labels for ttl.
// A ttl <= 0 disables memoization.
func NewCompiler(ttl time.Duration) *Compiler {
	c := &Compiler{ttl: ttl}
	if ttl > 0 {
		c.cache = cache.NewMemoryCache[Expression]()
	}
	return c
}

// Compile returns the parsed form of label.
func (c *Compiler) Compile(label string) Expression {
	if c == nil || c.cache == nil {
		return Parse(label)
	}
	return c.cache.GetOrCompute(label, c.ttl, func() Expression {
		return Parse(label)
	})
}

// Allows is the memoized form of the package level Allows.
func (c *Compiler) Allows(label string, ok bool, provider types.AttributeProvider, item types.Item) bool {
	if !ok {
		return true
	}
	return c.Compile(label).Evaluate(provider, item)
}

// StartGC purges expired labels on the given cron spec.
func (c *Compiler) StartGC(spec string) error {
	if c == nil || c.cache == nil || spec == "" {
		return nil
	}
	return c.cache.StartGC(spec)
}

// Stop releases the purge job.
func (c *Compiler) Stop() {
	if c != nil && c.cache != nil {
		c.cache.StopGC()
	}
}

// Len returns the number of memoized labels.
func (c *Compiler) Len() int {
	if c == nil || c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
