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

// Package engine adapts host events to the filter, routing and session
// components. Hosts forward each event to the matching On* method and
// honour the Cancelled flag afterwards.
package engine

import (
	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/components/filter"
	"github.com/rulego/hopperfilter/components/routing"
	"github.com/rulego/hopperfilter/components/session"
	"github.com/rulego/hopperfilter/utils/pool"
)

// Engine handles the events of one world.
type Engine struct {
	config     types.Config
	world      types.World
	provider   types.AttributeProvider
	compiler   *filter.Compiler
	preference *routing.Preference
	sessions   *session.Registry
	// regions is the scheduler created when the config has none
	regions *pool.RegionPool
}

// NewConfig creates a config with the given options.
func NewConfig(opts ...types.Option) types.Config {
	return types.NewConfig(opts...)
}

// New creates an engine for world. Without a configured scheduler label
// writes run on an internal region pool released by Stop.
func New(world types.World, provider types.AttributeProvider, config types.Config) *Engine {
	if config.Logger == nil {
		config.Logger = types.DefaultLogger()
	}
	if config.Permissions == nil {
		config.Permissions = types.AllowAll()
	}
	if config.Feedback == nil {
		config.Feedback = types.NopFeedback()
	}
	e := &Engine{
		world:    world,
		provider: provider,
		compiler: filter.NewCompiler(config.FilterCacheTTL),
		sessions: session.NewRegistry(config.MaxInteractDistance),
	}
	if config.Scheduler == nil {
		e.regions = pool.NewRegionPool(config.RegionShift, config.Logger)
		config.Scheduler = e.regions
	}
	e.config = config
	e.preference = &routing.Preference{World: world, Provider: provider, Compiler: e.compiler}
	if err := e.compiler.StartGC(config.FilterCacheGC); err != nil {
		config.Logger.Printf("filter cache gc %q not started: %v", config.FilterCacheGC, err)
	}
	return e
}

func (e *Engine) Config() types.Config {
	return e.config
}

func (e *Engine) Sessions() *session.Registry {
	return e.sessions
}

func (e *Engine) Compiler() *filter.Compiler {
	return e.compiler
}

func (e *Engine) Provider() types.AttributeProvider {
	return e.provider
}

// Stop releases the cache purge job and the internal region pool.
func (e *Engine) Stop() {
	e.compiler.Stop()
	if e.regions != nil {
		e.regions.Stop()
	}
}

// Allows reports whether a holder labeled label accepts item.
// A blank label accepts everything.
func (e *Engine) Allows(label string, item types.Item) bool {
	return e.compiler.Allows(label, label != "", e.provider, item)
}

func (e *Engine) debugf(format string, v ...interface{}) {
	if e.config.Debug {
		e.config.Logger.Printf(format, v...)
	}
}
