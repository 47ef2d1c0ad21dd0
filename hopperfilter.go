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

// Package hopperfilter filters the item flow of hoppers by their label.
//
// # Labels
//
// A label is a filter: alternatives separated by ",", each a conjunction of
// "&" separated groups, each group a "|" separated list of atoms. An atom
// matches the item type literally or through a modifier:
//
//	*text    type contains text
//	^text    type starts with text
//	$text    type ends with text
//	#tag     type is in the block or item tag
//	~effect  potion carries the effect, ~effect_2 at level 2
//	+ench    item carries the enchantment, +ench_3 at level 3
//	!atom    negation
//
// An unlabeled hopper accepts everything.
//
// # Usage
//
// Forward host events to the engine and honour the Cancelled flag:
//
//	e := hopperfilter.New(world, catalog, hopperfilter.WithFeedback(feedback))
//	defer e.Stop()
//
//	event := &types.MoveItemEvent{Source: src, Destination: dst, Item: item}
//	e.OnInventoryMoveItem(event)
//	if event.Cancelled {
//		// keep the item where it is
//	}
//
// Users label hoppers by sneaking and left clicking them: with an empty hand
// the next chat message becomes the label ("null" clears it), with an item
// the item types tapped until sneaking stops become the label.
package hopperfilter

import (
	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/engine"
)

// New creates an engine for world answering attribute questions with provider.
func New(world types.World, provider types.AttributeProvider, opts ...types.Option) *engine.Engine {
	return engine.New(world, provider, NewConfig(opts...))
}

// NewConfig creates a config with the given options.
func NewConfig(opts ...types.Option) types.Config {
	return engine.NewConfig(opts...)
}

var (
	WithLogger              = types.WithLogger
	WithScheduler           = types.WithScheduler
	WithPermissions         = types.WithPermissions
	WithFeedback            = types.WithFeedback
	WithLabelObserver       = types.WithLabelObserver
	WithMaxInteractDistance = types.WithMaxInteractDistance
	WithFilterCacheTTL      = types.WithFilterCacheTTL
	WithFilterCacheGC       = types.WithFilterCacheGC
	WithDebug               = types.WithDebug
	WithRegionShift         = types.WithRegionShift
)
