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

// Package routing decides when an item should skip a generic, unlabeled
// hopper because a labeled neighbour would take it.
package routing

import (
	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/components/filter"
)

// Preference lets a specific filter claim an item before a catch-all does.
// It never routes an item, it only vetoes a move; the world retries on a
// later tick and the item reaches the labeled neighbour naturally.
type Preference struct {
	World    types.World
	Provider types.AttributeProvider
	// Compiler may be nil, labels are then parsed on every call.
	Compiler *filter.Compiler
}

// ShouldDefer reports whether moving item from sourceHolder into destination
// should be vetoed.
//
// The source must be a transfer point block not facing down. Its facing
// neighbour F must be a transfer point. When F is the destination the
// candidate is the transfer point below the source, otherwise F itself.
// The move is deferred when the candidate is labeled and accepts the item.
func (p *Preference) ShouldDefer(sourceHolder interface{}, destination types.TransferPoint, item types.Item) bool {
	if _, labeled := types.LabelOf(destination); labeled {
		return false
	}
	source, ok := sourceHolder.(types.TransferPoint)
	if !ok {
		return false
	}
	facing := source.Facing()
	if facing == types.FaceDown || facing == types.FaceSelf {
		return false
	}
	facingPoint, ok := p.World.TransferPointAt(source.Pos().Relative(facing))
	if !ok {
		return false
	}
	candidate := facingPoint
	if facingPoint.Pos() == destination.Pos() {
		if candidate, ok = p.World.TransferPointAt(source.Pos().Relative(types.FaceDown)); !ok {
			return false
		}
	}
	label, ok := types.LabelOf(candidate)
	if !ok {
		return false
	}
	return p.Compiler.Allows(label, true, p.Provider, item)
}
