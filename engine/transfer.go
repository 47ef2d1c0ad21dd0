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

package engine

import (
	"github.com/rulego/hopperfilter/api/types"
)

// OnInventoryMoveItem filters an item moving into a hopper inventory.
//
// A labeled destination (block or cart) rejects items its filter does not
// accept. An unlabeled hopper block additionally yields to a labeled
// neighbour of the source that accepts the item.
func (e *Engine) OnInventoryMoveItem(event *types.MoveItemEvent) {
	if event == nil || event.Destination == nil || event.Destination.Type() != types.InventoryHopper {
		return
	}
	holder := event.Destination.Holder()
	label, labeled := types.LabelOf(holder)
	if labeled {
		if !e.compiler.Allows(label, true, e.provider, event.Item) {
			event.Cancelled = true
		}
		return
	}
	destination, ok := holder.(types.TransferPoint)
	if !ok || event.Source == nil {
		return
	}
	if e.preference.ShouldDefer(event.Source.Holder(), destination, event.Item) {
		e.debugf("defer move into %s", destination.Pos())
		event.Cancelled = true
	}
}

// OnInventoryPickupItem filters a dropped item picked up by a hopper inventory.
func (e *Engine) OnInventoryPickupItem(event *types.PickupItemEvent) {
	if event == nil || event.Inventory == nil || event.Inventory.Type() != types.InventoryHopper {
		return
	}
	label, labeled := types.LabelOf(event.Inventory.Holder())
	if !labeled {
		return
	}
	if !e.compiler.Allows(label, true, e.provider, event.Item) {
		event.Cancelled = true
	}
}
