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

package hopperfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/test"
)

func TestNew(t *testing.T) {
	hopper := test.NewHopper(test.Pos(0, 64, 0), types.FaceDown).WithLabel("#logs|*planks")
	scheduler := &test.Scheduler{}
	e := New(test.NewWorld(hopper), test.Catalog(t), WithScheduler(scheduler), WithMaxInteractDistance(3))
	defer e.Stop()

	assert.Equal(t, 9.0, e.Config().MaxInteractDistanceSquared())
	for id, allowed := range map[string]bool{
		"oak_log":       true,
		"jungle_planks": true,
		"cobblestone":   false,
	} {
		event := &types.MoveItemEvent{
			Source:      test.Inventory{Kind: types.InventoryChest},
			Destination: test.HopperInventory(hopper),
			Item:        test.Stack(id),
		}
		e.OnInventoryMoveItem(event)
		assert.Equal(t, !allowed, event.Cancelled, id)
	}
}
