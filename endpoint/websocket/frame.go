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

package websocket

import (
	"github.com/rulego/hopperfilter/api/types"
)

// Frame types sent by the host.
const (
	FrameMove       = "move"
	FramePickup     = "pickup"
	FrameInteract   = "interact"
	FramePlayerMove = "player_move"
	FrameSneak      = "sneak"
	FrameChat       = "chat"
	FrameBlocks     = "blocks"
)

// Frame types sent to the host.
const (
	FrameResult = "result"
	FrameError  = "error"
	FrameRename = "rename"
)

// Frame is one host message. Data is decoded according to Type.
type Frame struct {
	ID   string                 `json:"id,omitempty"`
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data,omitempty"`
}

// Reply is sent to the host: the outcome of an event frame, a decode error,
// or a rename command.
type Reply struct {
	ID        string          `json:"id,omitempty"`
	Type      string          `json:"type"`
	Cancelled bool            `json:"cancelled,omitempty"`
	Error     string          `json:"error,omitempty"`
	Pos       *types.BlockPos `json:"pos,omitempty"`
	Label     string          `json:"label,omitempty"`
	Labeled   bool            `json:"labeled,omitempty"`
}

// BlockState is the host's view of a hopper block.
type BlockState struct {
	Pos     types.BlockPos `json:"pos"`
	Facing  string         `json:"facing"`
	Label   string         `json:"label"`
	Labeled bool           `json:"labeled"`
}

type CartState struct {
	Label   string `json:"label"`
	Labeled bool   `json:"labeled"`
}

// InventoryState names the holder of an inventory: a hopper block, a cart,
// or neither.
type InventoryState struct {
	Type  types.InventoryType `json:"type"`
	Block *types.BlockPos     `json:"block"`
	Cart  *CartState          `json:"cart"`
}

type UserState struct {
	ID       string         `json:"id"`
	Sneaking bool           `json:"sneaking"`
	GameMode types.GameMode `json:"gameMode"`
	Position types.Position `json:"position"`
}

// Every event frame may carry the hopper blocks the event touches, they
// are applied to the connection's world before the event is handled.

type MoveFrame struct {
	Blocks      []BlockState    `json:"blocks"`
	Source      InventoryState  `json:"source"`
	Destination InventoryState  `json:"destination"`
	Item        types.ItemStack `json:"item"`
}

type PickupFrame struct {
	Blocks    []BlockState    `json:"blocks"`
	Inventory InventoryState  `json:"inventory"`
	Item      types.ItemStack `json:"item"`
}

type InteractFrame struct {
	Blocks []BlockState     `json:"blocks"`
	User   UserState        `json:"user"`
	Action types.Action     `json:"action"`
	Block  *types.BlockPos  `json:"block"`
	Item   *types.ItemStack `json:"item"`
}

type PlayerMoveFrame struct {
	UserID string         `json:"userId"`
	To     types.Position `json:"to"`
}

type SneakFrame struct {
	UserID   string `json:"userId"`
	Sneaking bool   `json:"sneaking"`
}

type ChatFrame struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

// BlocksFrame reports placed, changed and removed hopper blocks.
type BlocksFrame struct {
	Blocks  []BlockState     `json:"blocks"`
	Removed []types.BlockPos `json:"removed"`
}
