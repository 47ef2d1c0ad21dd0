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

package types

// InventoryType of an inventory.
type InventoryType string

const (
	InventoryHopper InventoryType = "hopper"
	InventoryChest  InventoryType = "chest"
	InventoryOther  InventoryType = "other"
)

// Inventory is the container side of a transfer.
type Inventory interface {
	Type() InventoryType
	// Holder returns the owner of the inventory: a TransferPoint block,
	// a Labeled cart, or anything else.
	Holder() interface{}
}

// MoveItemEvent is raised when an item is about to move between two inventories.
type MoveItemEvent struct {
	Source      Inventory
	Destination Inventory
	Item        Item
	Cancelled   bool
}

// PickupItemEvent is raised when an inventory picks up a dropped item.
type PickupItemEvent struct {
	Inventory Inventory
	Item      Item
	Cancelled bool
}

// GameMode of a user.
type GameMode string

const (
	Survival  GameMode = "survival"
	Creative  GameMode = "creative"
	Adventure GameMode = "adventure"
	Spectator GameMode = "spectator"
)

// Action of an interaction.
type Action string

const (
	LeftClickBlock  Action = "left_click_block"
	RightClickBlock Action = "right_click_block"
	LeftClickAir    Action = "left_click_air"
	RightClickAir   Action = "right_click_air"
)

// User is the acting player as seen by an event.
type User struct {
	ID       string
	Sneaking bool
	GameMode GameMode
	Position Position
}

// InteractEvent is a block primary/secondary action.
type InteractEvent struct {
	User   User
	Action Action
	// Block is the clicked block, nil when the click hit air.
	Block *BlockPos
	// HeldItem is nil when the hand is empty.
	HeldItem  Item
	Cancelled bool
}

// PlayerMoveEvent carries the new position of a user.
type PlayerMoveEvent struct {
	UserID string
	To     Position
}

// ToggleSneakEvent is raised when a user starts or stops sneaking.
type ToggleSneakEvent struct {
	UserID   string
	Sneaking bool
}

// ChatEvent is a plain text chat message.
type ChatEvent struct {
	UserID    string
	Message   string
	Cancelled bool
}
