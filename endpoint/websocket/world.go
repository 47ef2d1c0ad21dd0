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
	"sync"

	"github.com/rulego/hopperfilter/api/types"
)

// World mirrors the hopper blocks a host reported. Label writes are applied
// locally and forwarded to the host as rename commands.
type World struct {
	mu     sync.RWMutex
	blocks map[types.BlockPos]*Hopper
	rename func(Reply)
}

var _ types.World = (*World)(nil)

// NewWorld creates an empty world. rename receives the label commits.
func NewWorld(rename func(Reply)) *World {
	return &World{blocks: make(map[types.BlockPos]*Hopper), rename: rename}
}

// Apply inserts or refreshes blocks, the host state wins.
func (w *World) Apply(states []BlockState) {
	if len(states) == 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range states {
		h, ok := w.blocks[s.Pos]
		if !ok {
			h = &Hopper{world: w, pos: s.Pos}
			w.blocks[s.Pos] = h
		}
		h.mu.Lock()
		h.facing = types.ParseBlockFace(s.Facing)
		h.label, h.labeled = s.Label, s.Labeled
		h.mu.Unlock()
	}
}

func (w *World) Remove(positions []types.BlockPos) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, pos := range positions {
		delete(w.blocks, pos)
	}
}

func (w *World) TransferPointAt(pos types.BlockPos) (types.TransferPoint, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	h, ok := w.blocks[pos]
	if !ok {
		return nil, false
	}
	return h, true
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.blocks)
}

// inventory resolves the holder named by state.
func (w *World) inventory(state InventoryState) inventory {
	inv := inventory{kind: state.Type}
	switch {
	case state.Block != nil:
		if h, ok := w.TransferPointAt(*state.Block); ok {
			inv.holder = h
		}
	case state.Cart != nil:
		inv.holder = &cart{label: state.Cart.Label, labeled: state.Cart.Labeled}
	}
	return inv
}

// Hopper is a remote hopper block.
type Hopper struct {
	world   *World
	pos     types.BlockPos
	mu      sync.RWMutex
	facing  types.BlockFace
	label   string
	labeled bool
}

func (h *Hopper) Label() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.label, h.labeled
}

func (h *Hopper) Pos() types.BlockPos { return h.pos }

func (h *Hopper) Facing() types.BlockFace {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.facing
}

func (h *Hopper) SetLabel(label string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !ok {
		label = ""
	}
	h.label, h.labeled = label, ok
}

// Update sends the label to the host.
func (h *Hopper) Update() {
	if h.world.rename == nil {
		return
	}
	label, labeled := h.Label()
	pos := h.pos
	h.world.rename(Reply{Type: FrameRename, Pos: &pos, Label: label, Labeled: labeled})
}

type cart struct {
	label   string
	labeled bool
}

func (c *cart) Label() (string, bool) { return c.label, c.labeled }

type inventory struct {
	kind   types.InventoryType
	holder interface{}
}

func (i inventory) Type() types.InventoryType { return i.kind }
func (i inventory) Holder() interface{}       { return i.holder }
