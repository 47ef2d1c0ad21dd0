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

// Package test provides in-memory hosts for exercising the engine: a block
// world of hoppers, inventories, recording feedback and schedulers.
package test

import (
	"sync"

	"github.com/rulego/hopperfilter/api/types"
)

// Hopper is an in-memory transfer point.
type Hopper struct {
	mu      sync.Mutex
	pos     types.BlockPos
	facing  types.BlockFace
	label   string
	labeled bool
	updates int
}

var _ types.TransferPoint = (*Hopper)(nil)

func NewHopper(pos types.BlockPos, facing types.BlockFace) *Hopper {
	return &Hopper{pos: pos, facing: facing}
}

// WithLabel sets the label and returns h.
func (h *Hopper) WithLabel(label string) *Hopper {
	h.SetLabel(label, true)
	return h
}

func (h *Hopper) Label() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.label, h.labeled
}

func (h *Hopper) Pos() types.BlockPos     { return h.pos }
func (h *Hopper) Facing() types.BlockFace { return h.facing }

func (h *Hopper) SetLabel(label string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !ok {
		label = ""
	}
	h.label, h.labeled = label, ok
}

func (h *Hopper) Update() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.updates++
}

// Updates returns how many times Update was called.
func (h *Hopper) Updates() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.updates
}

// Cart is a labeled hopper cart, it is not a block.
type Cart struct {
	Name  string
	Named bool
}

func (c *Cart) Label() (string, bool) { return c.Name, c.Named }

// World is a set of hopper blocks.
type World struct {
	mu     sync.RWMutex
	blocks map[types.BlockPos]*Hopper
}

var _ types.World = (*World)(nil)

func NewWorld(hoppers ...*Hopper) *World {
	w := &World{blocks: make(map[types.BlockPos]*Hopper)}
	for _, h := range hoppers {
		w.Put(h)
	}
	return w
}

func (w *World) Put(h *Hopper) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blocks[h.Pos()] = h
}

// Remove replaces the block at pos with something that is not a hopper.
func (w *World) Remove(pos types.BlockPos) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.blocks, pos)
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

// Inventory is a container with a holder.
type Inventory struct {
	Kind  types.InventoryType
	Owner interface{}
}

func (i Inventory) Type() types.InventoryType { return i.Kind }
func (i Inventory) Holder() interface{}       { return i.Owner }

// HopperInventory returns the inventory of a hopper block.
func HopperInventory(h *Hopper) Inventory {
	return Inventory{Kind: types.InventoryHopper, Owner: h}
}

// Cue is a played feedback sound.
type Cue struct {
	UserID string
	At     types.BlockPos
	Sound  types.Sound
}

// Feedback records played cues.
type Feedback struct {
	mu   sync.Mutex
	cues []Cue
}

func (f *Feedback) Play(userID string, at types.BlockPos, sound types.Sound) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cues = append(f.cues, Cue{UserID: userID, At: at, Sound: sound})
}

// Sounds returns the names of the played sounds in order.
func (f *Feedback) Sounds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.cues))
	for i, c := range f.cues {
		names[i] = c.Sound.Name
	}
	return names
}

// Scheduler queues tasks until Flush, recording the positions they target.
type Scheduler struct {
	mu        sync.Mutex
	tasks     []func()
	Positions []types.BlockPos
}

func (s *Scheduler) RunAt(pos types.BlockPos, task func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
	s.Positions = append(s.Positions, pos)
	return nil
}

// Flush runs the queued tasks and returns how many ran.
func (s *Scheduler) Flush() int {
	s.mu.Lock()
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()
	for _, task := range tasks {
		task()
	}
	return len(tasks)
}

// Permissions denies the listed users.
type Permissions struct {
	Denied map[string]bool
}

func (p Permissions) CanModify(userID string, _ types.BlockPos) bool {
	return !p.Denied[userID]
}

// Observer records label changes.
type Observer struct {
	mu      sync.Mutex
	changes []types.LabelChange
}

func (o *Observer) OnLabelChanged(change types.LabelChange) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.changes = append(o.changes, change)
}

func (o *Observer) Changes() []types.LabelChange {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]types.LabelChange(nil), o.changes...)
}

// Pos is shorthand for a block position in the "world" world.
func Pos(x, y, z int) types.BlockPos {
	return types.BlockPos{World: "world", X: x, Y: y, Z: z}
}

// At is shorthand for an entity position in the "world" world.
func At(x, y, z float64) types.Position {
	return types.Position{World: "world", X: x, Y: y, Z: z}
}
