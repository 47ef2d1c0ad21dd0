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

import (
	"fmt"
	"math"
)

// BlockFace is a direction relative to a block.
type BlockFace int

const (
	FaceSelf BlockFace = iota
	FaceDown
	FaceUp
	FaceNorth
	FaceSouth
	FaceEast
	FaceWest
)

var faceNames = map[BlockFace]string{
	FaceSelf:  "self",
	FaceDown:  "down",
	FaceUp:    "up",
	FaceNorth: "north",
	FaceSouth: "south",
	FaceEast:  "east",
	FaceWest:  "west",
}

func (f BlockFace) String() string {
	if name, ok := faceNames[f]; ok {
		return name
	}
	return fmt.Sprintf("face(%d)", int(f))
}

// ParseBlockFace resolves a face name, unknown names resolve to FaceSelf.
func ParseBlockFace(name string) BlockFace {
	for face, n := range faceNames {
		if n == name {
			return face
		}
	}
	return FaceSelf
}

// BlockPos is the integer location of a block.
type BlockPos struct {
	World string `json:"world"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Z     int    `json:"z"`
}

// Relative returns the position of the neighbour on the given face.
func (p BlockPos) Relative(face BlockFace) BlockPos {
	switch face {
	case FaceDown:
		p.Y--
	case FaceUp:
		p.Y++
	case FaceNorth:
		p.Z--
	case FaceSouth:
		p.Z++
	case FaceEast:
		p.X++
	case FaceWest:
		p.X--
	}
	return p
}

// Position returns the block corner as a Position.
func (p BlockPos) Position() Position {
	return Position{World: p.World, X: float64(p.X), Y: float64(p.Y), Z: float64(p.Z)}
}

func (p BlockPos) String() string {
	return fmt.Sprintf("%s[%d,%d,%d]", p.World, p.X, p.Y, p.Z)
}

// Position is an entity position.
type Position struct {
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// DistanceSquared returns the squared straight-line distance between p and o.
// Positions in different worlds are infinitely far apart.
func (p Position) DistanceSquared(o Position) float64 {
	if p.World != o.World {
		return math.Inf(1)
	}
	dx, dy, dz := p.X-o.X, p.Y-o.Y, p.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

// Labeled is anything that can carry a display label.
// ok is false when no label is set.
type Labeled interface {
	Label() (label string, ok bool)
}

// TransferPoint is a hopper block.
type TransferPoint interface {
	Labeled
	Pos() BlockPos
	// Facing is the configured output direction.
	Facing() BlockFace
	// SetLabel sets the label, ok=false clears it.
	SetLabel(label string, ok bool)
	// Update pushes the changed block state to the world.
	Update()
}

// World resolves blocks. Implementations must be safe to call from the
// region-owning context of the queried position.
type World interface {
	// TransferPointAt returns the transfer point at pos, if the block there is one.
	TransferPointAt(pos BlockPos) (TransferPoint, bool)
}

// LabelOf returns the label of a holder. Empty labels count as no label.
func LabelOf(holder interface{}) (string, bool) {
	l, ok := holder.(Labeled)
	if !ok {
		return "", false
	}
	label, ok := l.Label()
	if !ok || label == "" {
		return "", false
	}
	return label, true
}
