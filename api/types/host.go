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

// Scheduler runs tasks on the context owning a location.
type Scheduler interface {
	// RunAt schedules task on the region owning pos.
	RunAt(pos BlockPos, task func()) error
}

// Permissions is the host permission check.
type Permissions interface {
	// CanModify reports whether the user may break or modify the block.
	CanModify(userID string, pos BlockPos) bool
}

// Sound is a feedback cue. Pitch is picked in [MinPitch, MaxPitch).
type Sound struct {
	Name     string
	Volume   float32
	MinPitch float32
	MaxPitch float32
}

var (
	SoundAccept = Sound{Name: "entity.experience_orb.pickup", Volume: 0.1, MinPitch: 0.55, MaxPitch: 1.25}
	SoundCancel = Sound{Name: "block.anvil.land", Volume: 0.3, MinPitch: 1.25, MaxPitch: 1.5}
	SoundCommit = Sound{Name: "ui.cartography_table.take_result", Volume: 0.75, MinPitch: 1.25, MaxPitch: 1.5}
)

// Feedback plays cues to a user.
type Feedback interface {
	Play(userID string, at BlockPos, sound Sound)
}

// LabelChange describes a committed rename.
type LabelChange struct {
	UserID string   `json:"userId"`
	Pos    BlockPos `json:"pos"`
	Label  string   `json:"label"`
	// Cleared is true when the label was removed.
	Cleared bool `json:"cleared"`
}

// LabelObserver is notified after a label has been written.
type LabelObserver interface {
	OnLabelChanged(change LabelChange)
}

type nopFeedback struct{}

func (nopFeedback) Play(string, BlockPos, Sound) {}

type allowAll struct{}

func (allowAll) CanModify(string, BlockPos) bool { return true }

// NopFeedback discards every cue.
func NopFeedback() Feedback { return nopFeedback{} }

// AllowAll grants every permission check.
func AllowAll() Permissions { return allowAll{} }
