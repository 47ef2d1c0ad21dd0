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
	"github.com/rulego/hopperfilter/components/session"
)

// OnPlayerInteract starts or advances a session when a sneaking user in a
// non creative mode left clicks a hopper they may modify. An empty hand
// starts typing, a held item is tapped onto the label.
func (e *Engine) OnPlayerInteract(event *types.InteractEvent) {
	if event == nil || event.Block == nil || event.Action != types.LeftClickBlock {
		return
	}
	user := event.User
	if !user.Sneaking || user.GameMode == types.Creative {
		return
	}
	target := *event.Block
	if _, ok := e.world.TransferPointAt(target); !ok {
		return
	}
	if !e.config.Permissions.CanModify(user.ID, target) {
		return
	}

	if event.HeldItem == nil {
		s := e.sessions.Begin(user.ID, target)
		e.debugf("user %s typing label of %s session=%s", user.ID, target, s.ID)
		e.config.Feedback.Play(user.ID, target, types.SoundAccept)
		return
	}
	itemID := e.provider.TypeIdentifier(event.HeldItem)
	s, result := e.sessions.Advance(user.ID, target, itemID)
	if !result.Changed() {
		return
	}
	e.debugf("user %s tapped %s onto %s session=%s", user.ID, itemID, target, s.ID)
	e.config.Feedback.Play(user.ID, target, types.SoundAccept)
}

// OnPlayerMove cancels the user's session once they walk out of range.
func (e *Engine) OnPlayerMove(event *types.PlayerMoveEvent) {
	if event == nil {
		return
	}
	s, cancelled := e.sessions.Move(event.UserID, event.To)
	if !cancelled {
		return
	}
	e.debugf("user %s left %s, %s session cancelled", event.UserID, s.Target, s.Kind)
	e.config.Feedback.Play(event.UserID, s.Target, types.SoundCancel)
}

// OnToggleSneak commits the tapped label when the user stops sneaking.
func (e *Engine) OnToggleSneak(event *types.ToggleSneakEvent) {
	if event == nil || event.Sneaking {
		return
	}
	if commit, ok := e.sessions.FinalizeTapping(event.UserID); ok {
		e.commit(commit)
	}
}

// OnChat consumes the message of a typing user as the new label.
func (e *Engine) OnChat(event *types.ChatEvent) {
	if event == nil {
		return
	}
	commit, ok := e.sessions.FinalizeTyping(event.UserID, event.Message)
	if !ok {
		return
	}
	event.Cancelled = true
	e.commit(commit)
}

// commit dispatches the label write to the region owning the target.
func (e *Engine) commit(commit session.Commit) {
	target := commit.Session.Target
	if err := e.config.Scheduler.RunAt(target, func() {
		e.applyLabel(commit)
	}); err != nil {
		e.config.Logger.Printf("drop label of %s from %s: %v", target, commit.Session.UserID, err)
	}
}

// applyLabel runs on the region owning the target. The write is dropped when
// the block stopped being a hopper since the session started.
func (e *Engine) applyLabel(commit session.Commit) {
	s := commit.Session
	point, ok := e.world.TransferPointAt(s.Target)
	if !ok {
		e.config.Logger.Printf("drop label of %s from %s: not a hopper anymore", s.Target, s.UserID)
		return
	}
	point.SetLabel(commit.Label, !commit.Clear)
	point.Update()
	e.config.Feedback.Play(s.UserID, s.Target, types.SoundCommit)
	e.debugf("user %s labeled %s %q", s.UserID, s.Target, commit.Label)

	change := types.LabelChange{UserID: s.UserID, Pos: s.Target, Label: commit.Label, Cleared: commit.Clear}
	for _, observer := range e.config.LabelObservers {
		observer.OnLabelChanged(change)
	}
}
