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

// Package session tracks the per-user interactions that build a hopper label.
//
// A user either types a label (the next chat message becomes the label) or
// taps item kinds onto the hopper while sneaking (the collected kinds become
// the label once sneaking stops). Both are cancelled when the user walks away.
package session

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/rulego/hopperfilter/api/types"
)

// Kind is the shape of a session.
type Kind int

const (
	// Typing consumes the user's next chat message as the label.
	Typing Kind = iota + 1
	// Tapping collects the item kinds the user taps against the target.
	Tapping
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Typing:
		return "typing"
	case Tapping:
		return "tapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// MarshalText encodes the kind by name in JSON snapshots.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Session is a snapshot of one user's interaction.
type Session struct {
	ID     string         `json:"id"`
	UserID string         `json:"userId"`
	Kind   Kind           `json:"kind"`
	Target types.BlockPos `json:"target"`
	// Items are the distinct tapped type identifiers in tap order.
	Items   []string  `json:"items,omitempty"`
	Started time.Time `json:"started"`
}

// Label is the label a tapping session commits.
func (s Session) Label() string {
	return strings.Join(s.Items, ",")
}

func (s Session) clone() Session {
	s.Items = append([]string(nil), s.Items...)
	return s
}

// TapResult describes what Advance did.
type TapResult int

const (
	// Started means a new tapping session was created.
	Started TapResult = iota
	// Added means the identifier was appended to the open session.
	Added
	// Duplicate means the identifier was already collected.
	Duplicate
)

// Changed reports whether the tap changed any state.
func (r TapResult) Changed() bool {
	return r != Duplicate
}

// Commit is a finalized label waiting to be written to its target.
type Commit struct {
	Session Session
	Label   string
	// Clear removes the label instead of setting it.
	Clear bool
}

// Registry owns every open session, at most one per user. All methods are
// safe for concurrent use; each read-modify-write runs under one mutex.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	maxDistSq float64
	now       func() time.Time
}

// NewRegistry creates a registry cancelling sessions once a user is farther
// than maxDistance from the target block.
func NewRegistry(maxDistance float64) *Registry {
	if maxDistance <= 0 {
		maxDistance = types.DefaultMaxInteractDistance
	}
	return &Registry{
		sessions:  make(map[string]*Session),
		maxDistSq: maxDistance * maxDistance,
		now:       time.Now,
	}
}

func (r *Registry) newSession(userID string, kind Kind, target types.BlockPos) *Session {
	id, _ := uuid.NewV4()
	return &Session{
		ID:      id.String(),
		UserID:  userID,
		Kind:    kind,
		Target:  target,
		Started: r.now(),
	}
}

// Begin opens a typing session against target. An open typing session for
// the same target is kept, anything else the user had open is superseded.
func (r *Registry) Begin(userID string, target types.BlockPos) Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[userID]; ok && s.Kind == Typing && s.Target == target {
		return s.clone()
	}
	s := r.newSession(userID, Typing, target)
	r.sessions[userID] = s
	return s.clone()
}

// Advance records a tap of itemID on target. The identifier is appended to
// the user's tapping session for that target; a tap against another target,
// or while typing, starts a new tapping session.
func (r *Registry) Advance(userID string, target types.BlockPos, itemID string) (Session, TapResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok || s.Kind != Tapping || s.Target != target {
		s = r.newSession(userID, Tapping, target)
		s.Items = []string{itemID}
		r.sessions[userID] = s
		return s.clone(), Started
	}
	for _, id := range s.Items {
		if id == itemID {
			return s.clone(), Duplicate
		}
	}
	s.Items = append(s.Items, itemID)
	return s.clone(), Added
}

// Move checks the user's new position against the open session. The session
// is removed and returned when the user is too far from its target.
func (r *Registry) Move(userID string, to types.Position) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		return Session{}, false
	}
	if to.DistanceSquared(s.Target.Position()) <= r.maxDistSq {
		return Session{}, false
	}
	delete(r.sessions, userID)
	return s.clone(), true
}

// Cancel discards the user's session, if any.
func (r *Registry) Cancel(userID string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		return Session{}, false
	}
	delete(r.sessions, userID)
	return s.clone(), true
}

// FinalizeTyping consumes the user's typing session with the typed text.
// ok is false when the user is not typing, the text is then not consumed.
func (r *Registry) FinalizeTyping(userID, text string) (Commit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok || s.Kind != Typing {
		return Commit{}, false
	}
	delete(r.sessions, userID)
	if text == types.ClearLabel {
		return Commit{Session: s.clone(), Clear: true}, true
	}
	return Commit{Session: s.clone(), Label: text}, true
}

// FinalizeTapping ends the user's tapping session. ok is false when there was
// no tapping session or nothing was collected; no rename follows then.
func (r *Registry) FinalizeTapping(userID string) (Commit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok || s.Kind != Tapping {
		return Commit{}, false
	}
	delete(r.sessions, userID)
	if len(s.Items) == 0 {
		return Commit{}, false
	}
	return Commit{Session: s.clone(), Label: s.Label()}, true
}

// Get returns the user's open session.
func (r *Registry) Get(userID string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return s.clone(), true
}

// List returns every open session ordered by user.
func (r *Registry) List() []Session {
	r.mu.Lock()
	list := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		list = append(list, s.clone())
	}
	r.mu.Unlock()
	sort.Slice(list, func(i, j int) bool {
		return list[i].UserID < list[j].UserID
	})
	return list
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
