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

package session

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/hopperfilter/api/types"
)

var (
	hopperA = types.BlockPos{World: "world", X: 10, Y: 64, Z: 10}
	hopperB = types.BlockPos{World: "world", X: 12, Y: 64, Z: 10}
)

func TestTapping(t *testing.T) {
	r := NewRegistry(types.DefaultMaxInteractDistance)

	s, res := r.Advance("alice", hopperA, "stone")
	assert.Equal(t, Started, res)
	assert.Equal(t, Tapping, s.Kind)
	assert.NotEmpty(t, s.ID)

	_, res = r.Advance("alice", hopperA, "stone")
	assert.Equal(t, Duplicate, res)
	assert.False(t, res.Changed())

	s, res = r.Advance("alice", hopperA, "dirt")
	assert.Equal(t, Added, res)
	assert.Equal(t, []string{"stone", "dirt"}, s.Items)

	commit, ok := r.FinalizeTapping("alice")
	require.True(t, ok)
	assert.Equal(t, "stone,dirt", commit.Label)
	assert.False(t, commit.Clear)
	assert.Equal(t, hopperA, commit.Session.Target)
	assert.Equal(t, 0, r.Len())

	_, ok = r.FinalizeTapping("alice")
	assert.False(t, ok)
}

func TestTappingAnotherTarget(t *testing.T) {
	r := NewRegistry(types.DefaultMaxInteractDistance)
	first, _ := r.Advance("alice", hopperA, "stone")
	s, res := r.Advance("alice", hopperB, "dirt")
	assert.Equal(t, Started, res)
	assert.NotEqual(t, first.ID, s.ID)
	assert.Equal(t, []string{"dirt"}, s.Items)
	assert.Equal(t, 1, r.Len())
}

func TestTyping(t *testing.T) {
	r := NewRegistry(types.DefaultMaxInteractDistance)

	_, ok := r.FinalizeTyping("bob", "stone")
	assert.False(t, ok)

	s := r.Begin("bob", hopperA)
	assert.Equal(t, Typing, s.Kind)
	again := r.Begin("bob", hopperA)
	assert.Equal(t, s.ID, again.ID)

	// typing does not finalize a tapping release
	_, ok = r.FinalizeTapping("bob")
	assert.False(t, ok)
	_, ok = r.Get("bob")
	assert.True(t, ok)

	commit, ok := r.FinalizeTyping("bob", "#logs|*planks")
	require.True(t, ok)
	assert.Equal(t, "#logs|*planks", commit.Label)
	_, ok = r.Get("bob")
	assert.False(t, ok)

	r.Begin("bob", hopperA)
	commit, ok = r.FinalizeTyping("bob", "null")
	require.True(t, ok)
	assert.True(t, commit.Clear)
	assert.Equal(t, "", commit.Label)
}

func TestSupersede(t *testing.T) {
	r := NewRegistry(types.DefaultMaxInteractDistance)
	r.Advance("carol", hopperA, "stone")
	s := r.Begin("carol", hopperA)
	assert.Equal(t, Typing, s.Kind)
	_, ok := r.FinalizeTapping("carol")
	assert.False(t, ok)

	s, res := r.Advance("carol", hopperA, "dirt")
	assert.Equal(t, Started, res)
	assert.Equal(t, Tapping, s.Kind)
	_, ok = r.FinalizeTyping("carol", "ignored")
	assert.False(t, ok)
}

func TestMove(t *testing.T) {
	r := NewRegistry(types.DefaultMaxInteractDistance)
	r.Advance("dave", hopperA, "stone")

	// 3,4,0 from the block corner is exactly 25
	_, cancelled := r.Move("dave", types.Position{World: "world", X: 13, Y: 68, Z: 10})
	assert.False(t, cancelled)

	s, cancelled := r.Move("dave", types.Position{World: "world", X: 13.1, Y: 68, Z: 10})
	assert.True(t, cancelled)
	assert.Equal(t, []string{"stone"}, s.Items)
	_, ok := r.FinalizeTapping("dave")
	assert.False(t, ok, "a cancelled session commits nothing")

	r.Begin("dave", hopperA)
	_, cancelled = r.Move("dave", types.Position{World: "nether", X: 10, Y: 64, Z: 10})
	assert.True(t, cancelled)

	_, cancelled = r.Move("nobody", types.Position{World: "world"})
	assert.False(t, cancelled)
}

func TestCancel(t *testing.T) {
	r := NewRegistry(0)
	r.Begin("erin", hopperA)
	s, ok := r.Cancel("erin")
	assert.True(t, ok)
	assert.Equal(t, "erin", s.UserID)
	_, ok = r.Cancel("erin")
	assert.False(t, ok)
}

func TestSnapshotsAreCopies(t *testing.T) {
	r := NewRegistry(types.DefaultMaxInteractDistance)
	s, _ := r.Advance("frank", hopperA, "stone")
	s.Items[0] = "bedrock"
	got, _ := r.Get("frank")
	assert.Equal(t, []string{"stone"}, got.Items)
}

func TestList(t *testing.T) {
	r := NewRegistry(types.DefaultMaxInteractDistance)
	r.Begin("zed", hopperA)
	r.Advance("amy", hopperB, "dirt")
	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "amy", list[0].UserID)
	assert.Equal(t, "zed", list[1].UserID)
	assert.Equal(t, "tapping", list[0].Kind.String())
	text, err := list[0].Kind.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "tapping", string(text))
	assert.Equal(t, "kind(0)", Kind(0).String())
}

func TestConcurrentFinalize(t *testing.T) {
	r := NewRegistry(types.DefaultMaxInteractDistance)
	for round := 0; round < 50; round++ {
		r.Begin("gina", hopperA)
		var wins int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, ok := r.FinalizeTyping("gina", "stone"); ok {
					atomic.AddInt32(&wins, 1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins)
	}
}

func TestConcurrentTaps(t *testing.T) {
	r := NewRegistry(types.DefaultMaxInteractDistance)
	r.Advance("hal", hopperA, "item0")
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Advance("hal", hopperA, []string{"stone", "dirt"}[i%2])
		}(i)
	}
	wg.Wait()
	s, _ := r.Get("hal")
	assert.ElementsMatch(t, []string{"item0", "stone", "dirt"}, s.Items)
}
