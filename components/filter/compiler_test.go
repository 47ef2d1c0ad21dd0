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

package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiler(t *testing.T) {
	p := &provider{}

	t.Run("Memoized", func(t *testing.T) {
		c := NewCompiler(time.Minute)
		first := c.Compile("#logs|*planks")
		second := c.Compile("#logs|*planks")
		assert.Equal(t, first, second)
		assert.Equal(t, 1, c.Len())
		assert.True(t, c.Allows("#logs|*planks", true, p, oakLog))
		assert.False(t, c.Allows("#logs|*planks", true, p, cobblestone))
	})

	t.Run("ChangedLabel", func(t *testing.T) {
		c := NewCompiler(time.Minute)
		assert.True(t, c.Allows("stone", true, p, stone))
		assert.False(t, c.Allows("dirt", true, p, stone))
		assert.Equal(t, 2, c.Len())
	})

	t.Run("Unlabeled", func(t *testing.T) {
		c := NewCompiler(time.Minute)
		assert.True(t, c.Allows("dirt", false, p, stone))
		assert.Equal(t, 0, c.Len())
	})

	t.Run("Disabled", func(t *testing.T) {
		c := NewCompiler(0)
		assert.True(t, c.Allows("stone", true, p, stone))
		assert.Equal(t, 0, c.Len())
		require.NoError(t, c.StartGC("@every 1m"))
		c.Stop()

		var nilCompiler *Compiler
		assert.Equal(t, Parse("stone"), nilCompiler.Compile("stone"))
	})

	t.Run("GC", func(t *testing.T) {
		c := NewCompiler(time.Minute)
		require.NoError(t, c.StartGC("@every 1m"))
		c.Stop()
	})
}

func BenchmarkEvaluate(b *testing.B) {
	p := &provider{}
	c := NewCompiler(time.Minute)
	label := "#logs|*planks,+sharpness_3&!~poison,diamond,emerald"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Allows(label, true, p, cobblestone)
	}
}
