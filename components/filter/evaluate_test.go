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

	"github.com/stretchr/testify/assert"

	"github.com/rulego/hopperfilter/api/types"
)

func TestEvaluate(t *testing.T) {
	p := &provider{}

	t.Run("BlankAllowsEverything", func(t *testing.T) {
		for _, item := range []types.Item{oakLog, stone, poison1, sword3} {
			assert.True(t, Parse("").Evaluate(p, item))
			assert.True(t, Allows("whatever", false, p, item))
		}
	})

	t.Run("ModifierTable", func(t *testing.T) {
		tests := []struct {
			label string
			item  stack
			want  bool
		}{
			{"stone", stone, true},
			{"stone", cobblestone, false},
			{"*stone", cobblestone, true},
			{"^cobble", cobblestone, true},
			{"^stone", cobblestone, false},
			{"$_log", oakLog, true},
			{"$_log", oakPlanks, false},
			{"#logs", oakLog, true},
			{"#planks", oakLog, false},
			{"#no_such_tag", oakLog, false},
			{"~poison", poison1, true},
			{"~poison", water, false},
			{"~poison", fakePoison, false},
			{"~no_such_effect", poison1, false},
			{"+sharpness", sword3, true},
			{"+sharpness", stone, false},
			{"+sharpness_3", sword3, true},
			{"+sharpness_3", sword2, false},
			{"+no_such_enchantment", sword3, false},
			{"!stone", stone, false},
			{"!stone", oakLog, true},
			{"!#logs", oakPlanks, true},
			{"!!#logs", oakLog, true},
			{"?stone", stone, false},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, Parse(tt.label).Evaluate(p, tt.item), "%s on %s", tt.label, tt.item.id)
		}
	})

	t.Run("PotionLevel", func(t *testing.T) {
		assert.False(t, Parse("~poison_2").Evaluate(p, poison1))
		assert.True(t, Parse("~poison_2").Evaluate(p, poison2))
		assert.True(t, Parse("~poison_1").Evaluate(p, poison1))
		assert.False(t, Parse("~poison_3").Evaluate(p, poison2))
	})

	t.Run("LogsOrPlanks", func(t *testing.T) {
		e := Parse("#logs|*planks")
		assert.True(t, e.Evaluate(p, oakLog))
		assert.True(t, e.Evaluate(p, oakPlanks))
		assert.True(t, e.Evaluate(p, stack{id: "spruce_planks"}))
		assert.False(t, e.Evaluate(p, cobblestone))
	})

	t.Run("SharpnessWithoutPoison", func(t *testing.T) {
		e := Parse("+sharpness_3&!~poison")
		assert.True(t, e.Evaluate(p, sword3))
		assert.False(t, e.Evaluate(p, sword2))

		poisoned := stack{id: "potion", potion: true,
			effects:      []types.PotionEffect{{Name: "poison", Level: 1}},
			enchantments: map[string]int{"sharpness": 3}}
		assert.False(t, e.Evaluate(p, poisoned))

		poisoned2 := poisoned
		poisoned2.enchantments = map[string]int{"sharpness": 2}
		assert.False(t, e.Evaluate(p, poisoned2))
	})

	t.Run("Alternatives", func(t *testing.T) {
		e := Parse("diamond,emerald")
		assert.True(t, e.Evaluate(p, stack{id: "emerald"}))
		assert.False(t, e.Evaluate(p, stack{id: "gold_ingot"}))
	})

	t.Run("DegenerateSeparators", func(t *testing.T) {
		assert.False(t, Parse(",").Evaluate(p, stone))
		assert.True(t, Parse("&").Evaluate(p, stone))
		assert.False(t, Parse("|").Evaluate(p, stone))
		assert.True(t, Parse("a,,stone").Evaluate(p, stone))
	})
}

func TestNegationIsInvolution(t *testing.T) {
	p := &provider{}
	atoms := []string{"stone", "*stone", "^oak", "$_log", "#logs", "~poison", "~poison_2", "+sharpness_3", "!#logs", "", "?x"}
	items := []stack{oakLog, oakPlanks, cobblestone, stone, poison1, poison2, water, sword3, sword2, fakePoison}
	for _, a := range atoms {
		for _, item := range items {
			assert.Equal(t, !MatchAtom(ParseAtom(a), p, item), MatchAtom(ParseAtom("!"+a), p, item), "%q on %s", a, item.id)
		}
	}
}

func TestShortCircuit(t *testing.T) {
	p := &provider{}
	assert.True(t, Parse("stone,#a,#b,#c").Evaluate(p, stone))
	assert.Equal(t, 0, p.tagLookups)

	p = &provider{}
	assert.False(t, Parse("dirt&#a&#b").Evaluate(p, stone))
	assert.Equal(t, 0, p.tagLookups)

	p = &provider{}
	assert.True(t, Parse("stone|#a|#b").Evaluate(p, stone))
	assert.Equal(t, 0, p.tagLookups)

	p = &provider{}
	Parse("a|b|c|d,e&f").Evaluate(p, stone)
	assert.Equal(t, 1, p.idLookups)
}
