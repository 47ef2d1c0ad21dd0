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
)

func TestParse(t *testing.T) {
	t.Run("Blank", func(t *testing.T) {
		assert.Equal(t, Unrestricted, Parse(""))
		assert.Equal(t, Unrestricted, Parse("   "))
	})

	t.Run("Precedence", func(t *testing.T) {
		e := Parse("a|b&c,d")
		assert.Equal(t, Expression{Alternatives: []Conjunction{
			{{Literal{"a"}, Literal{"b"}}, {Literal{"c"}}},
			{{Literal{"d"}}},
		}}, e)
	})

	t.Run("CaseAndSpace", func(t *testing.T) {
		e := Parse("  Oak_Log | *PLANKS ")
		assert.Equal(t, Disjunction{Literal{"oak_log"}, Contains{"planks"}}, e.Alternatives[0][0])
	})

	t.Run("Modifiers", func(t *testing.T) {
		tests := []struct {
			in   string
			want Atom
		}{
			{"stone", Literal{"stone"}},
			{"*planks", Contains{"planks"}},
			{"^raw_", StartsWith{"raw_"}},
			{"$_ore", EndsWith{"_ore"}},
			{"#logs", Tag{"logs"}},
			{"~poison", PotionEffect{AttributeQuery{Name: "poison"}}},
			{"~poison_2", PotionEffect{AttributeQuery{Name: "poison", Level: 2, HasLevel: true}}},
			{"+sharpness_3", Enchantment{AttributeQuery{Name: "sharpness", Level: 3, HasLevel: true}}},
			{"+fire_aspect", Enchantment{AttributeQuery{Name: "fire_aspect"}}},
			{"!#logs", Not{Tag{"logs"}}},
			{"!!stone", Not{Not{Literal{"stone"}}}},
			{"?stone", Literal{"?stone"}},
			{"", Literal{}},
			{"!", Not{Literal{}}},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, ParseAtom(tt.in), tt.in)
		}
	})

	t.Run("BodyNotTrimmedAfterModifier", func(t *testing.T) {
		assert.Equal(t, Not{Literal{" stone"}}, ParseAtom("! stone"))
	})

	t.Run("TrailingSeparators", func(t *testing.T) {
		assert.Equal(t, Parse("stone"), Parse("stone,"))
		assert.Equal(t, Parse("stone&dirt"), Parse("stone&dirt&"))
		assert.Equal(t, Expression{Alternatives: []Conjunction{}}, Parse(","))
		assert.Equal(t, Expression{Alternatives: []Conjunction{{}}}, Parse("&"))
		assert.Equal(t, Expression{Alternatives: []Conjunction{{{}}}}, Parse("|"))
	})

	t.Run("EmptyMiddleSegment", func(t *testing.T) {
		e := Parse("a,,b")
		assert.Len(t, e.Alternatives, 3)
		assert.Equal(t, Conjunction{{Literal{}}}, e.Alternatives[1])
	})
}

func TestParseAttributeQuery(t *testing.T) {
	tests := []struct {
		in   string
		want AttributeQuery
	}{
		{"poison", AttributeQuery{Name: "poison"}},
		{"poison_2", AttributeQuery{Name: "poison", Level: 2, HasLevel: true}},
		{"fire_aspect", AttributeQuery{Name: "fire_aspect"}},
		{"fire_aspect_2", AttributeQuery{Name: "fire_aspect", Level: 2, HasLevel: true}},
		{"instant_health_x", AttributeQuery{Name: "instant_health_x"}},
		{"poison_", AttributeQuery{Name: "poison"}},
		{"poison__2", AttributeQuery{Name: "poison_", Level: 2, HasLevel: true}},
		{"sharpness_03", AttributeQuery{Name: "sharpness", Level: 3, HasLevel: true}},
		{"", AttributeQuery{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAttributeQuery(tt.in), tt.in)
	}
}

func TestRoundTrip(t *testing.T) {
	labels := []string{
		"stone",
		"#logs|*planks",
		"+sharpness_3&!~poison",
		"diamond,emerald,^raw_&!$_block",
		"~poison_2|~regeneration,+mending",
		"!!#logs",
		",",
		"&",
		"|",
		"a&|&b",
	}
	for _, label := range labels {
		e := Parse(label)
		assert.Equal(t, e, Parse(e.String()), label)
	}
	assert.Equal(t, "#logs|*planks", Parse(" #LOGS | *planks ").String())
	assert.Equal(t, "~poison", Parse("~poison_").String())
}

func TestRoundTripBlankAtoms(t *testing.T) {
	p := &provider{}
	items := []stack{stone, oakLog, sword3, poison1, {id: "a"}}
	tests := []struct {
		label string
		want  string
	}{
		{" & ", "|&|"},
		{"  |", "|"},
		{" , ", "|,|"},
		{"a& ", "a&|"},
		{"a| ", "a"},
		{"a,,stone", "a,|,stone"},
		{"!", "!"},
		{" ! ", "!"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			e := Parse(tt.label)
			text := e.String()
			assert.Equal(t, tt.want, text)
			again := Parse(text)
			for _, item := range items {
				assert.Equal(t, e.Evaluate(p, item), again.Evaluate(p, item), item.id)
			}
		})
	}
}
