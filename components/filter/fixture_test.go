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
	"github.com/rulego/hopperfilter/api/types"
)

// stack is a deterministic item used by the tests.
type stack struct {
	id           string
	tags         []string
	potion       bool
	effects      []types.PotionEffect
	enchantments map[string]int
}

// provider answers from the stack itself and counts lookups.
type provider struct {
	idLookups  int
	tagLookups int
}

func (p *provider) TypeIdentifier(item types.Item) string {
	p.idLookups++
	return item.(stack).id
}

func (p *provider) HasCategoryTag(name string, item types.Item) bool {
	p.tagLookups++
	for _, tag := range item.(stack).tags {
		if tag == name {
			return true
		}
	}
	return false
}

func (p *provider) PotionEffects(item types.Item) ([]types.PotionEffect, bool) {
	s := item.(stack)
	return s.effects, s.potion
}

func (p *provider) Enchantments(item types.Item) map[string]int {
	return item.(stack).enchantments
}

var (
	oakLog      = stack{id: "oak_log", tags: []string{"logs", "logs_that_burn"}}
	oakPlanks   = stack{id: "oak_planks", tags: []string{"planks"}}
	cobblestone = stack{id: "cobblestone", tags: []string{"stone_crafting_materials"}}
	stone       = stack{id: "stone"}
	poison1     = stack{id: "potion", potion: true, effects: []types.PotionEffect{{Name: "poison", Level: 1}}}
	poison2     = stack{id: "splash_potion", potion: true, effects: []types.PotionEffect{{Name: "poison", Level: 2}}}
	water       = stack{id: "potion", potion: true}
	sword3      = stack{id: "diamond_sword", enchantments: map[string]int{"sharpness": 3, "unbreaking": 2}}
	sword2      = stack{id: "iron_sword", enchantments: map[string]int{"sharpness": 2}}
	// not potion-like but claims effects, must never match ~
	fakePoison = stack{id: "spider_eye", effects: []types.PotionEffect{{Name: "poison", Level: 1}}}
)
