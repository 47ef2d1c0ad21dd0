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

// Item is an opaque handle to an item instance. Only an AttributeProvider
// knows how to look inside it.
type Item interface{}

// PotionEffect is one effect carried by a potion-like item.
// Level is user facing, i.e. amplifier + 1.
type PotionEffect struct {
	Name  string
	Level int
}

// AttributeProvider answers the questions the filter engine asks about an item.
// Unknown names must resolve to an absent result, never to a failure.
type AttributeProvider interface {
	// TypeIdentifier returns the item type key, e.g. "oak_log".
	TypeIdentifier(item Item) string
	// HasCategoryTag reports whether the item type is a member of the named tag
	// in either the block or the item tag namespace.
	HasCategoryTag(name string, item Item) bool
	// PotionEffects returns the effects of a potion-like item.
	// ok is false when the item is not potion-like.
	PotionEffects(item Item) (effects []PotionEffect, ok bool)
	// Enchantments returns enchantment name to level. Enchantment storage
	// containers report their stored enchantments.
	Enchantments(item Item) map[string]int
}

// ItemStack is the item representation exchanged with hosts over the bridge
// and understood by the catalog provider. Names may be namespaced
// ("minecraft:oak_log"); only the key part is compared.
type ItemStack struct {
	Type   string `json:"type"`
	Amount int    `json:"amount,omitempty"`
	// Potion is the base potion type of a potion-like item, e.g. "strong_poison".
	Potion string `json:"potion,omitempty"`
	// Effects are custom effects on top of the base potion type.
	Effects []Effect `json:"effects,omitempty"`
	// Enchantments applied to the item.
	Enchantments map[string]int `json:"enchantments,omitempty"`
	// StoredEnchantments held by an enchantment storage container.
	StoredEnchantments map[string]int `json:"storedEnchantments,omitempty"`
}

// Effect is a raw potion effect. Amplifier is zero based.
type Effect struct {
	Type      string `json:"type"`
	Amplifier int    `json:"amplifier"`
}
