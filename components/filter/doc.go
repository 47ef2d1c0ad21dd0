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

// Package filter implements the hopper label filter language.
//
// A label is split into alternatives by `,`, each alternative into
// conjunction groups by `&` and each group into atoms by `|`, so `,` binds
// loosest and `|` tightest. An item passes when some alternative has every
// group satisfied by at least one atom.
//
// Atoms are lower-cased and trimmed, then dispatched on their first character:
//
//	name       type identifier equals name
//	*text      type identifier contains text
//	^text      type identifier starts with text
//	$text      type identifier ends with text
//	#tag       item type is in the block or item tag
//	~effect    potion-like item carrying effect, ~effect_2 pins the level
//	+ench      item carrying enchantment, +ench_3 pins the level
//	!atom      negates the atom that follows, modifiers can be stacked
//
// For example:
//
//	#logs|*planks                 logs or anything made of planks
//	+sharpness_3&!~poison         sharpness III that is not a poison potion
//	diamond,emerald,^raw_         diamonds, emeralds and raw ores
//
// Parsing never fails. A blank label allows everything.
package filter
