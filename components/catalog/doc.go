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

// Package catalog provides a data driven AttributeProvider for ItemStack items.
//
// The catalog describes the attribute universe the host would otherwise
// resolve through its registries: which item types are potion-like, which
// store enchantments, the block and item tags, the effects of each base
// potion type, and the known effect and enchantment names.
//
// Tags list their members and may include other tags with a `#` prefix.
// A tag can also carry an expr predicate over the item type, for example:
//
//	tags:
//	  items:
//	    logs:
//	      values: ["#oak_logs", "crimson_stem"]
//	      match: 'id endsWith "_log" || id endsWith "_wood"'
package catalog
