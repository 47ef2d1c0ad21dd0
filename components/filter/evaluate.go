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
	"strings"

	"github.com/rulego/hopperfilter/api/types"
)

// subject is the item under evaluation. The type identifier is resolved at
// most once per evaluation.
type subject struct {
	provider types.AttributeProvider
	item     types.Item
	id       string
	resolved bool
}

func (s *subject) typeID() string {
	if !s.resolved {
		s.id = s.provider.TypeIdentifier(s.item)
		s.resolved = true
	}
	return s.id
}

// Evaluate reports whether item may pass the expression. Members are checked
// in order and evaluation stops at the first deciding member.
func (e Expression) Evaluate(provider types.AttributeProvider, item types.Item) bool {
	if e.Unrestricted {
		return true
	}
	s := &subject{provider: provider, item: item}
	for _, c := range e.Alternatives {
		if c.match(s) {
			return true
		}
	}
	return false
}

func (c Conjunction) match(s *subject) bool {
	for _, d := range c {
		if !d.match(s) {
			return false
		}
	}
	return true
}

func (d Disjunction) match(s *subject) bool {
	for _, a := range d {
		if a.match(s) {
			return true
		}
	}
	return false
}

// MatchAtom evaluates a single atom against item.
func MatchAtom(atom Atom, provider types.AttributeProvider, item types.Item) bool {
	return atom.match(&subject{provider: provider, item: item})
}

// Allows parses label and evaluates it. ok=false means the holder has no
// label, which allows everything.
func Allows(label string, ok bool, provider types.AttributeProvider, item types.Item) bool {
	if !ok {
		return true
	}
	return Parse(label).Evaluate(provider, item)
}

func (a Literal) match(s *subject) bool {
	return s.typeID() == a.Name
}

func (a Contains) match(s *subject) bool {
	return strings.Contains(s.typeID(), a.Text)
}

func (a StartsWith) match(s *subject) bool {
	return strings.HasPrefix(s.typeID(), a.Prefix)
}

func (a EndsWith) match(s *subject) bool {
	return strings.HasSuffix(s.typeID(), a.Suffix)
}

func (a Tag) match(s *subject) bool {
	return s.provider.HasCategoryTag(a.Name, s.item)
}

func (a PotionEffect) match(s *subject) bool {
	effects, ok := s.provider.PotionEffects(s.item)
	if !ok {
		return false
	}
	for _, effect := range effects {
		if effect.Name == a.Query.Name && a.Query.Accepts(effect.Level) {
			return true
		}
	}
	return false
}

func (a Enchantment) match(s *subject) bool {
	level, ok := s.provider.Enchantments(s.item)[a.Query.Name]
	return ok && a.Query.Accepts(level)
}

func (a Not) match(s *subject) bool {
	return !a.Atom.match(s)
}
