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
	"strconv"
	"strings"
)

// Modifier characters.
const (
	ModContains    = '*'
	ModStartsWith  = '^'
	ModEndsWith    = '$'
	ModTag         = '#'
	ModPotion      = '~'
	ModEnchantment = '+'
	ModNot         = '!'
)

// Atom is the smallest unit of a label. The set of atoms is closed.
type Atom interface {
	// String returns the atom in label syntax.
	String() string
	match(s *subject) bool
}

// Literal matches the exact type identifier.
type Literal struct {
	Name string
}

// Contains matches type identifiers containing Text.
type Contains struct {
	Text string
}

// StartsWith matches type identifiers starting with Prefix.
type StartsWith struct {
	Prefix string
}

// EndsWith matches type identifiers ending with Suffix.
type EndsWith struct {
	Suffix string
}

// Tag matches item types that are members of a category tag.
type Tag struct {
	Name string
}

// PotionEffect matches potion-like items carrying an effect.
type PotionEffect struct {
	Query AttributeQuery
}

// Enchantment matches items carrying an enchantment.
type Enchantment struct {
	Query AttributeQuery
}

// Not inverts the wrapped atom.
type Not struct {
	Atom Atom
}

func (a Literal) String() string      { return a.Name }
func (a Contains) String() string     { return string(ModContains) + a.Text }
func (a StartsWith) String() string   { return string(ModStartsWith) + a.Prefix }
func (a EndsWith) String() string     { return string(ModEndsWith) + a.Suffix }
func (a Tag) String() string          { return string(ModTag) + a.Name }
func (a PotionEffect) String() string { return string(ModPotion) + a.Query.String() }
func (a Enchantment) String() string  { return string(ModEnchantment) + a.Query.String() }
func (a Not) String() string          { return string(ModNot) + a.Atom.String() }

// AttributeQuery is the `name` or `name_<level>` body of a potion or
// enchantment atom. Level is user facing (amplifier + 1).
type AttributeQuery struct {
	Name     string
	Level    int
	HasLevel bool
}

// ParseAttributeQuery splits off a trailing `_<integer>` level. When the last
// segment is not an integer the whole body is the name. Trailing underscores
// are ignored.
func ParseAttributeQuery(body string) AttributeQuery {
	body = strings.TrimRight(body, "_")
	i := strings.LastIndexByte(body, '_')
	if i < 0 {
		return AttributeQuery{Name: body}
	}
	level, err := strconv.Atoi(body[i+1:])
	if err != nil {
		return AttributeQuery{Name: body}
	}
	return AttributeQuery{Name: body[:i], Level: level, HasLevel: true}
}

// Accepts reports whether an attribute at the given level satisfies the query.
func (q AttributeQuery) Accepts(level int) bool {
	return !q.HasLevel || q.Level == level
}

func (q AttributeQuery) String() string {
	if !q.HasLevel {
		return q.Name
	}
	return q.Name + "_" + strconv.Itoa(q.Level)
}

// Disjunction is satisfied when any atom is.
type Disjunction []Atom

// Conjunction is satisfied when every disjunction is.
type Conjunction []Disjunction

// Expression is a parsed label. It is immutable once parsed and safe to share.
type Expression struct {
	// Alternatives are tried in order, the first satisfied one wins.
	Alternatives []Conjunction
	// Unrestricted is set for a blank label, which lets everything through.
	Unrestricted bool
}

// Unrestricted is the expression of an unlabeled transfer point.
var Unrestricted = Expression{Unrestricted: true}

// String drops empty literals, they never match and have no text of their
// own. A disjunction left without atoms is written as a bare "|".
func (d Disjunction) String() string {
	parts := make([]string, 0, len(d))
	for _, a := range d {
		if l, ok := a.(Literal); ok && l.Name == "" {
			continue
		}
		parts = append(parts, a.String())
	}
	if len(parts) == 0 {
		return "|"
	}
	return strings.Join(parts, "|")
}

func (c Conjunction) String() string {
	if len(c) == 0 {
		return "&"
	}
	parts := make([]string, len(c))
	for i, d := range c {
		parts[i] = d.String()
	}
	return strings.Join(parts, "&")
}

// String serializes the expression back into label text.
func (e Expression) String() string {
	if e.Unrestricted {
		return ""
	}
	if len(e.Alternatives) == 0 {
		return ","
	}
	parts := make([]string, len(e.Alternatives))
	for i, c := range e.Alternatives {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
