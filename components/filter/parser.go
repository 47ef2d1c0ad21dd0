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
)

// Parse turns label text into an Expression. It never fails: malformed text
// degrades to atoms that simply do not match.
func Parse(label string) Expression {
	if strings.TrimSpace(label) == "" {
		return Unrestricted
	}
	groups := split(label, ",")
	e := Expression{Alternatives: make([]Conjunction, 0, len(groups))}
	for _, group := range groups {
		ands := split(group, "&")
		c := make(Conjunction, 0, len(ands))
		for _, and := range ands {
			ors := split(and, "|")
			d := make(Disjunction, 0, len(ors))
			for _, or := range ors {
				d = append(d, ParseAtom(or))
			}
			c = append(c, d)
		}
		e.Alternatives = append(e.Alternatives, c)
	}
	return e
}

// ParseAtom lower-cases and trims text, then resolves its modifier.
func ParseAtom(text string) Atom {
	return parseAtom(strings.ToLower(strings.TrimSpace(text)))
}

// parseAtom does not trim again: the body after a modifier is taken as is.
func parseAtom(p string) Atom {
	if p == "" {
		return Literal{}
	}
	body := p[1:]
	switch p[0] {
	case ModContains:
		return Contains{Text: body}
	case ModStartsWith:
		return StartsWith{Prefix: body}
	case ModEndsWith:
		return EndsWith{Suffix: body}
	case ModTag:
		return Tag{Name: body}
	case ModPotion:
		return PotionEffect{Query: ParseAttributeQuery(body)}
	case ModEnchantment:
		return Enchantment{Query: ParseAttributeQuery(body)}
	case ModNot:
		return Not{Atom: parseAtom(body)}
	default:
		return Literal{Name: p}
	}
}

// split drops trailing empty segments, so "stone," is a single alternative
// and "," has none. An empty string yields one empty segment.
func split(s, sep string) []string {
	parts := strings.Split(s, sep)
	n := len(parts)
	for n > 0 && parts[n-1] == "" {
		n--
	}
	if n == 0 && s == "" {
		return parts[:1]
	}
	return parts[:n]
}
