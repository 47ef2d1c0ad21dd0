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

package catalog

import (
	_ "embed"
	"os"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"
	"gopkg.in/yaml.v3"

	"github.com/rulego/hopperfilter/api/types"
	"github.com/rulego/hopperfilter/utils/maps"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// TagDef is a tag definition.
type TagDef struct {
	// Values are member type keys, `#name` includes another tag of the same namespace.
	Values []string `json:"values"`
	// Match is an optional expr predicate over the type key `id`.
	Match string `json:"match"`
}

// Tags holds the two tag namespaces.
type Tags struct {
	Blocks map[string]TagDef `json:"blocks"`
	Items  map[string]TagDef `json:"items"`
}

// Config is the catalog source.
type Config struct {
	PotionLike         []string                  `json:"potionLike"`
	EnchantmentStorage []string                  `json:"enchantmentStorage"`
	Tags               Tags                      `json:"tags"`
	Potions            map[string][]types.Effect `json:"potions"`
	// Effects and Enchantments are the known registries. When set, item
	// attributes outside them are ignored.
	Effects      []string `json:"effects"`
	Enchantments []string `json:"enchantments"`
}

// tagEnv is the environment of a tag predicate.
type tagEnv struct {
	ID string `expr:"id"`
}

type tag struct {
	members map[string]struct{}
	match   *vm.Program
}

// Catalog implements types.AttributeProvider for types.ItemStack.
type Catalog struct {
	potionLike   map[string]struct{}
	storage      map[string]struct{}
	blockTags    map[string]*tag
	itemTags     map[string]*tag
	potions      map[string][]types.PotionEffect
	effects      map[string]struct{}
	enchantments map[string]struct{}
	// membership memoizes predicate tags per namespace/tag/type.
	membership *xsync.MapOf[string, bool]
}

var _ types.AttributeProvider = (*Catalog)(nil)

// Default returns the built-in vanilla catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a YAML catalog file.
func Load(path string) (*Catalog, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	c, err := Parse(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return c, nil
}

// Parse builds a catalog from YAML.
func Parse(buf []byte) (*Catalog, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(buf, &raw); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}
	var cfg Config
	if err := maps.Map2Struct(raw, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return New(cfg)
}

// New builds a catalog from cfg, compiling tag predicates and flattening
// tag includes.
func New(cfg Config) (*Catalog, error) {
	c := &Catalog{
		potionLike:   set(cfg.PotionLike),
		storage:      set(cfg.EnchantmentStorage),
		potions:      make(map[string][]types.PotionEffect, len(cfg.Potions)),
		effects:      set(cfg.Effects),
		enchantments: set(cfg.Enchantments),
		membership:   xsync.NewMapOf[string, bool](),
	}
	var err error
	if c.blockTags, err = buildTags(cfg.Tags.Blocks); err != nil {
		return nil, errors.Wrap(err, "block tags")
	}
	if c.itemTags, err = buildTags(cfg.Tags.Items); err != nil {
		return nil, errors.Wrap(err, "item tags")
	}
	for name, effects := range cfg.Potions {
		list := make([]types.PotionEffect, 0, len(effects))
		for _, e := range effects {
			list = append(list, types.PotionEffect{Name: Key(e.Type), Level: e.Amplifier + 1})
		}
		c.potions[Key(name)] = list
	}
	return c, nil
}

func buildTags(defs map[string]TagDef) (map[string]*tag, error) {
	tags := make(map[string]*tag, len(defs))
	for name, def := range defs {
		t := &tag{members: make(map[string]struct{})}
		if def.Match != "" {
			program, err := expr.Compile(def.Match, expr.Env(tagEnv{}), expr.AsBool())
			if err != nil {
				return nil, errors.Wrapf(err, "tag %s", name)
			}
			t.match = program
		}
		tags[Key(name)] = t
	}
	for name := range defs {
		if err := flatten(Key(name), defs, tags[Key(name)], map[string]bool{}); err != nil {
			return nil, err
		}
	}
	return tags, nil
}

// flatten copies the members of every included tag into into.
// Predicates of included tags are not inherited.
func flatten(name string, defs map[string]TagDef, into *tag, seen map[string]bool) error {
	if seen[name] {
		return errors.Errorf("tag %s includes itself", name)
	}
	seen[name] = true
	defer delete(seen, name)
	def, ok := lookupDef(defs, name)
	if !ok {
		return errors.Errorf("unknown tag #%s", name)
	}
	for _, v := range def.Values {
		if strings.HasPrefix(v, "#") {
			if err := flatten(Key(v[1:]), defs, into, seen); err != nil {
				return err
			}
			continue
		}
		into.members[Key(v)] = struct{}{}
	}
	return nil
}

func lookupDef(defs map[string]TagDef, name string) (TagDef, bool) {
	for n, def := range defs {
		if Key(n) == name {
			return def, true
		}
	}
	return TagDef{}, false
}

// Key strips a namespace ("minecraft:oak_log" -> "oak_log") and lower-cases.
func Key(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func set(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[Key(v)] = struct{}{}
	}
	return m
}

func stackOf(item types.Item) (types.ItemStack, bool) {
	switch v := item.(type) {
	case types.ItemStack:
		return v, true
	case *types.ItemStack:
		if v != nil {
			return *v, true
		}
	}
	return types.ItemStack{}, false
}

// TypeIdentifier returns the type key of the stack.
func (c *Catalog) TypeIdentifier(item types.Item) string {
	s, _ := stackOf(item)
	return Key(s.Type)
}

// HasCategoryTag checks the block namespace, then the item namespace.
func (c *Catalog) HasCategoryTag(name string, item types.Item) bool {
	s, ok := stackOf(item)
	if !ok {
		return false
	}
	id := Key(s.Type)
	return c.tagged("block", c.blockTags, name, id) || c.tagged("item", c.itemTags, name, id)
}

func (c *Catalog) tagged(namespace string, tags map[string]*tag, name, id string) bool {
	t, ok := tags[name]
	if !ok {
		return false
	}
	if _, ok := t.members[id]; ok {
		return true
	}
	if t.match == nil {
		return false
	}
	result, _ := c.membership.LoadOrCompute(namespace+"/"+name+"/"+id, func() bool {
		out, err := expr.Run(t.match, tagEnv{ID: id})
		if err != nil {
			return false
		}
		matched, _ := out.(bool)
		return matched
	})
	return result
}

// PotionEffects resolves the base potion type and appends custom effects.
func (c *Catalog) PotionEffects(item types.Item) ([]types.PotionEffect, bool) {
	s, ok := stackOf(item)
	if !ok {
		return nil, false
	}
	if _, ok := c.potionLike[Key(s.Type)]; !ok {
		return nil, false
	}
	base := c.potions[Key(s.Potion)]
	effects := make([]types.PotionEffect, 0, len(base)+len(s.Effects))
	for _, e := range base {
		if c.knownEffect(e.Name) {
			effects = append(effects, e)
		}
	}
	for _, e := range s.Effects {
		if name := Key(e.Type); c.knownEffect(name) {
			effects = append(effects, types.PotionEffect{Name: name, Level: e.Amplifier + 1})
		}
	}
	return effects, true
}

// Enchantments returns stored enchantments for storage containers, else the
// applied ones.
func (c *Catalog) Enchantments(item types.Item) map[string]int {
	s, ok := stackOf(item)
	if !ok {
		return nil
	}
	source := s.Enchantments
	if _, ok := c.storage[Key(s.Type)]; ok {
		source = s.StoredEnchantments
	}
	if len(source) == 0 {
		return nil
	}
	out := make(map[string]int, len(source))
	for name, level := range source {
		if name = Key(name); c.knownEnchantment(name) {
			out[name] = level
		}
	}
	return out
}

func (c *Catalog) knownEffect(name string) bool {
	if len(c.effects) == 0 {
		return true
	}
	_, ok := c.effects[name]
	return ok
}

func (c *Catalog) knownEnchantment(name string) bool {
	if len(c.enchantments) == 0 {
		return true
	}
	_, ok := c.enchantments[name]
	return ok
}
