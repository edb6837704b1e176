package ecs

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Attrs is a component's attribute mapping.
type Attrs map[string]any

// Clone returns a deep copy. Nested Attrs, map[string]any and []any values are
// copied; everything else is copied by value.
func (a Attrs) Clone() Attrs {
	if a == nil {
		return Attrs{}
	}
	out := make(Attrs, len(a))
	for k, v := range a {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case Attrs:
		return t.Clone()
	case map[string]any:
		return map[string]any(Attrs(t).Clone())
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	default:
		return v
	}
}

// Definition is the default template of a component kind.
type Definition struct {
	name     string
	defaults Attrs
	fields   []string
}

func newDefinition(name string, defaults Attrs) *Definition {
	d := &Definition{name: name, defaults: defaults.Clone()}
	d.fields = make([]string, 0, len(d.defaults))
	for k := range d.defaults {
		d.fields = append(d.fields, k)
	}
	sort.Strings(d.fields)
	return d
}

func (d *Definition) Name() string { return d.name }

// Fields returns the sorted field names of the template.
func (d *Definition) Fields() []string {
	return append([]string(nil), d.fields...)
}

// Defaults returns a copy of the template.
func (d *Definition) Defaults() Attrs { return d.defaults.Clone() }

func (d *Definition) hasField(field string) bool {
	_, ok := d.defaults[field]
	return ok
}

// validate checks every override key against the field set.
func (d *Definition) validate(overrides Attrs) error {
	for k := range overrides {
		if !d.hasField(k) {
			return fmt.Errorf("%s.%s: %w", d.name, k, ErrUnknownField)
		}
	}
	return nil
}

// Instantiate clones the defaults and overlays overrides. Overrides win.
func (d *Definition) Instantiate(overrides Attrs) (*Instance, error) {
	if err := d.validate(overrides); err != nil {
		return nil, err
	}
	return d.instantiate(overrides), nil
}

func (d *Definition) instantiate(overrides Attrs) *Instance {
	attrs := d.defaults.Clone()
	for k, v := range overrides {
		attrs[k] = cloneValue(v)
	}
	return &Instance{def: d, attrs: attrs}
}

// Instance is one component attached to one entity.
type Instance struct {
	def   *Definition
	attrs Attrs
}

func (c *Instance) Name() string { return c.def.name }

// Get returns the value of field, or nil when unset.
func (c *Instance) Get(field string) any { return c.attrs[field] }

// Set updates field in place. Only fields of the component's template are accepted.
func (c *Instance) Set(field string, v any) error {
	if !c.def.hasField(field) {
		return fmt.Errorf("%s.%s: %w", c.def.name, field, ErrUnknownField)
	}
	c.attrs[field] = v
	return nil
}

// Attrs returns a copy of the instance's attributes.
func (c *Instance) Attrs() Attrs { return c.attrs.Clone() }

// DefinitionTable maps component names to their templates. Last write wins.
type DefinitionTable struct {
	defs map[string]*Definition
}

func NewDefinitionTable() *DefinitionTable {
	return &DefinitionTable{defs: make(map[string]*Definition, 32)}
}

// Define installs or replaces the template for name. It reports whether a
// previous template was replaced.
func (t *DefinitionTable) Define(name string, defaults Attrs) (bool, error) {
	if name == "" || strings.ContainsFunc(name, unicode.IsSpace) {
		return false, fmt.Errorf("component name %q: %w", name, ErrConfiguration)
	}
	_, replaced := t.defs[name]
	t.defs[name] = newDefinition(name, defaults)
	return replaced, nil
}

func (t *DefinitionTable) Lookup(name string) (*Definition, bool) {
	d, ok := t.defs[name]
	return d, ok
}

// Names returns all defined component names, sorted.
func (t *DefinitionTable) Names() []string {
	out := make([]string, 0, len(t.defs))
	for name := range t.defs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (t *DefinitionTable) Count() int { return len(t.defs) }
