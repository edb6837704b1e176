package ecs

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DeclareType creates a named group requiring components. Duplicate names
// are dropped, order is kept. Redeclaring with the same list is a no-op.
func (w *World) DeclareType(name string, components ...string) error {
	if name == "" || name == AllKey {
		return fmt.Errorf("declare type %q: %w", name, ErrConfiguration)
	}
	required, err := w.requirements(components)
	if err != nil {
		return fmt.Errorf("declare type %q: %w", name, err)
	}
	if g, ok := w.groups[name]; ok {
		if g.sameRequirements(required) {
			return nil
		}
		return fmt.Errorf("declare type %q: redeclared as %v, was %v: %w",
			name, required, g.required, ErrConfiguration)
	}
	w.createGroup(name, required)
	return nil
}

// Query returns the live group for spec. spec is either a declared type name
// or a whitespace-separated list of component names; empty means all. A new
// list creates and seeds a group keyed by the names in the given order, so
// "a b" and "b a" are cached separately.
func (w *World) Query(spec string) (*Group, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return w.all, nil
	}
	if g, ok := w.groups[spec]; ok {
		return g, nil
	}
	fields := strings.Fields(spec)
	key := strings.Join(fields, " ")
	if g, ok := w.groups[key]; ok {
		return g, nil
	}
	required, err := w.requirements(fields)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w: %w", spec, ErrQuery, err)
	}
	return w.createGroup(key, required), nil
}

// QueryFirst returns an arbitrary entity matching spec, or None.
func (w *World) QueryFirst(spec string) (EntityID, error) {
	g, err := w.Query(spec)
	if err != nil {
		return None, err
	}
	return g.First(), nil
}

// Group returns an existing group without creating one.
func (w *World) Group(key string) (*Group, bool) {
	g, ok := w.groups[key]
	return g, ok
}

// Groups returns every group key in creation order.
func (w *World) Groups() []string {
	out := make([]string, len(w.order))
	for i, g := range w.order {
		out[i] = g.key
	}
	return out
}

func (w *World) requirements(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		if _, ok := w.defs.Lookup(name); !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrComponentNotFound)
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

func (w *World) createGroup(key string, required []string) *Group {
	g := newGroup(key, required)
	w.groups[key] = g
	w.order = append(w.order, g)
	w.seed(g)
	w.log.Debug("group created",
		zap.String("group", key),
		zap.Strings("required", required),
		zap.Int("members", g.Len()),
	)
	return g
}
