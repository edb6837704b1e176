package ecs

import "sort"

// Registry holds one component store per component name, created on first
// attach. Stores are never dropped, even if the definition is replaced.
type Registry struct {
	stores map[string]*SparseSet[*Instance]
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[string]*SparseSet[*Instance], 16),
		order:  make([]string, 0, 16),
	}
}

// Store returns the store for name, creating it if needed.
func (r *Registry) Store(name string) *SparseSet[*Instance] {
	s, ok := r.stores[name]
	if !ok {
		s = NewSparseSet[*Instance](64)
		r.stores[name] = s
		r.order = append(r.order, name)
	}
	return s
}

// Lookup returns the store for name without creating it.
func (r *Registry) Lookup(name string) (*SparseSet[*Instance], bool) {
	s, ok := r.stores[name]
	return s, ok
}

// Has reports whether id carries the named component.
func (r *Registry) Has(id EntityID, name string) bool {
	s, ok := r.stores[name]
	return ok && s.Has(id)
}

// HasAll reports whether id carries every named component.
func (r *Registry) HasAll(id EntityID, names []string) bool {
	for _, name := range names {
		if !r.Has(id, name) {
			return false
		}
	}
	return true
}

// Attached returns the sorted names of the components id carries.
func (r *Registry) Attached(id EntityID) []string {
	var out []string
	for _, name := range r.order {
		if r.stores[name].Has(id) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// RemoveAll clears the given entity from every registered component store.
func (r *Registry) RemoveAll(id EntityID) int {
	n := 0
	for _, name := range r.order {
		if _, ok := r.stores[name].Remove(id); ok {
			n++
		}
	}
	return n
}
