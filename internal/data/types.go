package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/ecsreg/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// TypeEntry declares a named group over required component names.
type TypeEntry struct {
	Name       string   `yaml:"name"`
	Components []string `yaml:"components"`
}

// TypeTable holds type declarations in file order.
type TypeTable struct {
	entries []TypeEntry
	byName  map[string]*TypeEntry
}

type typeFile struct {
	Types []TypeEntry `yaml:"types"`
}

// LoadTypeTable loads a types YAML file.
func LoadTypeTable(path string) (*TypeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read type list: %w", err)
	}
	return ParseTypeTable(raw)
}

// ParseTypeTable decodes types YAML. Duplicate names are rejected here rather
// than at install time so the file is checked as a whole.
func ParseTypeTable(raw []byte) (*TypeTable, error) {
	var f typeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse type list: %w", err)
	}
	t := &TypeTable{
		entries: f.Types,
		byName:  make(map[string]*TypeEntry, len(f.Types)),
	}
	for i := range t.entries {
		e := &t.entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("parse type list: entry %d has no name", i)
		}
		if _, dup := t.byName[e.Name]; dup {
			return nil, fmt.Errorf("parse type list: duplicate type %q", e.Name)
		}
		t.byName[e.Name] = e
	}
	return t, nil
}

// Get returns the entry for name, or nil.
func (t *TypeTable) Get(name string) *TypeEntry {
	return t.byName[name]
}

// Count returns the number of types.
func (t *TypeTable) Count() int {
	return len(t.entries)
}

// Entries returns the entries in file order.
func (t *TypeTable) Entries() []TypeEntry {
	return t.entries
}

// Install declares every type on w. Components must already be defined.
func (t *TypeTable) Install(w *ecs.World) error {
	for _, e := range t.entries {
		if err := w.DeclareType(e.Name, e.Components...); err != nil {
			return fmt.Errorf("install type: %w", err)
		}
	}
	return nil
}
