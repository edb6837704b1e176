package data

import (
	"fmt"
	"os"

	"github.com/l1jgo/ecsreg/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// ComponentEntry is one component definition: a name and its default attributes.
type ComponentEntry struct {
	Name     string         `yaml:"name"`
	Defaults map[string]any `yaml:"defaults"`
}

// ComponentTable holds component definitions in file order.
// A name listed twice keeps its last entry, matching DefineComponent.
type ComponentTable struct {
	entries []ComponentEntry
	byName  map[string]*ComponentEntry
}

type componentFile struct {
	Components []ComponentEntry `yaml:"components"`
}

// LoadComponentTable loads a components YAML file.
func LoadComponentTable(path string) (*ComponentTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read component list: %w", err)
	}
	return ParseComponentTable(raw)
}

// ParseComponentTable decodes components YAML.
func ParseComponentTable(raw []byte) (*ComponentTable, error) {
	var f componentFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse component list: %w", err)
	}
	t := &ComponentTable{
		entries: f.Components,
		byName:  make(map[string]*ComponentEntry, len(f.Components)),
	}
	for i := range t.entries {
		e := &t.entries[i]
		if e.Name == "" {
			return nil, fmt.Errorf("parse component list: entry %d has no name", i)
		}
		t.byName[e.Name] = e
	}
	return t, nil
}

// Get returns the effective entry for name, or nil.
func (t *ComponentTable) Get(name string) *ComponentEntry {
	return t.byName[name]
}

// Count returns the number of distinct component names.
func (t *ComponentTable) Count() int {
	return len(t.byName)
}

// Entries returns the entries in file order, duplicates included.
func (t *ComponentTable) Entries() []ComponentEntry {
	return t.entries
}

// Install defines every entry on w in file order.
func (t *ComponentTable) Install(w *ecs.World) error {
	for _, e := range t.entries {
		if err := w.DefineComponent(e.Name, ecs.Attrs(e.Defaults)); err != nil {
			return fmt.Errorf("install component %q: %w", e.Name, err)
		}
	}
	return nil
}
