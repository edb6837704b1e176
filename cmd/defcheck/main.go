// defcheck validates the registry data files and optionally rewrites them in
// normalized form.
//
// Checks:
//   - every component entry has a name and parses as YAML
//   - every type references defined components only
//   - no type is declared twice
//
// With -write, components.yaml is rewritten with duplicates collapsed (last
// entry wins) and entries sorted by name; types.yaml is rewritten with each
// requirement list deduplicated.
//
// Usage:
//
//	go run ./cmd/defcheck [-components path] [-types path] [-write]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/l1jgo/ecsreg/internal/core/ecs"
	"github.com/l1jgo/ecsreg/internal/data"
	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML structures: normalized output
// ---------------------------------------------------------------------------

type ComponentOut struct {
	Name     string         `yaml:"name"`
	Defaults map[string]any `yaml:"defaults,omitempty"`
}

type ComponentFile struct {
	Components []ComponentOut `yaml:"components"`
}

type TypeOut struct {
	Name       string   `yaml:"name"`
	Components []string `yaml:"components,flow"`
}

type TypeFile struct {
	Types []TypeOut `yaml:"types"`
}

// ---------------------------------------------------------------------------
// Main
// ---------------------------------------------------------------------------

func main() {
	componentsPath := flag.String("components", filepath.Join("data", "yaml", "components.yaml"), "component definitions")
	typesPath := flag.String("types", filepath.Join("data", "yaml", "types.yaml"), "type declarations")
	write := flag.Bool("write", false, "rewrite both files in normalized form")
	flag.Parse()

	// ---- Load & validate ----
	components, err := data.LoadComponentTable(*componentsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	types, err := data.LoadTypeTable(*typesPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if err := check(components, types); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("OK: %d components, %d types\n", components.Count(), types.Count())

	if !*write {
		return
	}

	// ---- Write normalized files ----
	compOut, typeOut := normalize(components, types)
	if err := writeYAML(*componentsPath, "# Component definitions - normalized by defcheck\n\n", compOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d components to %s\n", len(compOut.Components), *componentsPath)
	if err := writeYAML(*typesPath, "# Type declarations - normalized by defcheck\n\n", typeOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d types to %s\n", len(typeOut.Types), *typesPath)
}

// check installs both tables into a scratch World, which applies the same
// validation the frame driver does at startup.
func check(components *data.ComponentTable, types *data.TypeTable) error {
	w := ecs.NewWorld(nil)
	if err := components.Install(w); err != nil {
		return err
	}
	return types.Install(w)
}

func normalize(components *data.ComponentTable, types *data.TypeTable) (*ComponentFile, *TypeFile) {
	seen := make(map[string]bool, components.Count())
	cf := &ComponentFile{}
	for _, e := range components.Entries() {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		eff := components.Get(e.Name)
		cf.Components = append(cf.Components, ComponentOut{Name: eff.Name, Defaults: eff.Defaults})
	}
	sort.Slice(cf.Components, func(i, j int) bool {
		return cf.Components[i].Name < cf.Components[j].Name
	})

	tf := &TypeFile{}
	for _, e := range types.Entries() {
		var comps []string
		dup := make(map[string]bool, len(e.Components))
		for _, c := range e.Components {
			if dup[c] {
				continue
			}
			dup[c] = true
			comps = append(comps, c)
		}
		tf.Types = append(tf.Types, TypeOut{Name: e.Name, Components: comps})
	}
	return cf, tf
}

func writeYAML(path, header string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append([]byte(header), out...), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
