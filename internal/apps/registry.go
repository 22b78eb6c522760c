// Package apps holds the static registry of launchable application
// definitions. The registry is a plain lookup table consumed by the window
// store's open operation; it never changes after construction.
package apps

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Definition describes one launchable application.
type Definition struct {
	ID          string `yaml:"id"                    json:"id"`
	Title       string `yaml:"title"                 json:"title"`
	Icon        string `yaml:"icon,omitempty"        json:"icon,omitempty"`
	DefaultSize [2]int `yaml:"default_size"          json:"default_size"` // [width, height]
	MinSize     [2]int `yaml:"min_size,omitempty"    json:"min_size,omitempty"`
	Singleton   bool   `yaml:"singleton,omitempty"   json:"singleton,omitempty"`
	Category    string `yaml:"category,omitempty"    json:"category,omitempty"`
}

// MinWidth and MinHeight are the global floor for window sizes. Definitions
// may raise them per app but never lower them.
const (
	MinWidth  = 200
	MinHeight = 150
)

// EffectiveMinSize returns the definition's minimum size with the global
// floor applied.
func (d Definition) EffectiveMinSize() (int, int) {
	w, h := d.MinSize[0], d.MinSize[1]
	if w < MinWidth {
		w = MinWidth
	}
	if h < MinHeight {
		h = MinHeight
	}
	return w, h
}

// Registry maps app IDs to definitions.
type Registry struct {
	defs map[string]Definition
}

// ErrUnknownApp is returned when an app ID has no registered definition.
var ErrUnknownApp = fmt.Errorf("unknown app id")

// NewRegistry builds a registry from the given definitions.
// Duplicate IDs and degenerate sizes are rejected.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if err := validate(d); err != nil {
			return nil, err
		}
		if _, exists := r.defs[d.ID]; exists {
			return nil, fmt.Errorf("duplicate app id %q", d.ID)
		}
		r.defs[d.ID] = d
	}
	return r, nil
}

// Builtin returns a registry with only the built-in app set.
func Builtin() *Registry {
	r, err := NewRegistry(builtinDefinitions)
	if err != nil {
		// The builtin table is compile-time data; a validation failure
		// here is a programming error.
		panic(err)
	}
	return r
}

// LoadFile returns a registry combining the builtin set with extra
// definitions read from a YAML file. Extra definitions may not shadow
// builtin IDs.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read app definitions: %w", err)
	}

	var extra []Definition
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parse app definitions: %w", err)
	}

	return NewRegistry(append(append([]Definition{}, builtinDefinitions...), extra...))
}

func validate(d Definition) error {
	if d.ID == "" {
		return fmt.Errorf("app definition missing id (title %q)", d.Title)
	}
	if d.Title == "" {
		return fmt.Errorf("app %q missing title", d.ID)
	}
	if d.DefaultSize[0] <= 0 || d.DefaultSize[1] <= 0 {
		return fmt.Errorf("app %q has non-positive default size %v", d.ID, d.DefaultSize)
	}
	return nil
}

// Lookup returns the definition for the given app ID.
func (r *Registry) Lookup(id string) (Definition, error) {
	d, ok := r.defs[id]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrUnknownApp, id)
	}
	return d, nil
}

// Has reports whether the registry contains the given app ID.
func (r *Registry) Has(id string) bool {
	_, ok := r.defs[id]
	return ok
}

// List returns all definitions sorted by ID.
func (r *Registry) List() []Definition {
	defs := make([]Definition, 0, len(r.defs))
	for _, d := range r.defs {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}
