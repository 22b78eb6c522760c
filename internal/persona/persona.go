// Package persona holds the static persona metadata surfaced by the persona
// viewer app. Personas are compile-time data; the active persona only affects
// XP accrual.
package persona

import (
	"fmt"
	"sort"
)

// Persona describes one selectable persona.
type Persona struct {
	ID           string  `yaml:"id"            json:"id"`
	Name         string  `yaml:"name"          json:"name"`
	Role         string  `yaml:"role"          json:"role"`
	Greeting     string  `yaml:"greeting"      json:"greeting"`
	XPMultiplier float64 `yaml:"xp_multiplier" json:"xp_multiplier"`
}

var personas = map[string]Persona{
	"architect": {
		ID:           "architect",
		Name:         "The Architect",
		Role:         "systems design",
		Greeting:     "Every window has its place.",
		XPMultiplier: 1.0,
	},
	"navigator": {
		ID:           "navigator",
		Name:         "The Navigator",
		Role:         "workflow guidance",
		Greeting:     "Where to next?",
		XPMultiplier: 1.2,
	},
	"archivist": {
		ID:           "archivist",
		Name:         "The Archivist",
		Role:         "vault curation",
		Greeting:     "Nothing is ever lost, only filed.",
		XPMultiplier: 1.1,
	},
	"sentinel": {
		ID:           "sentinel",
		Name:         "The Sentinel",
		Role:         "watchkeeping",
		Greeting:     "All quiet on the desktop.",
		XPMultiplier: 0.9,
	},
}

// DefaultID is the persona assigned to new sessions.
const DefaultID = "architect"

// Lookup returns the persona with the given ID.
func Lookup(id string) (Persona, error) {
	p, ok := personas[id]
	if !ok {
		return Persona{}, fmt.Errorf("unknown persona %q", id)
	}
	return p, nil
}

// List returns all personas sorted by ID.
func List() []Persona {
	out := make([]Persona, 0, len(personas))
	for _, p := range personas {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
