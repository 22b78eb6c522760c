package apps

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinRegistry(t *testing.T) {
	r := Builtin()

	for _, id := range []string{"chat", "notepad", "terminal", "vault"} {
		if !r.Has(id) {
			t.Errorf("expected builtin app %q", id)
		}
	}

	d, err := r.Lookup("notepad")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if d.Title != "Notepad" {
		t.Errorf("expected title 'Notepad', got %q", d.Title)
	}
	if d.DefaultSize[0] <= 0 || d.DefaultSize[1] <= 0 {
		t.Errorf("expected positive default size, got %v", d.DefaultSize)
	}
}

func TestLookupUnknown(t *testing.T) {
	r := Builtin()

	_, err := r.Lookup("does-not-exist")
	if !errors.Is(err, ErrUnknownApp) {
		t.Errorf("expected ErrUnknownApp, got %v", err)
	}
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
	}{
		{"missing id", []Definition{{Title: "X", DefaultSize: [2]int{100, 100}}}},
		{"missing title", []Definition{{ID: "x", DefaultSize: [2]int{100, 100}}}},
		{"zero size", []Definition{{ID: "x", Title: "X"}}},
		{"duplicate id", []Definition{
			{ID: "x", Title: "X", DefaultSize: [2]int{100, 100}},
			{ID: "x", Title: "Y", DefaultSize: [2]int{100, 100}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.defs); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEffectiveMinSize(t *testing.T) {
	tests := []struct {
		name    string
		min     [2]int
		expectW int
		expectH int
	}{
		{"unset uses floor", [2]int{0, 0}, MinWidth, MinHeight},
		{"below floor clamps", [2]int{50, 50}, MinWidth, MinHeight},
		{"above floor kept", [2]int{320, 200}, 320, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Definition{MinSize: tt.min}
			w, h := d.EffectiveMinSize()
			if w != tt.expectW || h != tt.expectH {
				t.Errorf("expected (%d, %d), got (%d, %d)", tt.expectW, tt.expectH, w, h)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	data := `
- id: metrics
  title: Metrics Panel
  default_size: [500, 380]
  singleton: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !r.Has("metrics") {
		t.Error("expected extra app 'metrics' to be registered")
	}
	if !r.Has("chat") {
		t.Error("expected builtin apps to remain registered")
	}

	d, _ := r.Lookup("metrics")
	if !d.Singleton {
		t.Error("expected metrics to be a singleton app")
	}
}

func TestLoadFileShadowingBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apps.yaml")
	data := `
- id: chat
  title: Shadowed Chat
  default_size: [100, 100]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Error("expected error when extra definition shadows a builtin id")
	}
}

func TestListSorted(t *testing.T) {
	r := Builtin()
	defs := r.List()
	for i := 1; i < len(defs); i++ {
		if defs[i-1].ID >= defs[i].ID {
			t.Errorf("expected sorted list, got %q before %q", defs[i-1].ID, defs[i].ID)
		}
	}
}
