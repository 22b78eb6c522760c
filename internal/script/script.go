// Package script executes a YAML list of desktop operations against a
// session. Scripts drive the simulation from the CLI and from the MCP batch
// tool.
package script

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/azinterface/azdesk/internal/session"
	"github.com/azinterface/azdesk/internal/wm"
)

// Step is one scripted operation. A zero window ID targets the most recently
// opened window, so scripts can chain "open, move, resize" without tracking
// IDs.
type Step struct {
	Op      string `yaml:"op"                json:"op"`
	App     string `yaml:"app,omitempty"     json:"app,omitempty"`
	ID      int    `yaml:"id,omitempty"      json:"id,omitempty"`
	X       int    `yaml:"x,omitempty"       json:"x,omitempty"`
	Y       int    `yaml:"y,omitempty"       json:"y,omitempty"`
	W       int    `yaml:"w,omitempty"       json:"w,omitempty"`
	H       int    `yaml:"h,omitempty"       json:"h,omitempty"`
	Pos     string `yaml:"pos,omitempty"     json:"pos,omitempty"`
	Title   string `yaml:"title,omitempty"   json:"title,omitempty"`
	Key     string `yaml:"key,omitempty"     json:"key,omitempty"`
	Value   string `yaml:"value,omitempty"   json:"value,omitempty"`
	TTL     int    `yaml:"ttl,omitempty"     json:"ttl,omitempty"` // seconds, vault-set only
	Persona string `yaml:"persona,omitempty" json:"persona,omitempty"`
}

// Result reports the outcome of one step.
type Result struct {
	Step   int    `yaml:"step"             json:"step"`
	Op     string `yaml:"op"               json:"op"`
	OK     bool   `yaml:"ok"               json:"ok"`
	Window int    `yaml:"window,omitempty" json:"window,omitempty"`
	Error  string `yaml:"error,omitempty"  json:"error,omitempty"`
}

// Options controls script execution.
type Options struct {
	// StopOnError aborts the script at the first failing step.
	StopOnError bool
}

// Load parses a script file.
func Load(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return steps, nil
}

// Run executes steps sequentially against the session and returns one result
// per executed step.
func Run(s *session.Session, steps []Step, opts Options) []Result {
	results := make([]Result, 0, len(steps))
	lastOpened := 0

	for i, step := range steps {
		res := Result{Step: i + 1, Op: step.Op}

		id := step.ID
		if id == 0 {
			id = lastOpened
		}

		var err error
		switch step.Op {
		case "open":
			var winID int
			winID, err = s.Open(step.App)
			if err == nil {
				lastOpened = winID
				res.Window = winID
			}
		case "close":
			s.Close(id)
			res.Window = id
		case "focus":
			err = s.Focus(id)
			res.Window = id
		case "move":
			err = s.Arrange(func(d *wm.Desktop) error { return d.Move(id, step.X, step.Y) })
			res.Window = id
		case "resize":
			err = s.Arrange(func(d *wm.Desktop) error { return d.Resize(id, step.W, step.H) })
			res.Window = id
		case "minimize":
			err = s.Minimize(id)
			res.Window = id
		case "restore":
			err = s.Arrange(func(d *wm.Desktop) error { return d.Restore(id) })
			res.Window = id
		case "maximize":
			err = s.Arrange(func(d *wm.Desktop) error { return d.Maximize(id) })
			res.Window = id
		case "snap":
			var pos wm.SnapPosition
			pos, err = wm.ParseSnapPosition(step.Pos)
			if err == nil {
				err = s.Arrange(func(d *wm.Desktop) error { return d.Snap(id, pos) })
			}
			res.Window = id
		case "title":
			err = s.Desktop.SetTitle(id, step.Title)
			res.Window = id
		case "persona":
			err = s.SetPersona(step.Persona)
		case "vault-set":
			if step.Key == "" {
				err = fmt.Errorf("vault-set requires a key")
			} else {
				s.Vault.Set(step.Key, step.Value, time.Duration(step.TTL)*time.Second)
			}
		case "vault-delete":
			s.Vault.Delete(step.Key)
		default:
			err = fmt.Errorf("unknown op %q", step.Op)
		}

		if err != nil {
			res.Error = err.Error()
			results = append(results, res)
			if opts.StopOnError {
				return results
			}
			continue
		}
		res.OK = true
		results = append(results, res)
	}

	return results
}
