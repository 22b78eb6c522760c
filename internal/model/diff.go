package model

import (
	"fmt"
	"time"
)

// ChangeType represents the kind of desktop change detected.
type ChangeType string

const (
	ChangeOpened  ChangeType = "opened"
	ChangeClosed  ChangeType = "closed"
	ChangeChanged ChangeType = "changed"
)

// WindowChange represents a single change between two snapshots.
type WindowChange struct {
	Type    ChangeType           `yaml:"type"              json:"type"`
	TS      int64                `yaml:"ts"                json:"ts"`
	Window  *Window              `yaml:"win,omitempty"     json:"win,omitempty"`     // For opened: the full record
	ID      int                  `yaml:"id,omitempty"      json:"id,omitempty"`      // For closed/changed
	AppID   string               `yaml:"app,omitempty"     json:"app,omitempty"`     // For closed
	Changes map[string][2]string `yaml:"changes,omitempty" json:"changes,omitempty"` // For changed: field diffs
}

// DiffSnapshots compares two desktop snapshots and returns the changes.
// Windows are matched by ID; IDs are never reused within a session, so no
// content hashing is needed.
func DiffSnapshots(prev, curr Snapshot) []WindowChange {
	prevMap := make(map[int]Window, len(prev.Windows))
	for _, w := range prev.Windows {
		prevMap[w.ID] = w
	}
	currMap := make(map[int]Window, len(curr.Windows))
	for _, w := range curr.Windows {
		currMap[w.ID] = w
	}

	var changes []WindowChange
	now := time.Now().Unix()

	for _, w := range curr.Windows {
		prevWin, existed := prevMap[w.ID]
		if !existed {
			winCopy := w
			changes = append(changes, WindowChange{
				Type:   ChangeOpened,
				TS:     now,
				Window: &winCopy,
			})
			continue
		}
		diffs := diffProperties(prevWin, w)
		if len(diffs) > 0 {
			changes = append(changes, WindowChange{
				Type:    ChangeChanged,
				TS:      now,
				ID:      w.ID,
				Changes: diffs,
			})
		}
	}

	for _, w := range prev.Windows {
		if _, exists := currMap[w.ID]; !exists {
			changes = append(changes, WindowChange{
				Type:  ChangeClosed,
				TS:    now,
				ID:    w.ID,
				AppID: w.AppID,
			})
		}
	}

	return changes
}

// diffProperties compares two window records and returns changed fields.
func diffProperties(prev, curr Window) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Title != curr.Title {
		diffs["title"] = [2]string{prev.Title, curr.Title}
	}
	if prev.Bounds != curr.Bounds {
		diffs["bounds"] = [2]string{
			fmt.Sprintf("%v", prev.Bounds),
			fmt.Sprintf("%v", curr.Bounds),
		}
	}
	if prev.ZIndex != curr.ZIndex {
		diffs["z"] = [2]string{
			fmt.Sprintf("%d", prev.ZIndex),
			fmt.Sprintf("%d", curr.ZIndex),
		}
	}
	if prev.Minimized != curr.Minimized {
		diffs["minimized"] = [2]string{
			fmt.Sprintf("%v", prev.Minimized),
			fmt.Sprintf("%v", curr.Minimized),
		}
	}
	if prev.Maximized != curr.Maximized {
		diffs["maximized"] = [2]string{
			fmt.Sprintf("%v", prev.Maximized),
			fmt.Sprintf("%v", curr.Maximized),
		}
	}
	if prev.Focused != curr.Focused {
		diffs["focused"] = [2]string{
			fmt.Sprintf("%v", prev.Focused),
			fmt.Sprintf("%v", curr.Focused),
		}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}
