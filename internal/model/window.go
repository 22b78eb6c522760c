package model

import "sort"

// Window represents one open application instance on the simulated desktop.
type Window struct {
	ID        int    `yaml:"id"                  json:"id"`
	AppID     string `yaml:"app"                 json:"app"`
	Title     string `yaml:"title"               json:"title"`
	Bounds    [4]int `yaml:"bounds"              json:"bounds"` // [x, y, width, height]
	ZIndex    int    `yaml:"z"                   json:"z"`
	Minimized bool   `yaml:"minimized,omitempty" json:"minimized,omitempty"`
	Maximized bool   `yaml:"maximized,omitempty" json:"maximized,omitempty"`
	Focused   bool   `yaml:"focused,omitempty"   json:"focused,omitempty"`

	// NormalBounds holds the pre-maximize frame so restore can round-trip.
	NormalBounds [4]int `yaml:"-" json:"-"`
}

// X returns the window's left edge.
func (w Window) X() int { return w.Bounds[0] }

// Y returns the window's top edge.
func (w Window) Y() int { return w.Bounds[1] }

// Width returns the window's width.
func (w Window) Width() int { return w.Bounds[2] }

// Height returns the window's height.
func (w Window) Height() int { return w.Bounds[3] }

// Contains reports whether the point (x, y) falls inside the window frame.
func (w Window) Contains(x, y int) bool {
	return x >= w.Bounds[0] && x <= w.Bounds[0]+w.Bounds[2] &&
		y >= w.Bounds[1] && y <= w.Bounds[1]+w.Bounds[3]
}

// Snapshot is a point-in-time copy of the desktop state. Windows are ordered
// by ZIndex ascending, so the focused window is last in paint order.
type Snapshot struct {
	TS      int64    `yaml:"ts"                json:"ts"`
	Screen  [2]int   `yaml:"screen"            json:"screen"` // [width, height]
	Focused int      `yaml:"focused,omitempty" json:"focused,omitempty"`
	Windows []Window `yaml:"windows"           json:"windows"`
}

// DockEntry is the taskbar representation of one window. Minimized windows
// appear here even though they are hidden from the desktop surface.
type DockEntry struct {
	ID        int    `yaml:"id"                  json:"id"`
	AppID     string `yaml:"app"                 json:"app"`
	Title     string `yaml:"title"               json:"title"`
	Minimized bool   `yaml:"minimized,omitempty" json:"minimized,omitempty"`
}

// Dock builds the dock listing from a snapshot, in window-ID (launch) order.
func (s Snapshot) Dock() []DockEntry {
	entries := make([]DockEntry, 0, len(s.Windows))
	for _, w := range s.Windows {
		entries = append(entries, DockEntry{
			ID:        w.ID,
			AppID:     w.AppID,
			Title:     w.Title,
			Minimized: w.Minimized,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
