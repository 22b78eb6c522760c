// Package wm implements the window store: the single source of truth for all
// open windows on a simulated desktop. All transitions are synchronous,
// in-memory mutations; the store performs no I/O.
package wm

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/azinterface/azdesk/internal/apps"
	"github.com/azinterface/azdesk/internal/model"
)

// ErrWindowNotFound is returned for operations on a window ID that is not in
// the store.
var ErrWindowNotFound = errors.New("window not found")

// Config holds desktop construction parameters. Zero values fall back to a
// 1920x1080 screen with a 32px cascade step.
type Config struct {
	ScreenWidth  int
	ScreenHeight int
	CascadeStep  int
	Logger       zerolog.Logger
}

const (
	defaultScreenWidth  = 1920
	defaultScreenHeight = 1080
	defaultCascadeStep  = 32

	// cascadeWrap bounds how far the open-position cascade walks before
	// resetting to the origin.
	cascadeWrap = 10
)

// Desktop is the window store. It is safe for concurrent use; construct one
// per simulated desktop and pass it explicitly (no package-level instance).
type Desktop struct {
	mu       sync.Mutex
	registry *apps.Registry
	windows  map[int]*model.Window
	nextID   int
	nextZ    int
	opened   int // total opens, drives cascade placement
	screenW  int
	screenH  int
	cascade  int
	log      zerolog.Logger
	listener func(model.Snapshot)
}

// New creates an empty desktop over the given app registry.
func New(registry *apps.Registry, cfg Config) *Desktop {
	if cfg.ScreenWidth <= 0 {
		cfg.ScreenWidth = defaultScreenWidth
	}
	if cfg.ScreenHeight <= 0 {
		cfg.ScreenHeight = defaultScreenHeight
	}
	if cfg.CascadeStep <= 0 {
		cfg.CascadeStep = defaultCascadeStep
	}

	return &Desktop{
		registry: registry,
		windows:  make(map[int]*model.Window),
		nextID:   1,
		nextZ:    1,
		screenW:  cfg.ScreenWidth,
		screenH:  cfg.ScreenHeight,
		cascade:  cfg.CascadeStep,
		log:      cfg.Logger,
	}
}

// OnChange registers a listener invoked with a fresh snapshot after every
// successful mutation. Only one listener is supported; the rendering surface
// is the intended subscriber.
func (d *Desktop) OnChange(fn func(model.Snapshot)) {
	d.mu.Lock()
	d.listener = fn
	d.mu.Unlock()
}

// Open creates a window for the given app with its default size, a cascading
// position, and top z-order, and returns the new window ID. For singleton
// apps with an existing window, the existing window is focused (restoring it
// if minimized) and its ID is returned instead.
func (d *Desktop) Open(appID string) (int, error) {
	def, err := d.registry.Lookup(appID)
	if err != nil {
		return 0, err
	}

	d.mu.Lock()

	if def.Singleton {
		if win := d.findByApp(appID); win != nil {
			win.Minimized = false
			win.ZIndex = d.nextZ
			d.nextZ++
			id := win.ID
			d.unlockAndNotify()
			return id, nil
		}
	}

	offset := (d.opened % cascadeWrap) * d.cascade
	d.opened++

	win := &model.Window{
		ID:     d.nextID,
		AppID:  def.ID,
		Title:  def.Title,
		Bounds: [4]int{offset, offset, def.DefaultSize[0], def.DefaultSize[1]},
		ZIndex: d.nextZ,
	}
	win.NormalBounds = win.Bounds
	d.windows[win.ID] = win
	d.nextID++
	d.nextZ++

	id := win.ID
	d.unlockAndNotify()
	return id, nil
}

// Close removes the window record entirely. A missing ID is a logged no-op:
// close races (dock click vs. app exit) are routine and must not surface as
// failures to the interaction layer.
func (d *Desktop) Close(id int) {
	d.mu.Lock()

	if _, ok := d.windows[id]; !ok {
		d.mu.Unlock()
		d.log.Warn().Int("window", id).Msg("close: window not found, ignoring")
		return
	}

	delete(d.windows, id)
	d.unlockAndNotify()
}

// Focus raises the window to the top of the z-order. All other windows keep
// their relative stacking. A minimized window is restored first.
func (d *Desktop) Focus(id int) error {
	d.mu.Lock()

	win, ok := d.windows[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("focus %d: %w", id, ErrWindowNotFound)
	}

	win.Minimized = false
	win.ZIndex = d.nextZ
	d.nextZ++

	d.unlockAndNotify()
	return nil
}

// Move updates the window position. Positions are not clamped: windows may be
// dragged partially or fully off-screen.
func (d *Desktop) Move(id, x, y int) error {
	d.mu.Lock()

	win, ok := d.windows[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("move %d: %w", id, ErrWindowNotFound)
	}

	win.Bounds[0] = x
	win.Bounds[1] = y
	win.Maximized = false

	d.unlockAndNotify()
	return nil
}

// Resize updates the window size, clamped to the app's minimum size and to
// the screen dimensions.
func (d *Desktop) Resize(id, width, height int) error {
	d.mu.Lock()

	win, ok := d.windows[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("resize %d: %w", id, ErrWindowNotFound)
	}

	minW, minH := apps.MinWidth, apps.MinHeight
	if def, err := d.registry.Lookup(win.AppID); err == nil {
		minW, minH = def.EffectiveMinSize()
	}

	win.Bounds[2] = clamp(width, minW, d.screenW)
	win.Bounds[3] = clamp(height, minH, d.screenH)
	win.Maximized = false

	d.unlockAndNotify()
	return nil
}

// Minimize hides the window from the desktop surface. The record is retained
// with its position, size, and z-order; it stays in the dock listing and is
// excluded from focus computation.
func (d *Desktop) Minimize(id int) error {
	d.mu.Lock()

	win, ok := d.windows[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("minimize %d: %w", id, ErrWindowNotFound)
	}

	win.Minimized = true
	d.unlockAndNotify()
	return nil
}

// Restore reverses a minimize or maximize. A minimized window returns to the
// desktop with its pre-minimize bounds and z-order unchanged; a maximized
// window returns to its normal frame.
func (d *Desktop) Restore(id int) error {
	d.mu.Lock()

	win, ok := d.windows[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("restore %d: %w", id, ErrWindowNotFound)
	}

	switch {
	case win.Minimized:
		win.Minimized = false
	case win.Maximized:
		win.Bounds = win.NormalBounds
		win.Maximized = false
	}

	d.unlockAndNotify()
	return nil
}

// Maximize grows the window to the full screen, remembering its normal frame
// for Restore.
func (d *Desktop) Maximize(id int) error {
	d.mu.Lock()

	win, ok := d.windows[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("maximize %d: %w", id, ErrWindowNotFound)
	}

	if !win.Maximized {
		win.NormalBounds = win.Bounds
		win.Bounds = [4]int{0, 0, d.screenW, d.screenH}
		win.Maximized = true
		win.Minimized = false
	}

	d.unlockAndNotify()
	return nil
}

// SnapPosition names a half or quadrant placement for Snap.
type SnapPosition string

const (
	SnapLeft        SnapPosition = "left"
	SnapRight       SnapPosition = "right"
	SnapTop         SnapPosition = "top"
	SnapBottom      SnapPosition = "bottom"
	SnapTopLeft     SnapPosition = "top-left"
	SnapTopRight    SnapPosition = "top-right"
	SnapBottomLeft  SnapPosition = "bottom-left"
	SnapBottomRight SnapPosition = "bottom-right"
)

// ParseSnapPosition converts a string flag or tool parameter to a SnapPosition.
func ParseSnapPosition(s string) (SnapPosition, error) {
	switch SnapPosition(s) {
	case SnapLeft, SnapRight, SnapTop, SnapBottom,
		SnapTopLeft, SnapTopRight, SnapBottomLeft, SnapBottomRight:
		return SnapPosition(s), nil
	default:
		return "", fmt.Errorf("unknown snap position %q", s)
	}
}

// Snap places the window in a half or quadrant of the screen.
func (d *Desktop) Snap(id int, pos SnapPosition) error {
	d.mu.Lock()

	win, ok := d.windows[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("snap %d: %w", id, ErrWindowNotFound)
	}

	halfW := d.screenW / 2
	halfH := d.screenH / 2

	switch pos {
	case SnapLeft:
		win.Bounds = [4]int{0, 0, halfW, d.screenH}
	case SnapRight:
		win.Bounds = [4]int{halfW, 0, halfW, d.screenH}
	case SnapTop:
		win.Bounds = [4]int{0, 0, d.screenW, halfH}
	case SnapBottom:
		win.Bounds = [4]int{0, halfH, d.screenW, halfH}
	case SnapTopLeft:
		win.Bounds = [4]int{0, 0, halfW, halfH}
	case SnapTopRight:
		win.Bounds = [4]int{halfW, 0, halfW, halfH}
	case SnapBottomLeft:
		win.Bounds = [4]int{0, halfH, halfW, halfH}
	case SnapBottomRight:
		win.Bounds = [4]int{halfW, halfH, halfW, halfH}
	default:
		d.mu.Unlock()
		return fmt.Errorf("snap %d: unknown position %q", id, pos)
	}

	win.Maximized = false
	win.Minimized = false

	d.unlockAndNotify()
	return nil
}

// SetTitle updates the window title (apps retitle on document change).
func (d *Desktop) SetTitle(id int, title string) error {
	d.mu.Lock()

	win, ok := d.windows[id]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("set title %d: %w", id, ErrWindowNotFound)
	}

	win.Title = title
	d.unlockAndNotify()
	return nil
}

// Window returns a copy of the window record.
func (d *Desktop) Window(id int) (model.Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	win, ok := d.windows[id]
	if !ok {
		return model.Window{}, fmt.Errorf("window %d: %w", id, ErrWindowNotFound)
	}
	w := *win
	w.Focused = d.focusedIDLocked() == w.ID
	return w, nil
}

// FocusedID returns the ID of the focused window, or 0 when no non-minimized
// window is open.
func (d *Desktop) FocusedID() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.focusedIDLocked()
}

// Count returns the number of windows in the store, minimized included.
func (d *Desktop) Count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.windows)
}

// ScreenSize returns the configured screen dimensions.
func (d *Desktop) ScreenSize() (int, int) {
	return d.screenW, d.screenH
}

// Snapshot copies the current state, windows ordered by ZIndex ascending so
// the focused window is last in paint order.
func (d *Desktop) Snapshot() model.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Desktop) snapshotLocked() model.Snapshot {
	focused := d.focusedIDLocked()
	snap := model.Snapshot{
		TS:      time.Now().Unix(),
		Screen:  [2]int{d.screenW, d.screenH},
		Focused: focused,
		Windows: make([]model.Window, 0, len(d.windows)),
	}
	for _, win := range d.windows {
		w := *win
		w.Focused = w.ID == focused
		snap.Windows = append(snap.Windows, w)
	}
	sortByZ(snap.Windows)
	return snap
}

// focusedIDLocked computes the focus invariant: the non-minimized window with
// the maximum z-index, or 0 when none exists.
func (d *Desktop) focusedIDLocked() int {
	best := 0
	bestZ := -1
	for _, win := range d.windows {
		if win.Minimized {
			continue
		}
		if win.ZIndex > bestZ {
			bestZ = win.ZIndex
			best = win.ID
		}
	}
	return best
}

// findByApp returns the window with the given app ID, lowest window ID first.
// Caller must hold d.mu.
func (d *Desktop) findByApp(appID string) *model.Window {
	var found *model.Window
	for _, win := range d.windows {
		if win.AppID != appID {
			continue
		}
		if found == nil || win.ID < found.ID {
			found = win
		}
	}
	return found
}

// unlockAndNotify releases the lock and delivers a snapshot to the listener.
// The snapshot is taken before unlocking; the callback runs outside the lock
// so it may call back into the store.
func (d *Desktop) unlockAndNotify() {
	fn := d.listener
	var snap model.Snapshot
	if fn != nil {
		snap = d.snapshotLocked()
	}
	d.mu.Unlock()
	if fn != nil {
		fn(snap)
	}
}

func sortByZ(windows []model.Window) {
	sort.Slice(windows, func(i, j int) bool { return windows[i].ZIndex < windows[j].ZIndex })
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
