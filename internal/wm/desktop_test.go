package wm

import (
	"errors"
	"sync"
	"testing"

	"github.com/azinterface/azdesk/internal/apps"
	"github.com/azinterface/azdesk/internal/model"
)

func newTestDesktop(t *testing.T) *Desktop {
	t.Helper()
	return New(apps.Builtin(), Config{ScreenWidth: 1920, ScreenHeight: 1080})
}

func TestOpenAssignsDistinctIDs(t *testing.T) {
	d := newTestDesktop(t)

	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		id, err := d.Open("notepad")
		if err != nil {
			t.Fatalf("Open failed: %v", err)
		}
		if seen[id] {
			t.Errorf("window ID %d reused", id)
		}
		seen[id] = true
	}

	if d.Count() != 5 {
		t.Errorf("expected 5 windows, got %d", d.Count())
	}
}

func TestOpenUnknownApp(t *testing.T) {
	d := newTestDesktop(t)

	_, err := d.Open("no-such-app")
	if !errors.Is(err, apps.ErrUnknownApp) {
		t.Errorf("expected ErrUnknownApp, got %v", err)
	}
	if d.Count() != 0 {
		t.Errorf("expected no windows after failed open, got %d", d.Count())
	}
}

func TestOpenUsesDefaultSizeAndCascade(t *testing.T) {
	d := New(apps.Builtin(), Config{ScreenWidth: 1920, ScreenHeight: 1080, CascadeStep: 30})

	id1, _ := d.Open("notepad")
	id2, _ := d.Open("notepad")

	w1, _ := d.Window(id1)
	w2, _ := d.Window(id2)

	if w1.Width() != 520 || w1.Height() != 400 {
		t.Errorf("expected app default size (520, 400), got (%d, %d)", w1.Width(), w1.Height())
	}
	if w2.X() != w1.X()+30 || w2.Y() != w1.Y()+30 {
		t.Errorf("expected second window offset by cascade step, got (%d, %d) after (%d, %d)",
			w2.X(), w2.Y(), w1.X(), w1.Y())
	}
}

func TestOpenCountEqualsOpensMinusCloses(t *testing.T) {
	d := newTestDesktop(t)

	var ids []int
	for i := 0; i < 6; i++ {
		id, _ := d.Open("terminal")
		ids = append(ids, id)
	}
	d.Close(ids[0])
	d.Close(ids[3])

	if d.Count() != 4 {
		t.Errorf("expected 6 opens - 2 closes = 4 windows, got %d", d.Count())
	}
}

func TestFocusRaisesToTop(t *testing.T) {
	d := newTestDesktop(t)

	id1, _ := d.Open("notepad")
	id2, _ := d.Open("terminal")
	id3, _ := d.Open("chat")

	if err := d.Focus(id1); err != nil {
		t.Fatalf("Focus failed: %v", err)
	}

	if d.FocusedID() != id1 {
		t.Errorf("expected focused window %d, got %d", id1, d.FocusedID())
	}

	w1, _ := d.Window(id1)
	w2, _ := d.Window(id2)
	w3, _ := d.Window(id3)

	if w1.ZIndex <= w2.ZIndex || w1.ZIndex <= w3.ZIndex {
		t.Errorf("expected %d to hold the maximum z-index, got z1=%d z2=%d z3=%d",
			id1, w1.ZIndex, w2.ZIndex, w3.ZIndex)
	}
	// Unaffected windows retain relative order.
	if w2.ZIndex >= w3.ZIndex {
		t.Errorf("expected windows %d and %d to keep relative order, got z2=%d z3=%d",
			id2, id3, w2.ZIndex, w3.ZIndex)
	}
}

func TestExactlyOneFocusedWindow(t *testing.T) {
	d := newTestDesktop(t)

	d.Open("notepad")
	d.Open("terminal")
	d.Open("chat")

	snap := d.Snapshot()
	focused := 0
	for _, w := range snap.Windows {
		if w.Focused {
			focused++
		}
	}
	if focused != 1 {
		t.Errorf("expected exactly one focused window, got %d", focused)
	}
}

func TestOperationsOnClosedWindow(t *testing.T) {
	d := newTestDesktop(t)

	id, _ := d.Open("notepad")
	d.Close(id)

	if err := d.Focus(id); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("Focus after close: expected ErrWindowNotFound, got %v", err)
	}
	if err := d.Move(id, 10, 10); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("Move after close: expected ErrWindowNotFound, got %v", err)
	}
	if err := d.Resize(id, 400, 300); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("Resize after close: expected ErrWindowNotFound, got %v", err)
	}

	// Closing an already-closed window is a silent no-op.
	d.Close(id)
	if d.Count() != 0 {
		t.Errorf("expected empty store, got %d windows", d.Count())
	}
}

func TestMoveDoesNotClamp(t *testing.T) {
	d := newTestDesktop(t)

	id, _ := d.Open("notepad")
	if err := d.Move(id, -500, 4000); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	w, _ := d.Window(id)
	if w.X() != -500 || w.Y() != 4000 {
		t.Errorf("expected off-screen position (-500, 4000), got (%d, %d)", w.X(), w.Y())
	}
}

func TestResizeClamping(t *testing.T) {
	d := newTestDesktop(t)
	id, _ := d.Open("notepad")

	tests := []struct {
		name    string
		w, h    int
		expectW int
		expectH int
	}{
		{"below minimum", 50, 50, apps.MinWidth, apps.MinHeight},
		{"within range", 800, 600, 800, 600},
		{"above screen", 5000, 5000, 1920, 1080},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := d.Resize(id, tt.w, tt.h); err != nil {
				t.Fatalf("Resize failed: %v", err)
			}
			win, _ := d.Window(id)
			if win.Width() != tt.expectW || win.Height() != tt.expectH {
				t.Errorf("expected (%d, %d), got (%d, %d)",
					tt.expectW, tt.expectH, win.Width(), win.Height())
			}
		})
	}
}

func TestResizeRespectsAppMinSize(t *testing.T) {
	d := newTestDesktop(t)

	// terminal raises the minimum width to 320
	id, _ := d.Open("terminal")
	if err := d.Resize(id, 10, 10); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}

	w, _ := d.Window(id)
	if w.Width() != 320 || w.Height() != 200 {
		t.Errorf("expected app minimum (320, 200), got (%d, %d)", w.Width(), w.Height())
	}
}

func TestMinimizeRestoreKeepsGeometry(t *testing.T) {
	d := newTestDesktop(t)

	id, _ := d.Open("notepad")
	d.Move(id, 123, 456)
	d.Resize(id, 640, 480)

	if err := d.Minimize(id); err != nil {
		t.Fatalf("Minimize failed: %v", err)
	}

	w, _ := d.Window(id)
	if !w.Minimized {
		t.Error("expected window to be minimized")
	}

	if err := d.Restore(id); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	w, _ = d.Window(id)
	if w.Minimized {
		t.Error("expected window to be restored")
	}
	if w.X() != 123 || w.Y() != 456 || w.Width() != 640 || w.Height() != 480 {
		t.Errorf("expected pre-minimize geometry (123, 456, 640, 480), got %v", w.Bounds)
	}
}

func TestMinimizeMovesFocusToNextHighest(t *testing.T) {
	d := newTestDesktop(t)

	id1, _ := d.Open("notepad")
	id2, _ := d.Open("terminal")

	if d.FocusedID() != id2 {
		t.Fatalf("expected %d focused after open, got %d", id2, d.FocusedID())
	}

	d.Minimize(id2)
	if d.FocusedID() != id1 {
		t.Errorf("expected focus to fall to %d, got %d", id1, d.FocusedID())
	}

	d.Minimize(id1)
	if d.FocusedID() != 0 {
		t.Errorf("expected no focused window, got %d", d.FocusedID())
	}
}

func TestFocusRestoresMinimizedWindow(t *testing.T) {
	d := newTestDesktop(t)

	id, _ := d.Open("notepad")
	d.Open("terminal")
	d.Minimize(id)

	if err := d.Focus(id); err != nil {
		t.Fatalf("Focus failed: %v", err)
	}

	w, _ := d.Window(id)
	if w.Minimized {
		t.Error("expected focus to restore the minimized window")
	}
	if d.FocusedID() != id {
		t.Errorf("expected %d focused, got %d", id, d.FocusedID())
	}
}

func TestMaximizeRestoreRoundTrip(t *testing.T) {
	d := newTestDesktop(t)

	id, _ := d.Open("notepad")
	d.Move(id, 100, 100)

	if err := d.Maximize(id); err != nil {
		t.Fatalf("Maximize failed: %v", err)
	}

	w, _ := d.Window(id)
	if !w.Maximized {
		t.Error("expected window to be maximized")
	}
	if w.Bounds != [4]int{0, 0, 1920, 1080} {
		t.Errorf("expected full-screen bounds, got %v", w.Bounds)
	}

	if err := d.Restore(id); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	w, _ = d.Window(id)
	if w.Maximized {
		t.Error("expected window restored from maximize")
	}
	if w.X() != 100 || w.Y() != 100 || w.Width() != 520 || w.Height() != 400 {
		t.Errorf("expected normal frame (100, 100, 520, 400), got %v", w.Bounds)
	}
}

func TestSnapPositions(t *testing.T) {
	d := newTestDesktop(t)
	id, _ := d.Open("notepad")

	tests := []struct {
		pos      SnapPosition
		expected [4]int
	}{
		{SnapLeft, [4]int{0, 0, 960, 1080}},
		{SnapRight, [4]int{960, 0, 960, 1080}},
		{SnapTop, [4]int{0, 0, 1920, 540}},
		{SnapBottom, [4]int{0, 540, 1920, 540}},
		{SnapTopLeft, [4]int{0, 0, 960, 540}},
		{SnapTopRight, [4]int{960, 0, 960, 540}},
		{SnapBottomLeft, [4]int{0, 540, 960, 540}},
		{SnapBottomRight, [4]int{960, 540, 960, 540}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pos), func(t *testing.T) {
			if err := d.Snap(id, tt.pos); err != nil {
				t.Fatalf("Snap(%s) failed: %v", tt.pos, err)
			}
			w, _ := d.Window(id)
			if w.Bounds != tt.expected {
				t.Errorf("Snap(%s): expected %v, got %v", tt.pos, tt.expected, w.Bounds)
			}
		})
	}
}

func TestParseSnapPosition(t *testing.T) {
	if _, err := ParseSnapPosition("left"); err != nil {
		t.Errorf("expected 'left' to parse, got %v", err)
	}
	if _, err := ParseSnapPosition("diagonal"); err == nil {
		t.Error("expected error for unknown snap position")
	}
}

func TestSingletonAppRefocusesExisting(t *testing.T) {
	d := newTestDesktop(t)

	id1, _ := d.Open("vault")
	d.Open("notepad")
	d.Minimize(id1)

	id2, err := d.Open("vault")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if id2 != id1 {
		t.Errorf("expected singleton open to return existing ID %d, got %d", id1, id2)
	}
	if d.Count() != 2 {
		t.Errorf("expected 2 windows (no duplicate vault), got %d", d.Count())
	}

	w, _ := d.Window(id1)
	if w.Minimized {
		t.Error("expected singleton re-open to restore the minimized window")
	}
	if d.FocusedID() != id1 {
		t.Errorf("expected singleton re-open to focus %d, got %d", id1, d.FocusedID())
	}
}

func TestMultiInstanceAppsOpenIndependently(t *testing.T) {
	d := newTestDesktop(t)

	id1, _ := d.Open("notepad")
	id2, _ := d.Open("notepad")
	if id1 == id2 {
		t.Error("expected independent windows for a multi-instance app")
	}
	if d.Count() != 2 {
		t.Errorf("expected 2 windows, got %d", d.Count())
	}
}

// TestScenarioFromInteractionSurface walks the canonical open/focus/close
// sequence end to end.
func TestScenarioFromInteractionSurface(t *testing.T) {
	d := newTestDesktop(t)

	id1, _ := d.Open("notepad")
	if id1 != 1 {
		t.Fatalf("expected first window ID 1, got %d", id1)
	}
	w1, _ := d.Window(id1)
	if w1.ZIndex != 1 {
		t.Errorf("expected zIndex 1, got %d", w1.ZIndex)
	}

	id2, _ := d.Open("terminal")
	if id2 != 2 {
		t.Fatalf("expected second window ID 2, got %d", id2)
	}
	if d.FocusedID() != id2 {
		t.Errorf("expected %d focused, got %d", id2, d.FocusedID())
	}

	d.Focus(id1)
	w1, _ = d.Window(id1)
	w2, _ := d.Window(id2)
	if w1.ZIndex != 3 {
		t.Errorf("expected refocused window zIndex 3, got %d", w1.ZIndex)
	}
	if w2.ZIndex != 2 {
		t.Errorf("expected unfocused window to keep zIndex 2, got %d", w2.ZIndex)
	}
	if d.FocusedID() != id1 {
		t.Errorf("expected %d focused, got %d", id1, d.FocusedID())
	}

	d.Close(id2)
	if d.Count() != 1 {
		t.Errorf("expected 1 window after close, got %d", d.Count())
	}
	if _, err := d.Window(id2); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("expected closed window to be gone, got %v", err)
	}
}

func TestSnapshotOrderedByZ(t *testing.T) {
	d := newTestDesktop(t)

	d.Open("notepad")
	id2, _ := d.Open("terminal")
	d.Open("chat")
	d.Focus(id2)

	snap := d.Snapshot()
	if len(snap.Windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(snap.Windows))
	}
	for i := 1; i < len(snap.Windows); i++ {
		if snap.Windows[i-1].ZIndex >= snap.Windows[i].ZIndex {
			t.Errorf("expected ascending z-order, got %d before %d",
				snap.Windows[i-1].ZIndex, snap.Windows[i].ZIndex)
		}
	}
	last := snap.Windows[len(snap.Windows)-1]
	if last.ID != id2 || !last.Focused {
		t.Errorf("expected focused window %d last in paint order, got %d (focused=%v)",
			id2, last.ID, last.Focused)
	}
	if snap.Focused != id2 {
		t.Errorf("expected snapshot focused %d, got %d", id2, snap.Focused)
	}
}

func TestOnChangeListener(t *testing.T) {
	d := newTestDesktop(t)

	var mu sync.Mutex
	var snaps []model.Snapshot
	d.OnChange(func(s model.Snapshot) {
		mu.Lock()
		snaps = append(snaps, s)
		mu.Unlock()
	})

	id, _ := d.Open("notepad")
	d.Move(id, 10, 10)
	d.Close(id)

	mu.Lock()
	defer mu.Unlock()
	if len(snaps) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(snaps))
	}
	if len(snaps[0].Windows) != 1 || len(snaps[2].Windows) != 0 {
		t.Errorf("unexpected snapshot contents: first=%d last=%d windows",
			len(snaps[0].Windows), len(snaps[2].Windows))
	}
}

func TestConcurrentOpens(t *testing.T) {
	d := newTestDesktop(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := d.Open("notepad"); err != nil {
				t.Errorf("Open failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if d.Count() != 10 {
		t.Errorf("expected 10 windows, got %d", d.Count())
	}

	snap := d.Snapshot()
	seenZ := make(map[int]bool)
	for _, w := range snap.Windows {
		if seenZ[w.ZIndex] {
			t.Errorf("duplicate z-index %d", w.ZIndex)
		}
		seenZ[w.ZIndex] = true
	}
}
