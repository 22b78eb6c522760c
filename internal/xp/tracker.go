// Package xp implements the experience/leveling bookkeeping that the desktop
// accrues as it is used. Purely in-memory; state is lost when the session ends.
package xp

import (
	"sort"
	"sync"
)

// Action names a desktop operation that earns experience.
type Action string

const (
	ActionOpen     Action = "open"
	ActionClose    Action = "close"
	ActionFocus    Action = "focus"
	ActionArrange  Action = "arrange" // move, resize, snap, maximize
	ActionMinimize Action = "minimize"
)

// awards maps each action to its base XP value.
var awards = map[Action]int{
	ActionOpen:     10,
	ActionClose:    2,
	ActionFocus:    1,
	ActionArrange:  3,
	ActionMinimize: 1,
}

// levelStep controls the quadratic level curve: reaching level n requires
// levelStep * n * n total XP.
const levelStep = 50

// Stats is the tracker's reportable state.
type Stats struct {
	Total     int            `yaml:"total"             json:"total"`
	Level     int            `yaml:"level"             json:"level"`
	NextLevel int            `yaml:"next_level"        json:"next_level"` // XP required for the next level
	Launches  []LaunchCount  `yaml:"launches,omitempty" json:"launches,omitempty"`
	ByAction  map[Action]int `yaml:"by_action,omitempty" json:"by_action,omitempty"`
}

// LaunchCount is the number of times one app has been opened.
type LaunchCount struct {
	AppID string `yaml:"app"   json:"app"`
	Count int    `yaml:"count" json:"count"`
}

// Tracker accumulates XP. Safe for concurrent use.
type Tracker struct {
	mu         sync.Mutex
	total      int
	byAction   map[Action]int
	launches   map[string]int
	multiplier float64
}

// NewTracker creates a tracker with a neutral multiplier.
func NewTracker() *Tracker {
	return &Tracker{
		byAction:   make(map[Action]int),
		launches:   make(map[string]int),
		multiplier: 1,
	}
}

// SetMultiplier scales future awards (persona bonus). Values <= 0 reset to 1.
func (t *Tracker) SetMultiplier(m float64) {
	t.mu.Lock()
	if m <= 0 {
		m = 1
	}
	t.multiplier = m
	t.mu.Unlock()
}

// Record awards XP for an action. For ActionOpen, appID attributes the launch.
func (t *Tracker) Record(action Action, appID string) {
	base, ok := awards[action]
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	earned := int(float64(base) * t.multiplier)
	if earned < 1 {
		earned = 1
	}
	t.total += earned
	t.byAction[action] += earned
	if action == ActionOpen && appID != "" {
		t.launches[appID]++
	}
}

// Total returns the accumulated XP.
func (t *Tracker) Total() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

// Level returns the current level for the accumulated XP.
func (t *Tracker) Level() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return levelFor(t.total)
}

// Stats returns a copy of the tracker state, launches sorted by count
// descending then app ID.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Stats{
		Total:     t.total,
		Level:     levelFor(t.total),
		ByAction:  make(map[Action]int, len(t.byAction)),
		NextLevel: xpFor(levelFor(t.total) + 1),
	}
	for a, v := range t.byAction {
		s.ByAction[a] = v
	}
	for app, n := range t.launches {
		s.Launches = append(s.Launches, LaunchCount{AppID: app, Count: n})
	}
	sort.Slice(s.Launches, func(i, j int) bool {
		if s.Launches[i].Count != s.Launches[j].Count {
			return s.Launches[i].Count > s.Launches[j].Count
		}
		return s.Launches[i].AppID < s.Launches[j].AppID
	})
	return s
}

// levelFor returns the highest level n with xpFor(n) <= total.
func levelFor(total int) int {
	n := 0
	for xpFor(n+1) <= total {
		n++
	}
	return n
}

// xpFor returns the total XP required to reach level n.
func xpFor(n int) int {
	return levelStep * n * n
}
