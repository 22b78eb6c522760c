// Package session ties one desktop to its bookkeeping services. The MCP
// server keys sessions by UUID; the CLI run command uses a single anonymous
// session.
package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/azinterface/azdesk/internal/apps"
	"github.com/azinterface/azdesk/internal/model"
	"github.com/azinterface/azdesk/internal/persona"
	"github.com/azinterface/azdesk/internal/vault"
	"github.com/azinterface/azdesk/internal/wm"
	"github.com/azinterface/azdesk/internal/xp"
)

// ContentFunc produces the textual content of one app's window. Hooks run
// behind a recover so a panicking app cannot take down the desktop.
type ContentFunc func(s *Session, win model.Window) (string, error)

// Session is one desktop with its services.
type Session struct {
	ID       string
	Desktop  *wm.Desktop
	XP       *xp.Tracker
	Vault    *vault.Store
	Registry *apps.Registry

	// mu guards persona and hooks. The desktop, tracker, and vault carry
	// their own locks; the streamable-http transport dispatches tool calls
	// concurrently, so session-local state needs one too.
	mu       sync.Mutex
	persona  persona.Persona
	hooks    map[string]ContentFunc
	observed model.Snapshot
	log      zerolog.Logger
	lastUsed time.Time
}

// New creates a session over the given registry with the default persona.
func New(id string, registry *apps.Registry, cfg wm.Config) *Session {
	s := &Session{
		ID:       id,
		Desktop:  wm.New(registry, cfg),
		XP:       xp.NewTracker(),
		Vault:    vault.NewStore(),
		Registry: registry,
		hooks:    make(map[string]ContentFunc),
		log:      cfg.Logger,
		lastUsed: time.Now(),
	}

	p, _ := persona.Lookup(persona.DefaultID)
	s.persona = p
	s.XP.SetMultiplier(p.XPMultiplier)

	registerBuiltinHooks(s)
	return s
}

// Persona returns the active persona.
func (s *Session) Persona() persona.Persona {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persona
}

// SetPersona switches the active persona and its XP multiplier.
func (s *Session) SetPersona(id string) error {
	p, err := persona.Lookup(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.persona = p
	s.mu.Unlock()
	s.XP.SetMultiplier(p.XPMultiplier)
	return nil
}

// SetHook installs (or replaces) the content hook for an app.
func (s *Session) SetHook(appID string, fn ContentFunc) {
	s.mu.Lock()
	s.hooks[appID] = fn
	s.mu.Unlock()
}

// Open opens a window and records the launch.
func (s *Session) Open(appID string) (int, error) {
	id, err := s.Desktop.Open(appID)
	if err != nil {
		return 0, err
	}
	s.XP.Record(xp.ActionOpen, appID)
	return id, nil
}

// Close closes a window (missing IDs are ignored, matching the store).
func (s *Session) Close(id int) {
	s.Desktop.Close(id)
	s.XP.Record(xp.ActionClose, "")
}

// Focus raises a window and records the interaction.
func (s *Session) Focus(id int) error {
	if err := s.Desktop.Focus(id); err != nil {
		return err
	}
	s.XP.Record(xp.ActionFocus, "")
	return nil
}

// Arrange applies a geometry operation and records it. op is one of the
// Desktop mutators passed as a closure by the caller.
func (s *Session) Arrange(op func(*wm.Desktop) error) error {
	if err := op(s.Desktop); err != nil {
		return err
	}
	s.XP.Record(xp.ActionArrange, "")
	return nil
}

// Minimize hides a window and records the interaction.
func (s *Session) Minimize(id int) error {
	if err := s.Desktop.Minimize(id); err != nil {
		return err
	}
	s.XP.Record(xp.ActionMinimize, "")
	return nil
}

// Content renders the content of one window through its app hook. A hook
// panic is recovered and reported as an error for that window alone; the
// store and all other windows are unaffected.
func (s *Session) Content(windowID int) (content string, err error) {
	win, werr := s.Desktop.Window(windowID)
	if werr != nil {
		return "", werr
	}

	s.mu.Lock()
	fn, ok := s.hooks[win.AppID]
	s.mu.Unlock()
	if !ok {
		return "", nil
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Int("window", windowID).
				Str("app", win.AppID).
				Interface("panic", r).
				Msg("app content hook panicked")
			content = ""
			err = fmt.Errorf("app %q failed: %v", win.AppID, r)
		}
	}()

	return fn(s, win)
}

// SwapObserved records the given snapshot as the observe baseline and returns
// the previous one. The baseline lives on the session, so an evicted or
// dropped session never leaks its windows into a successor's first observe.
func (s *Session) SwapObserved(curr model.Snapshot) model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.observed
	s.observed = curr
	return prev
}

// Touch marks the session as recently used.
func (s *Session) Touch() {
	s.lastUsed = time.Now()
}

// registerBuiltinHooks wires the builtin apps to their backing services.
func registerBuiltinHooks(s *Session) {
	s.SetHook("vault", func(s *Session, _ model.Window) (string, error) {
		keys := s.Vault.Keys()
		if len(keys) == 0 {
			return "vault is empty", nil
		}
		return strings.Join(keys, "\n"), nil
	})
	s.SetHook("personas", func(s *Session, _ model.Window) (string, error) {
		active := s.Persona()
		var b strings.Builder
		for _, p := range persona.List() {
			marker := " "
			if p.ID == active.ID {
				marker = "*"
			}
			fmt.Fprintf(&b, "%s %s (%s)\n", marker, p.Name, p.Role)
		}
		return b.String(), nil
	})
	s.SetHook("stats", func(s *Session, _ model.Window) (string, error) {
		st := s.XP.Stats()
		return fmt.Sprintf("level %d (%d XP, next at %d)", st.Level, st.Total, st.NextLevel), nil
	})
	s.SetHook("chat", func(s *Session, _ model.Window) (string, error) {
		return s.Persona().Greeting, nil
	})
}
