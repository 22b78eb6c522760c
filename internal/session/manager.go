package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/azinterface/azdesk/internal/apps"
	"github.com/azinterface/azdesk/internal/wm"
)

// DefaultName is the session handle used when a client names none.
const DefaultName = "default"

// Manager owns the live sessions of a server. Idle sessions are evicted
// lazily on access once they exceed the TTL; a ttl of 0 disables eviction.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	registry *apps.Registry
	cfg      wm.Config
	ttl      time.Duration
	log      zerolog.Logger
}

// NewManager creates a session manager.
func NewManager(registry *apps.Registry, cfg wm.Config, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		registry: registry,
		cfg:      cfg,
		ttl:      ttl,
		log:      cfg.Logger,
	}
}

// Get returns the session for the given name, creating it on first use.
// An empty name maps to DefaultName.
func (m *Manager) Get(name string) *Session {
	if name == "" {
		name = DefaultName
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.evictLocked()

	s, ok := m.sessions[name]
	if !ok {
		s = New(uuid.NewString(), m.registry, m.cfg)
		m.sessions[name] = s
		m.log.Info().Str("session", name).Str("id", s.ID).Msg("session created")
	}
	s.Touch()
	return s
}

// Drop removes a session by name. Dropping a missing name is a no-op.
func (m *Manager) Drop(name string) {
	m.mu.Lock()
	delete(m.sessions, name)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictLocked()
	return len(m.sessions)
}

func (m *Manager) evictLocked() {
	if m.ttl == 0 {
		return
	}
	cutoff := time.Now().Add(-m.ttl)
	for name, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(m.sessions, name)
			m.log.Info().Str("session", name).Msg("idle session evicted")
		}
	}
}
