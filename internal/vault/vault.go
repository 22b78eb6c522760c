// Package vault is the in-memory key/value cache behind the vault explorer
// app. Entries may carry a TTL; expired entries are dropped lazily on access
// and eagerly via Purge.
package vault

import (
	"sort"
	"sync"
	"time"
)

// Entry is one stored value with its metadata.
type Entry struct {
	Key       string `yaml:"key"                  json:"key"`
	Value     string `yaml:"value"                json:"value"`
	CreatedAt int64  `yaml:"created_at"           json:"created_at"`
	ExpiresAt int64  `yaml:"expires_at,omitempty" json:"expires_at,omitempty"` // 0 = never
}

type record struct {
	value     string
	createdAt time.Time
	expiresAt time.Time // zero = never
}

// Store is a TTL key/value cache. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]record
	now     func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]record),
		now:     time.Now,
	}
}

// Set stores a value. A ttl of 0 stores it without expiry.
func (s *Store) Set(key, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := record{value: value, createdAt: s.now()}
	if ttl > 0 {
		rec.expiresAt = rec.createdAt.Add(ttl)
	}
	s.entries[key] = rec
}

// Get returns the value for key. The second return is false for missing or
// expired keys; expired keys are removed on the way out.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.entries[key]
	if !ok {
		return "", false
	}
	if s.expired(rec) {
		delete(s.entries, key)
		return "", false
	}
	return rec.value, true
}

// Delete removes a key. Removing a missing key is a no-op.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// Keys returns all live keys sorted lexicographically.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.entries))
	for k, rec := range s.entries {
		if s.expired(rec) {
			delete(s.entries, k)
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns all live entries sorted by key.
func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.entries))
	for k, rec := range s.entries {
		if s.expired(rec) {
			delete(s.entries, k)
			continue
		}
		e := Entry{
			Key:       k,
			Value:     rec.value,
			CreatedAt: rec.createdAt.Unix(),
		}
		if !rec.expiresAt.IsZero() {
			e.ExpiresAt = rec.expiresAt.Unix()
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Purge drops all expired entries and returns how many were removed.
func (s *Store) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, rec := range s.entries {
		if s.expired(rec) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, expired ones included until purged.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) expired(rec record) bool {
	return !rec.expiresAt.IsZero() && !s.now().Before(rec.expiresAt)
}
