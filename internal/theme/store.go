package theme

import (
	"context"
	"sync"

	"github.com/alexedwards/scs/v2"
)

// StorageKey is the session key holding the preference.
const StorageKey = "theme"

// SessionStore persists the preference in the visitor's session.
type SessionStore struct {
	Sessions *scs.SessionManager
}

// Load implements Store. Requests without a loaded session report absent.
func (s SessionStore) Load(ctx context.Context) (value string, ok bool) {
	if s.Sessions == nil {
		return "", false
	}
	defer func() {
		// scs panics when the context carries no session data.
		if recover() != nil {
			value, ok = "", false
		}
	}()
	value = s.Sessions.GetString(ctx, StorageKey)
	return value, value != ""
}

// Save implements Store. It is a no-op without a loaded session.
func (s SessionStore) Save(ctx context.Context, preference string) {
	if s.Sessions == nil {
		return
	}
	defer func() {
		_ = recover()
	}()
	s.Sessions.Put(ctx, StorageKey, preference)
}

// MemoryStore keeps the preference in memory.
type MemoryStore struct {
	mu    sync.Mutex
	value string
	set   bool
}

// Load implements Store.
func (s *MemoryStore) Load(context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.set
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, preference string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = preference
	s.set = true
}
