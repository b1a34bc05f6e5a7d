package theme

import (
	"net/http"
	"strings"
	"sync"
)

// ClientHintHeader carries the browser's color scheme preference.
const ClientHintHeader = "Sec-CH-Prefers-Color-Scheme"

// Signal is an in-memory SchemeSource. Set notifies subscribers when the
// value changes.
type Signal struct {
	mu        sync.Mutex
	known     bool
	dark      bool
	nextID    int
	listeners map[int]func(bool)
}

// NewSignal returns a Signal with an unknown value.
func NewSignal() *Signal {
	return &Signal{listeners: make(map[int]func(bool))}
}

// NewSignalFrom returns a Signal seeded with dark.
func NewSignalFrom(dark bool) *Signal {
	s := NewSignal()
	s.known = true
	s.dark = dark
	return s
}

// PrefersDark implements SchemeSource.
func (s *Signal) PrefersDark() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark, s.known
}

// Subscribe implements SchemeSource.
func (s *Signal) Subscribe(fn func(dark bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Listeners reports the number of active subscriptions.
func (s *Signal) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Set records a new value and notifies subscribers if it changed.
func (s *Signal) Set(dark bool) {
	s.mu.Lock()
	if s.known && s.dark == dark {
		s.mu.Unlock()
		return
	}
	s.known = true
	s.dark = dark
	listeners := make([]func(bool), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(dark)
	}
}

// ClientHint reads the color scheme client hint from r.
func ClientHint(r *http.Request) (dark bool, ok bool) {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(r.Header.Get(ClientHintHeader)), `"`)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}
