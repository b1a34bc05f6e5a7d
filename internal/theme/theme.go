// Package theme resolves the visitor's light/dark preference against the
// operating system color scheme and applies the result.
package theme

import (
	"context"
	"sync"

	applog "folio/internal/log"
	"folio/models"
)

// Store persists the preference under a single key. Load reports false when
// the value is absent or the backend is unavailable; Save must not fail loudly.
type Store interface {
	Load(ctx context.Context) (string, bool)
	Save(ctx context.Context, preference string)
}

// SchemeSource exposes the operating system "prefers dark" signal.
type SchemeSource interface {
	// PrefersDark returns the current signal; ok is false when unavailable.
	PrefersDark() (dark bool, ok bool)
	// Subscribe registers fn for changes and returns a function that removes it.
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// Applier makes the resolved theme visible. Apply is called without the
// Machine's state lock held, so it may read Preference and Resolved, but it
// must not change the theme.
type Applier interface {
	Apply(resolved string)
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(resolved string)

// Apply calls f.
func (f ApplierFunc) Apply(resolved string) { f(resolved) }

// Machine holds the tri-state preference and the theme derived from it.
type Machine struct {
	// update serializes Save and Apply so side effects follow state order.
	update      sync.Mutex
	mu          sync.Mutex
	ctx         context.Context
	store       Store
	source      SchemeSource
	applier     Applier
	preference  string
	resolved    string
	unsubscribe func()
}

// New initializes a Machine from the stored preference, applies the resolved
// theme and starts listening for operating system changes. Any dependency may
// be nil: a missing store behaves as empty, a missing source as light.
func New(ctx context.Context, store Store, source SchemeSource, applier Applier) *Machine {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Machine{
		ctx:        ctx,
		store:      store,
		source:     source,
		applier:    applier,
		preference: models.DefaultTheme,
	}

	if store != nil {
		if stored, ok := store.Load(ctx); ok && models.ValidTheme(stored) {
			m.preference = stored
		} else if ok {
			applog.Debug(ctx, "ignoring invalid stored theme", "value", stored)
		}
	}

	m.mu.Lock()
	resolved := m.resolveLocked()
	m.mu.Unlock()
	m.apply(resolved)

	if source != nil {
		m.unsubscribe = source.Subscribe(m.systemChanged)
	}
	return m
}

// Preference returns the current preference: light, dark or system.
func (m *Machine) Preference() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.preference
}

// Resolved returns the theme in effect: light or dark.
func (m *Machine) Resolved() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolved
}

// SetTheme persists preference and applies the theme it resolves to. Invalid
// values are normalized to the default preference.
func (m *Machine) SetTheme(preference string) {
	preference = models.NormalizeTheme(preference)

	m.update.Lock()
	defer m.update.Unlock()
	if m.store != nil {
		m.store.Save(m.ctx, preference)
	}

	m.mu.Lock()
	m.preference = preference
	resolved := m.resolveLocked()
	m.mu.Unlock()
	m.apply(resolved)
}

// Cycle advances light -> dark -> system -> light and returns the new preference.
func (m *Machine) Cycle() string {
	next := Next(m.Preference())
	m.SetTheme(next)
	return next
}

// Close stops listening for operating system changes. It is safe to call more than once.
func (m *Machine) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

func (m *Machine) systemChanged(dark bool) {
	m.update.Lock()
	defer m.update.Unlock()

	m.mu.Lock()
	if m.preference != models.ThemeSystem {
		m.mu.Unlock()
		return
	}
	m.resolved = fromDark(dark)
	resolved := m.resolved
	m.mu.Unlock()
	m.apply(resolved)
}

// resolveLocked records and returns the theme the current preference yields.
func (m *Machine) resolveLocked() string {
	if m.preference != models.ThemeSystem {
		m.resolved = m.preference
	} else {
		m.resolved = m.systemScheme()
	}
	return m.resolved
}

func (m *Machine) systemScheme() string {
	if m.source == nil {
		return models.ResolvedLight
	}
	dark, ok := m.source.PrefersDark()
	if !ok {
		return models.ResolvedLight
	}
	return fromDark(dark)
}

func (m *Machine) apply(resolved string) {
	if m.applier != nil {
		m.applier.Apply(resolved)
	}
}

// Next returns the preference that follows current in the toggle cycle.
func Next(current string) string {
	switch current {
	case models.ThemeLight:
		return models.ThemeDark
	case models.ThemeDark:
		return models.ThemeSystem
	default:
		return models.ThemeLight
	}
}

func fromDark(dark bool) string {
	if dark {
		return models.ResolvedDark
	}
	return models.ResolvedLight
}
