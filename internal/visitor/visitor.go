// Package visitor tracks the per-visitor state that outlives a single
// request: the notification queue, the contact flow and the live
// color-scheme signal.
package visitor

import (
	"context"
	"errors"
	"sync"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"folio/internal/contact"
	applog "folio/internal/log"
	"folio/internal/notify"
	"folio/internal/theme"
)

// SessionKey is the session key holding the visitor id.
const SessionKey = "visitor_id"

// DefaultCapacity bounds the number of tracked visitors.
const DefaultCapacity = 4096

// State is everything kept for one visitor.
type State struct {
	ID     string
	Queue  *notify.Queue
	Flow   *contact.Flow
	Signal *theme.Signal
}

// Options configure a Registry.
type Options struct {
	Capacity     int
	Deliverer    contact.Deliverer
	QueueOptions []notify.Option
	Observers    []contact.Observer
}

// Registry is a bounded map of visitor id to State. Evicted visitors have
// their queues closed so pending timers are released.
type Registry struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *State]
	opts  Options
}

// NewRegistry creates a Registry.
func NewRegistry(opts Options) (*Registry, error) {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	cache, err := lru.NewWithEvict(opts.Capacity, func(id string, state *State) {
		state.Queue.Close()
		applog.Debug(context.Background(), "visitor evicted", "visitor", id)
	})
	if err != nil {
		return nil, err
	}
	return &Registry{cache: cache, opts: opts}, nil
}

// Get returns the state for id, creating it when absent.
func (r *Registry) Get(id string) *State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state, ok := r.cache.Get(id); ok {
		return state
	}
	state := r.newState(id)
	r.cache.Add(id, state)
	return state
}

// Ephemeral returns a fresh State that is not tracked. It serves requests
// that carry no session; the caller should Close its queue when done.
func (r *Registry) Ephemeral() *State {
	return r.newState("")
}

func (r *Registry) newState(id string) *State {
	return NewState(id, r.opts)
}

// NewState builds a State configured by opts. Capacity is ignored.
func NewState(id string, opts Options) *State {
	queue := notify.New(opts.QueueOptions...)
	return &State{
		ID:     id,
		Queue:  queue,
		Flow:   contact.NewFlow(opts.Deliverer, queue, opts.Observers...),
		Signal: theme.NewSignal(),
	}
}

// Lookup returns the state for id without creating it.
func (r *Registry) Lookup(id string) (*State, bool) {
	return r.cache.Get(id)
}

// Remove forgets id, closing its queue.
func (r *Registry) Remove(id string) {
	r.cache.Remove(id)
}

// Len reports the number of tracked visitors.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Close drops every visitor.
func (r *Registry) Close() {
	r.cache.Purge()
}

// FromSession returns the visitor for the current session, assigning a new
// id when the session has none. A context without a loaded session yields
// an error.
func (r *Registry) FromSession(ctx context.Context, sessions *scs.SessionManager) (state *State, err error) {
	if sessions == nil {
		return nil, errors.New("visitor: no session manager")
	}
	defer func() {
		if rec := recover(); rec != nil {
			state, err = nil, errors.New("visitor: session not loaded")
		}
	}()

	id := sessions.GetString(ctx, SessionKey)
	if id == "" {
		id = uuid.NewString()
		sessions.Put(ctx, SessionKey, id)
	}
	return r.Get(id), nil
}
