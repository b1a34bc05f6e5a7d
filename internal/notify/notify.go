// Package notify keeps the ordered list of transient notifications shown to a visitor.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Variants.
const (
	VariantDefault     = "default"
	VariantDestructive = "destructive"
	VariantSuccess     = "success"
)

// DefaultTimeout is how long a notification stays active unless dismissed.
const DefaultTimeout = 5000 * time.Millisecond

// Action is an optional call to action attached to a notification. Href is
// the endpoint the rendered control posts to.
type Action struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Notification is a transient user-facing message.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Variant     string    `json:"variant"`
	Action      *Action   `json:"action,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Timer is the subset of *time.Timer the queue relies on.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn after d.
type AfterFunc func(d time.Duration, fn func()) Timer

// Option configures a Queue.
type Option func(*Queue)

// WithTimeout overrides the expiry delay.
func WithTimeout(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

// WithAfterFunc replaces the timer implementation.
func WithAfterFunc(fn AfterFunc) Option {
	return func(q *Queue) {
		if fn != nil {
			q.afterFunc = fn
		}
	}
}

// WithClock replaces the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		if now != nil {
			q.now = now
		}
	}
}

// Queue holds active notifications in insertion order. It is safe for
// concurrent use.
type Queue struct {
	mu        sync.Mutex
	items     []Notification
	timers    map[string]Timer
	timeout   time.Duration
	afterFunc AfterFunc
	now       func() time.Time
	closed    bool
}

// New returns an empty Queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		timers:  make(map[string]Timer),
		timeout: DefaultTimeout,
		afterFunc: func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push appends n, schedules its expiry and returns its generated id. Any id
// set on n is replaced. Pushing to a closed queue returns an empty id.
func (q *Queue) Push(n Notification) string {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ""
	}
	n.ID = uuid.NewString()
	if n.Variant == "" {
		n.Variant = VariantDefault
	}
	n.CreatedAt = q.now()
	q.items = append(q.items, n)
	q.mu.Unlock()

	// The expiry may run before the timer is recorded; keep the timer only
	// while the notification is still active.
	id := n.ID
	timer := q.afterFunc(q.timeout, func() {
		q.remove(id, false)
	})

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed || !q.activeLocked(id) {
		timer.Stop()
		return id
	}
	q.timers[id] = timer
	return id
}

func (q *Queue) activeLocked(id string) bool {
	for _, item := range q.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Dismiss removes the notification with id. Unknown ids are ignored.
func (q *Queue) Dismiss(id string) {
	q.remove(id, true)
}

// Active returns a copy of the active notifications in display order.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Notification(nil), q.items...)
}

// Len reports the number of active notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Close stops every pending timer and clears the queue.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.items = nil
	q.closed = true
}

func (q *Queue) remove(id string, stopTimer bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timer, ok := q.timers[id]; ok {
		if stopTimer {
			timer.Stop()
		}
		delete(q.timers, id)
	}
	for i, item := range q.items {
		if item.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}
