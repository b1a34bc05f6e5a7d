// Package contact validates contact form submissions and drives their
// delivery lifecycle.
package contact

import (
	"context"
	"errors"
	"fmt"
	"sync"

	applog "folio/internal/log"
	"folio/internal/notify"
)

var (
	// ErrInvalid is returned when the payload fails validation.
	ErrInvalid = errors.New("contact: invalid payload")
	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("contact: submission in progress")
)

// State is the lifecycle position of a Flow.
type State string

// States.
const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateError      State = "error"
)

// Notification copy.
const (
	SuccessTitle       = "Message sent successfully!"
	SuccessDescription = "Thank you for reaching out. I'll get back to you within 24 hours."
	FailureTitle       = "Error sending message"
	FailureDescription = "Please try again later or contact me directly via LinkedIn."
)

// Outcome reports what a Submit call did.
type Outcome struct {
	// Errors is set when validation failed.
	Errors FieldErrors
	// Delivered reports whether the deliverer accepted the payload.
	Delivered bool
	// Form holds the values the form should display afterwards: empty after a
	// successful delivery, the submitted values otherwise.
	Form Payload
	// NotificationID is the id of the pushed notification, if any.
	NotificationID string
	// DeliveryErr is the deliverer's error on failure.
	DeliveryErr error
}

// Observer is told about every state transition.
type Observer func(from, to State)

// Flow serializes submissions for one visitor.
type Flow struct {
	mu        sync.Mutex
	state     State
	deliverer Deliverer
	queue     *notify.Queue
	observers []Observer
}

// NewFlow returns an idle Flow. queue may be nil, in which case outcomes are
// only reported through the return value.
func NewFlow(deliverer Deliverer, queue *notify.Queue, observers ...Observer) *Flow {
	if deliverer == nil {
		deliverer = Simulated{}
	}
	return &Flow{
		state:     StateIdle,
		deliverer: deliverer,
		queue:     queue,
		observers: observers,
	}
}

// State returns the current lifecycle state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit validates p and, when valid, delivers it. Validation failures
// return ErrInvalid without touching the deliverer or the queue. A delivery
// failure is reported through a destructive notification and returned as a
// nil error with Outcome.Delivered false. If ctx is cancelled before delivery
// finishes the visitor is gone, so no notification is pushed.
func (f *Flow) Submit(ctx context.Context, p Payload) (Outcome, error) {
	p = p.Normalize()
	if errs := Validate(p); len(errs) > 0 {
		return Outcome{Errors: errs, Form: p}, fmt.Errorf("%w: %s", ErrInvalid, errs.Error())
	}

	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return Outcome{Form: p}, ErrBusy
	}
	f.transitionLocked(StateSubmitting)
	f.mu.Unlock()

	err := f.deliver(ctx, p)

	f.mu.Lock()
	defer func() {
		f.transitionLocked(StateIdle)
		f.mu.Unlock()
	}()

	fingerprint := Fingerprint(p.Email)
	if ctxErr := ctx.Err(); ctxErr != nil {
		applog.Info(ctx, "contact submission abandoned", "fingerprint", fingerprint, "err", ctxErr)
		if err == nil {
			err = ctxErr
		}
		return Outcome{Form: p, DeliveryErr: err}, nil
	}

	if err != nil {
		f.transitionLocked(StateError)
		applog.Error(ctx, "contact delivery failed", "fingerprint", fingerprint, "err", err)
		out := Outcome{Form: p, DeliveryErr: err}
		out.NotificationID = f.push(notify.Notification{
			Title:       FailureTitle,
			Description: FailureDescription,
			Variant:     notify.VariantDestructive,
		})
		return out, nil
	}

	f.transitionLocked(StateSuccess)
	applog.Info(ctx, "contact message delivered", "fingerprint", fingerprint, "subject_len", len(p.Subject))
	out := Outcome{Delivered: true}
	out.NotificationID = f.push(notify.Notification{
		Title:       SuccessTitle,
		Description: SuccessDescription,
		Variant:     notify.VariantSuccess,
	})
	return out, nil
}

// deliver reports a panicking deliverer as a failed delivery so the flow
// always returns to idle.
func (f *Flow) deliver(ctx context.Context, p Payload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("contact: deliverer panicked: %v", r)
		}
	}()
	return f.deliverer.Deliver(ctx, p)
}

func (f *Flow) push(n notify.Notification) string {
	if f.queue == nil {
		return ""
	}
	return f.queue.Push(n)
}

func (f *Flow) transitionLocked(to State) {
	from := f.state
	f.state = to
	for _, observe := range f.observers {
		observe(from, to)
	}
}
