package contact

import (
	"context"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Deliverer sends a validated payload somewhere. Implementations must honour
// context cancellation.
type Deliverer interface {
	Deliver(ctx context.Context, p Payload) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, p Payload) error

// Deliver calls f.
func (f DelivererFunc) Deliver(ctx context.Context, p Payload) error {
	return f(ctx, p)
}

// Simulated waits Delay and then returns Err. It stands in for a real mail
// backend.
type Simulated struct {
	Delay time.Duration
	Err   error
}

// Deliver implements Deliverer.
func (s Simulated) Deliver(ctx context.Context, _ Payload) error {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return s.Err
}

// Fingerprint returns a short stable digest of an email address so that
// submissions can be correlated in logs without recording the address.
func Fingerprint(email string) string {
	sum := blake2b.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return hex.EncodeToString(sum[:8])
}
