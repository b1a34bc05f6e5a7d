package contact

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"folio/internal/notify"
)

func newQueue() *notify.Queue {
	return notify.New(notify.WithTimeout(time.Hour))
}

func TestSubmitInvalidStaysIdle(t *testing.T) {
	t.Parallel()

	calls := 0
	queue := newQueue()
	defer queue.Close()
	flow := NewFlow(DelivererFunc(func(context.Context, Payload) error {
		calls++
		return nil
	}), queue)

	submitted := Payload{Name: "Jo", Email: "bad", Subject: "four", Message: "hi"}
	out, err := flow.Submit(context.Background(), submitted)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if len(out.Errors) != 3 || out.Errors.For(FieldName) != "" {
		t.Fatalf("unexpected field errors %v", out.Errors)
	}
	if out.Form != submitted {
		t.Fatalf("expected form values to be kept, got %+v", out.Form)
	}
	if calls != 0 {
		t.Fatal("deliverer must not be called for invalid payloads")
	}
	if queue.Len() != 0 {
		t.Fatal("no notification expected on validation failure")
	}
	if flow.State() != StateIdle {
		t.Fatalf("expected idle, got %s", flow.State())
	}
}

func TestSubmitSuccessClearsForm(t *testing.T) {
	t.Parallel()

	queue := newQueue()
	defer queue.Close()

	var transitions []State
	var mu sync.Mutex
	observe := func(_, to State) {
		mu.Lock()
		transitions = append(transitions, to)
		mu.Unlock()
	}

	var delivered Payload
	flow := NewFlow(DelivererFunc(func(_ context.Context, p Payload) error {
		delivered = p
		return nil
	}), queue, observe)

	out, err := flow.Submit(context.Background(), Payload{
		Name:    " Jo ",
		Email:   "jo@example.com",
		Subject: "Hello there",
		Message: "A message long enough.",
	})
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if !out.Delivered || out.Form != (Payload{}) {
		t.Fatalf("expected delivered with cleared form, got %+v", out)
	}
	if delivered.Name != "Jo" {
		t.Fatalf("expected trimmed payload to be delivered, got %q", delivered.Name)
	}

	active := queue.Active()
	if len(active) != 1 || active[0].Variant != notify.VariantSuccess || active[0].Title != SuccessTitle {
		t.Fatalf("unexpected notifications %+v", active)
	}
	if active[0].ID != out.NotificationID {
		t.Fatalf("outcome id %q does not match queued %q", out.NotificationID, active[0].ID)
	}

	want := []State{StateSubmitting, StateSuccess, StateIdle}
	if !reflect.DeepEqual(transitions, want) {
		t.Fatalf("transitions = %v, want %v", transitions, want)
	}
}

func TestSubmitFailurePreservesForm(t *testing.T) {
	t.Parallel()

	queue := newQueue()
	defer queue.Close()
	boom := errors.New("smtp down")
	flow := NewFlow(Simulated{Err: boom}, queue)

	p := validPayload()
	p.Budget = "not-sure"
	out, err := flow.Submit(context.Background(), p)
	if err != nil {
		t.Fatalf("delivery failure should not be returned as error, got %v", err)
	}
	if out.Delivered || !errors.Is(out.DeliveryErr, boom) {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if out.Form != p {
		t.Fatalf("expected form to be preserved, got %+v", out.Form)
	}

	active := queue.Active()
	if len(active) != 1 || active[0].Variant != notify.VariantDestructive {
		t.Fatalf("expected destructive notification, got %+v", active)
	}
	if active[0].Title != FailureTitle || active[0].Description != FailureDescription {
		t.Fatalf("unexpected copy %+v", active[0])
	}
	if flow.State() != StateIdle {
		t.Fatalf("expected idle after failure, got %s", flow.State())
	}
}

func TestSubmitRecoversPanickingDeliverer(t *testing.T) {
	t.Parallel()

	queue := newQueue()
	defer queue.Close()

	calls := 0
	flow := NewFlow(DelivererFunc(func(context.Context, Payload) error {
		calls++
		if calls == 1 {
			panic("transport exploded")
		}
		return nil
	}), queue)

	out, err := flow.Submit(context.Background(), validPayload())
	if err != nil {
		t.Fatalf("expected panic to be reported as a delivery failure, got %v", err)
	}
	if out.Delivered || out.DeliveryErr == nil {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if active := queue.Active(); len(active) != 1 || active[0].Variant != notify.VariantDestructive {
		t.Fatalf("expected destructive notification, got %+v", active)
	}
	if flow.State() != StateIdle {
		t.Fatalf("expected idle after panic, got %s", flow.State())
	}

	retry, err := flow.Submit(context.Background(), validPayload())
	if err != nil {
		t.Fatalf("expected retry to be accepted, got %v", err)
	}
	if !retry.Delivered {
		t.Fatalf("expected retry to deliver, got %+v", retry)
	}
}

func TestSubmitWhileBusy(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})
	flow := NewFlow(DelivererFunc(func(context.Context, Payload) error {
		close(started)
		<-release
		return nil
	}), nil)

	done := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background(), validPayload())
		done <- err
	}()

	<-started
	if flow.State() != StateSubmitting {
		t.Fatalf("expected submitting, got %s", flow.State())
	}
	if _, err := flow.Submit(context.Background(), validPayload()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
	if flow.State() != StateIdle {
		t.Fatalf("expected idle, got %s", flow.State())
	}
}

func TestSubmitCancelledSkipsNotification(t *testing.T) {
	t.Parallel()

	queue := newQueue()
	defer queue.Close()
	flow := NewFlow(Simulated{Delay: time.Minute}, queue)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	out, err := flow.Submit(ctx, validPayload())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if out.Delivered || !errors.Is(out.DeliveryErr, context.Canceled) {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if queue.Len() != 0 {
		t.Fatalf("expected no notification for abandoned submission, got %+v", queue.Active())
	}
	if flow.State() != StateIdle {
		t.Fatalf("expected idle, got %s", flow.State())
	}
}

func TestSimulatedWaitsForDelay(t *testing.T) {
	t.Parallel()

	start := time.Now()
	if err := (Simulated{Delay: 15 * time.Millisecond}).Deliver(context.Background(), validPayload()); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Fatalf("returned after %s, expected at least the delay", elapsed)
	}
}
