package forum

import (
	"context"
	"testing"
	"time"
)

func waitSnap(t *testing.T, ch <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("snapshot channel closed unexpectedly")
		}
		return snap
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return Snapshot{}
	}
}

func TestSubscribe_InitialBackfillHasNoAdded(t *testing.T) {
	s := testStore(t)
	if err := s.Append(PublicScope, Message{ID: "m1", Name: "A", CreatedAtMs: 1000}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Subscribe(ctx, PublicScope, 120)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	snap := waitSnap(t, ch)
	if snap.Err != nil {
		t.Fatalf("unexpected error: %v", snap.Err)
	}
	if len(snap.Messages) != 1 || snap.Messages[0].ID != "m1" {
		t.Errorf("expected backfill of 1 message, got %+v", snap.Messages)
	}
	if snap.Added != nil {
		t.Errorf("backfill must not carry Added, got %+v", snap.Added)
	}
}

func TestSubscribe_DeliversAppendsWithDiff(t *testing.T) {
	s := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Subscribe(ctx, PublicScope, 120)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	waitSnap(t, ch) // drain backfill

	if err := s.Append(PublicScope, Message{ID: "m2", Name: "B", Text: "new", CreatedAtMs: 2000}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	snap := waitSnap(t, ch)
	if snap.Err != nil {
		t.Fatalf("unexpected error: %v", snap.Err)
	}
	if len(snap.Messages) != 1 {
		t.Fatalf("expected window of 1, got %d", len(snap.Messages))
	}
	if len(snap.Added) != 1 || snap.Added[0].ID != "m2" {
		t.Errorf("expected m2 in Added, got %+v", snap.Added)
	}
}

func TestSubscribe_CoalescesBursts(t *testing.T) {
	s := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Subscribe(ctx, PublicScope, 120)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	waitSnap(t, ch)

	// A burst of writes inside the throttle window.
	for i := 0; i < 5; i++ {
		msg := Message{ID: string(rune('a' + i)), Name: "A", CreatedAtMs: int64(1000 * (i + 1))}
		if err := s.Append(PublicScope, msg); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	snap := waitSnap(t, ch)
	if snap.Err != nil {
		t.Fatalf("unexpected error: %v", snap.Err)
	}
	// One coalesced delivery may miss stragglers; collect until all five
	// appear, but every delivery must be a whole window, never a delta.
	total := len(snap.Messages)
	for total < 5 {
		snap = waitSnap(t, ch)
		if snap.Err != nil {
			t.Fatalf("unexpected error: %v", snap.Err)
		}
		if len(snap.Messages) < total {
			t.Fatalf("window shrank from %d to %d", total, len(snap.Messages))
		}
		total = len(snap.Messages)
	}
}

func TestSubscribe_CancelClosesChannel(t *testing.T) {
	s := testStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := s.Subscribe(ctx, PublicScope, 120)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	waitSnap(t, ch)

	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// A snapshot may already be buffered; the close must follow.
			if _, ok := <-ch; ok {
				t.Error("channel should close after cancellation")
			}
		}
	case <-time.After(3 * time.Second):
		t.Error("channel did not close after cancellation")
	}
}
