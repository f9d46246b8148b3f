package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/RugvedaRao/StudyLog/internal/constants"
	"github.com/RugvedaRao/StudyLog/internal/forum"
)

func newTestController() *Controller {
	return NewController(Config{Scope: forum.PublicScope, Limit: 120, SelfName: "Asha"})
}

func snap(msgs []forum.Message, added []forum.Message) forum.Snapshot {
	return forum.Snapshot{Messages: msgs, Added: added}
}

func TestApply_FirstDeliveryNeverNotifies(t *testing.T) {
	c := newTestController()

	msgs := []forum.Message{
		{ID: "m1", Name: "Rahul", Text: "hi", CreatedAtMs: 1000},
		{ID: "m2", Name: "Priya", Text: "hello", CreatedAtMs: 2000},
	}
	// Backfill arrives with everything marked Added.
	if n := c.Apply(snap(msgs, msgs), true); n != nil {
		t.Errorf("backfill must not notify, got %+v", n)
	}
	if len(c.Window()) != 2 {
		t.Errorf("expected window of 2, got %d", len(c.Window()))
	}
}

func TestApply_SecondDeliveryNotifiesWhenHidden(t *testing.T) {
	c := newTestController()
	c.Apply(snap(nil, nil), true)

	added := []forum.Message{{ID: "m1", Name: "Rahul", Text: "anyone up?", CreatedAtMs: 1000}}
	n := c.Apply(snap(added, added), true)
	if n == nil {
		t.Fatal("expected a notification")
	}
	if n.From != "Rahul" || n.ID != "m1" {
		t.Errorf("unexpected notification %+v", n)
	}
}

func TestApply_VisibleFeedSuppressesNotification(t *testing.T) {
	c := newTestController()
	c.Apply(snap(nil, nil), false)

	added := []forum.Message{{ID: "m1", Name: "Rahul", Text: "ping", CreatedAtMs: 1000}}
	if n := c.Apply(snap(added, added), false); n != nil {
		t.Errorf("visible feed must not notify, got %+v", n)
	}
}

func TestApply_AtMostOneNotificationPerDelivery(t *testing.T) {
	c := newTestController()
	c.Apply(snap(nil, nil), true)

	added := []forum.Message{
		{ID: "m1", Name: "Rahul", Text: "one", CreatedAtMs: 1000},
		{ID: "m2", Name: "Priya", Text: "two", CreatedAtMs: 2000},
	}
	n := c.Apply(snap(added, added), true)
	if n == nil {
		t.Fatal("expected a notification")
	}

	// Same delivery repeated: the notified ID is remembered, the next
	// candidate takes over.
	n2 := c.Apply(snap(added, added), true)
	if n2 == nil {
		t.Fatal("expected a second notification for the other message")
	}
	if n2.ID == n.ID {
		t.Errorf("should not re-notify %s", n.ID)
	}
}

func TestApply_SkipsOwnEcho(t *testing.T) {
	c := newTestController()
	c.Apply(snap(nil, nil), true)

	out, ok := c.BuildOutgoing("my own message", time.Now())
	if !ok {
		t.Fatal("BuildOutgoing failed")
	}

	confirmed := out
	confirmed.Pending = false
	delivered := []forum.Message{confirmed}
	if n := c.Apply(snap(delivered, delivered), true); n != nil {
		t.Errorf("own echo must not notify, got %+v", n)
	}
}

func TestApply_ErrorDeliveryKeepsWindow(t *testing.T) {
	c := newTestController()
	msgs := []forum.Message{{ID: "m1", Name: "Rahul", Text: "hi", CreatedAtMs: 1000}}
	c.Apply(snap(msgs, msgs), true)

	c.Apply(forum.Snapshot{Err: errTest}, true)
	if len(c.Window()) != 1 {
		t.Errorf("error delivery should not clear the window, got %d", len(c.Window()))
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "test error" }

func TestBuildOutgoing_WhitespaceOnlyRejected(t *testing.T) {
	c := newTestController()
	if _, ok := c.BuildOutgoing("   \t  ", time.Now()); ok {
		t.Error("whitespace-only input must not produce a message")
	}
}

func TestBuildOutgoing_TruncatesBody(t *testing.T) {
	c := newTestController()
	long := strings.Repeat("x", 300)
	out, ok := c.BuildOutgoing(long, time.Now())
	if !ok {
		t.Fatal("BuildOutgoing failed")
	}
	if len([]rune(out.Text)) != constants.MaxMessageLen {
		t.Errorf("expected %d runes, got %d", constants.MaxMessageLen, len([]rune(out.Text)))
	}
}

func TestBuildOutgoing_FallbackName(t *testing.T) {
	c := NewController(Config{Scope: forum.PublicScope, Limit: 120})
	out, ok := c.BuildOutgoing("hello", time.Now())
	if !ok {
		t.Fatal("BuildOutgoing failed")
	}
	if out.Name != FallbackName {
		t.Errorf("expected fallback name %q, got %q", FallbackName, out.Name)
	}
}

func TestBuildOutgoing_ConsumesReply(t *testing.T) {
	c := newTestController()
	c.SetReply(forum.Message{ID: "m1", Name: "Rahul", Text: "original"})

	out, ok := c.BuildOutgoing("replying", time.Now())
	if !ok {
		t.Fatal("BuildOutgoing failed")
	}
	if out.ReplyTo == nil || out.ReplyTo.ID != "m1" {
		t.Fatalf("expected reply context, got %+v", out.ReplyTo)
	}
	if c.Reply() != nil {
		t.Error("reply context should be consumed by sending")
	}
}

func TestBuildOutgoing_ExtractsMentions(t *testing.T) {
	c := newTestController()
	out, _ := c.BuildOutgoing("ping @Rahul and @priya", time.Now())
	if len(out.Mentions) != 2 || out.Mentions[0] != "rahul" || out.Mentions[1] != "priya" {
		t.Errorf("unexpected mentions %v", out.Mentions)
	}
}

func TestSetReply_EllipsizesLongText(t *testing.T) {
	c := newTestController()
	c.SetReply(forum.Message{
		ID:   "m1",
		Name: "Rahul",
		Text: strings.Repeat("a", 200),
	})

	reply := c.Reply()
	if reply == nil {
		t.Fatal("expected reply context")
	}
	runes := []rune(reply.Text)
	if len(runes) != constants.MaxReplyLen+1 || runes[len(runes)-1] != '…' {
		t.Errorf("expected %d runes ending in ellipsis, got %d", constants.MaxReplyLen+1, len(runes))
	}
}

func TestMembers_FirstAppearanceOrder(t *testing.T) {
	c := newTestController()
	msgs := []forum.Message{
		{ID: "m1", Name: "Rahul", CreatedAtMs: 1000},
		{ID: "m2", Name: "Priya", CreatedAtMs: 2000},
		{ID: "m3", Name: "Rahul", CreatedAtMs: 3000},
	}
	c.Apply(snap(msgs, msgs), true)

	members := c.Members()
	if len(members) != 2 || members[0] != "Rahul" || members[1] != "Priya" {
		t.Errorf("unexpected members %v", members)
	}
}

func TestReset_PreservesLastNotified(t *testing.T) {
	c := newTestController()
	c.Apply(snap(nil, nil), true)

	added := []forum.Message{{ID: "m1", Name: "Rahul", Text: "hi", CreatedAtMs: 1000}}
	if n := c.Apply(snap(added, added), true); n == nil {
		t.Fatal("expected a notification before reset")
	}

	c.Reset()
	// Fresh subscription: backfill first, then the same message again.
	c.Apply(snap(added, nil), true)
	if n := c.Apply(snap(added, added), true); n != nil {
		t.Errorf("resubscribe must not re-raise the old notification, got %+v", n)
	}
}
