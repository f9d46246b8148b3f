package feed

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/RugvedaRao/StudyLog/internal/constants"
	"github.com/RugvedaRao/StudyLog/internal/forum"
)

// FallbackName is used as the author when no profile name is set.
const FallbackName = "Student"

type Config struct {
	Scope    string
	Limit    int
	SelfName string
}

// Notification describes a message the user should be alerted about. At most
// one is produced per snapshot delivery.
type Notification struct {
	ID   string
	From string
	Text string
}

// Controller derives the render model for one scope's message feed and owns
// the ephemeral compose-time state (reply target, optimistic echoes). It is
// confined to the UI event loop; no locking.
type Controller struct {
	cfg Config

	window  []forum.Message // ascending by CreatedAtMs
	members []string

	echoes  []forum.Message // optimistic local sends, not yet in the window
	echoIDs map[string]struct{}

	reply *forum.Reply

	primed         bool // true once the initial backfill delivery was seen
	lastNotifiedID string
}

func NewController(cfg Config) *Controller {
	if cfg.Limit <= 0 {
		cfg.Limit = constants.ForumWindow
	}
	return &Controller{
		cfg:     cfg,
		echoIDs: make(map[string]struct{}),
	}
}

func (c *Controller) Scope() string { return c.cfg.Scope }
func (c *Controller) Limit() int    { return c.cfg.Limit }

// SetSelfName updates the author name used for outgoing messages.
func (c *Controller) SetSelfName(name string) {
	c.cfg.SelfName = name
}

func (c *Controller) SelfName() string { return c.cfg.SelfName }

// Reset prepares the controller for a fresh subscription. The next delivery
// is treated as historical backfill and never notifies. The last-notified
// marker survives so a resubscribe cannot re-raise an old notification.
func (c *Controller) Reset() {
	c.primed = false
	c.window = nil
	c.members = nil
	c.echoes = nil
	c.echoIDs = make(map[string]struct{})
	c.reply = nil
}

// Apply ingests one snapshot delivery. hidden reports whether the feed view
// is currently unfocused; notifications are suppressed entirely otherwise.
func (c *Controller) Apply(snap forum.Snapshot, hidden bool) *Notification {
	if snap.Err != nil {
		return nil
	}

	c.window = snap.Messages
	c.rebuildMembers()
	c.resolveEchoes()

	if !c.primed {
		// Initial snapshot is backfill. Never notify, regardless of content.
		c.primed = true
		return nil
	}

	if !hidden {
		return nil
	}

	for _, msg := range snap.Added {
		if msg.ID == c.lastNotifiedID {
			continue
		}
		if _, own := c.echoIDs[msg.ID]; own || msg.Pending {
			continue
		}

		c.lastNotifiedID = msg.ID
		return &Notification{ID: msg.ID, From: msg.Name, Text: msg.Text}
	}
	return nil
}

// rebuildMembers recomputes the distinct author names in the window, in
// order of first appearance. Never persisted.
func (c *Controller) rebuildMembers() {
	seen := make(map[string]struct{}, len(c.window))
	members := make([]string, 0, len(c.window))
	for _, msg := range c.window {
		if msg.Name == "" {
			continue
		}
		if _, ok := seen[msg.Name]; ok {
			continue
		}
		seen[msg.Name] = struct{}{}
		members = append(members, msg.Name)
	}
	c.members = members
}

// resolveEchoes drops optimistic echoes the store has confirmed.
func (c *Controller) resolveEchoes() {
	if len(c.echoes) == 0 {
		return
	}

	confirmed := make(map[string]struct{}, len(c.window))
	for _, msg := range c.window {
		confirmed[msg.ID] = struct{}{}
	}

	kept := c.echoes[:0]
	for _, echo := range c.echoes {
		if _, ok := confirmed[echo.ID]; !ok {
			kept = append(kept, echo)
		}
	}
	c.echoes = kept
}

// Window returns the confirmed window plus any unconfirmed local echoes,
// ascending by creation time.
func (c *Controller) Window() []forum.Message {
	out := make([]forum.Message, 0, len(c.window)+len(c.echoes))
	out = append(out, c.window...)
	out = append(out, c.echoes...)
	return out
}

func (c *Controller) Members() []string {
	return c.members
}

// Rows derives the day-grouped, newest-first render model.
func (c *Controller) Rows(now time.Time) []Row {
	return Rows(c.Window(), now)
}

// SetReply captures a truncated snapshot of msg as the pending reply target.
// At most one is held at a time.
func (c *Controller) SetReply(msg forum.Message) {
	c.reply = &forum.Reply{
		ID:   msg.ID,
		Name: truncate(msg.Name, constants.MaxNameLen),
		Text: ellipsize(msg.Text, constants.MaxReplyLen),
	}
}

func (c *Controller) Reply() *forum.Reply {
	return c.reply
}

func (c *Controller) ClearReply() {
	c.reply = nil
}

// BuildOutgoing turns compose input into a message. Whitespace-only input
// yields ok=false and changes nothing. On success the pending reply context
// is consumed and the message is recorded as a local echo.
func (c *Controller) BuildOutgoing(input string, now time.Time) (forum.Message, bool) {
	text := strings.TrimSpace(input)
	if text == "" {
		return forum.Message{}, false
	}
	text = truncate(text, constants.MaxMessageLen)

	name := truncate(strings.TrimSpace(c.cfg.SelfName), constants.MaxNameLen)
	if name == "" {
		name = FallbackName
	}

	msg := forum.Message{
		ID:          uuid.New().String(),
		Name:        name,
		Text:        text,
		CreatedAtMs: now.UnixMilli(),
		ReplyTo:     c.reply,
		Mentions:    ExtractMentions(text),
		Pending:     true,
	}

	c.reply = nil
	c.echoes = append(c.echoes, msg)
	c.echoIDs[msg.ID] = struct{}{}

	return msg, true
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// ellipsize truncates to max runes and marks the cut with an ellipsis.
func ellipsize(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
