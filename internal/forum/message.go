package forum

// Reply is a truncated snapshot of a prior message, attached for quoting.
// It is immutable once written; edits to the original (which cannot happen,
// messages are append-only) would not propagate.
type Reply struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// Message is one document in a scope. CreatedAtMs is client-supplied epoch
// millis and is the sole ordering key.
type Message struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Text        string   `json:"text"`
	CreatedAtMs int64    `json:"createdAtMs"`
	ReplyTo     *Reply   `json:"replyTo,omitempty"`
	Mentions    []string `json:"mentions,omitempty"`

	// Pending marks a local optimistic echo that the store has not
	// confirmed yet. Never serialized.
	Pending bool `json:"-"`
}

// Snapshot is one delivery from a subscription: the entire current window
// plus the set of documents that were not present in the prior delivery.
type Snapshot struct {
	// Messages is the full window, ascending by CreatedAtMs.
	Messages []Message
	// Added holds documents new since the last delivery, ascending by
	// CreatedAtMs. Empty on the initial delivery.
	Added []Message
	// Err is set when the underlying listener failed; the window fields are
	// empty in that case and the subscription keeps running.
	Err error
}
