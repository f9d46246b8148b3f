package forum

import "context"

// PublicScope is the single shared discussion board every client joins.
const PublicScope = "public_discussion_forum"

// Store is the capability interface over the shared message collection.
// Implementations deliver whole-window snapshots, never deltas; the Added
// diff is computed by the subscription primitive, not by callers.
type Store interface {
	// Connect upserts the scope's meta document, recording creation time.
	Connect(scope string) error

	// Append writes one message document to the scope.
	Append(scope string, msg Message) error

	// Recent returns the most recent limit messages, ascending by creation
	// time.
	Recent(scope string, limit int) ([]Message, error)

	// Subscribe delivers the current window and then a fresh snapshot on
	// every underlying change until ctx is cancelled. Callers must cancel a
	// prior subscription before opening a new one; holding two live
	// subscriptions is not supported.
	Subscribe(ctx context.Context, scope string, limit int) (<-chan Snapshot, error)
}
