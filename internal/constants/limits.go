package constants

import "time"

const (
	// MaxMessageLen is the hard cap on a message body. Bodies are truncated,
	// not rejected.
	MaxMessageLen = 220
	// MaxNameLen caps a display name, both in the profile and on the wire.
	MaxNameLen = 30
	// MaxReplyLen caps the quoted body carried in a reply snapshot.
	MaxReplyLen = 110

	// ForumWindow is the recent-message window for the public board.
	ForumWindow = 120
	// RoomWindow is the recent-message window for private rooms.
	RoomWindow = 80

	// MaxMentionCandidates bounds the autocomplete dropdown.
	MaxMentionCandidates = 8

	// SendFailRevert is how long the "Send failed" status is shown before
	// reverting to the live indicator.
	SendFailRevert = 1200 * time.Millisecond
)

const (
	// Alarm pattern: BeepsPerCycle short tones per cycle with a fixed gap,
	// repeated until acknowledged.
	BeepsPerCycle = 4
	BeepDuration  = 80 * time.Millisecond
	BeepGap       = 100 * time.Millisecond
)

func init() {
	// Runtime validation: a reply snapshot must always fit inside a message
	// body so quoting can never itself overflow the store cap.
	if MaxReplyLen >= MaxMessageLen {
		panic("MaxReplyLen must be smaller than MaxMessageLen")
	}
}
