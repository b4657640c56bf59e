package messaging

import "time"

// Conversation groups all messages exchanged between exactly two participants.
// The pair is stored normalized: UserA is always the smaller id, so one row
// exists per unordered pair regardless of who opened it.
type Conversation struct {
	ID            int64      `db:"id"`
	UserA         int64      `db:"user_a"`
	UserB         int64      `db:"user_b"`
	CreatedAt     time.Time  `db:"created_at"`
	LastMessageAt *time.Time `db:"last_message_at"`
}

// NormalizePair orders an unordered participant pair into canonical form
// (smaller id first). getOrCreate for (a,b) and (b,a) must hit the same row.
func NormalizePair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasParticipant tells whether userID is one of the two members.
func (c Conversation) HasParticipant(userID int64) bool {
	return c.UserA == userID || c.UserB == userID
}

// PeerOf returns the other participant of the conversation, or 0 if userID
// is not a member.
func (c Conversation) PeerOf(userID int64) int64 {
	switch userID {
	case c.UserA:
		return c.UserB
	case c.UserB:
		return c.UserA
	}
	return 0
}
