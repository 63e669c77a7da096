package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TypingFreshWindow is how long a typing indicator counts as active. Stale
// indicators are never deleted, only ignored.
const TypingFreshWindow = 3000 * time.Millisecond

// TypingIndicator is an ephemeral, append-only signal. A new document is
// written per keystroke burst; consumers treat any indicator younger than
// TypingFreshWindow from another user as "typing".
type TypingIndicator struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id" json:"userId"`
	UserName       string             `bson:"user_name" json:"userName"`
	ConversationID string             `bson:"conversation_id" json:"conversationId"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
}

// Fresh reports whether the indicator is still inside the active window at now.
func (t *TypingIndicator) Fresh(now time.Time) bool {
	return now.Sub(t.Timestamp) < TypingFreshWindow
}
