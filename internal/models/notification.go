package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types emitted by the messaging lifecycle.
const (
	NotificationMessageRequest  = "message_request"
	NotificationMessageAccepted = "message_accepted"
	NotificationMessage         = "message"
)

// Notification is a best-effort record appended after a committed state
// transition. Owned by the recipient, who alone may mark it read.
type Notification struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID    string                 `bson:"user_id" json:"userId"`
	Type      string                 `bson:"type" json:"type"`
	Title     string                 `bson:"title" json:"title"`
	Message   string                 `bson:"message" json:"message"`
	Read      bool                   `bson:"read" json:"read"`
	CreatedAt time.Time              `bson:"created_at" json:"createdAt"`
	Data      map[string]interface{} `bson:"data,omitempty" json:"data,omitempty"`
}
