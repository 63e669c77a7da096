package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTheme is assigned when a conversation is created.
const DefaultTheme = "default"

// ConversationThemes are the selectable chat themes. Theme is shared state:
// last writer wins and both participants see the change.
var ConversationThemes = []string{"default", "dark", "blue", "green", "purple"}

// ValidTheme reports whether theme is one of the selectable themes.
func ValidTheme(theme string) bool {
	for _, t := range ConversationThemes {
		if t == theme {
			return true
		}
	}
	return false
}

// Conversation is a two-party message thread, created only as the side effect
// of accepting a message request. Membership is fixed at creation. The
// unread_count and is_pinned maps always carry an entry for both participants.
type Conversation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Participants    []string           `bson:"participants" json:"participants"`
	LastMessage     string             `bson:"last_message" json:"lastMessage"`
	LastMessageTime time.Time          `bson:"last_message_time" json:"lastMessageTime"`
	UnreadCount     map[string]int     `bson:"unread_count" json:"unreadCount"`
	IsPinned        map[string]bool    `bson:"is_pinned" json:"isPinned"`
	Theme           string             `bson:"theme" json:"theme"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// HasParticipant reports whether userID is a member of the conversation.
func (c *Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant returns the counterpart of self, or "" when self is not a
// participant.
func (c *Conversation) OtherParticipant(self string) string {
	for _, p := range c.Participants {
		if p != self {
			return p
		}
	}
	return ""
}
