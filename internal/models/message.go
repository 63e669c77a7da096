package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageType describes the message payload.
// Valid values: "text", "image", "voice", "gif".
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageVoice MessageType = "voice"
	MessageGif   MessageType = "gif"
)

// Valid reports whether t is a known message type.
func (t MessageType) Valid() bool {
	switch t {
	case MessageText, MessageImage, MessageVoice, MessageGif:
		return true
	}
	return false
}

// DeletedMessageText replaces the content of a soft-deleted message. The
// document itself, its id and its timestamp persist so the message keeps its
// slot in the conversation ordering.
const DeletedMessageText = "This message was deleted"

// Message belongs to exactly one conversation. Content may be overwritten in
// place on edit or replaced with the tombstone text on delete; physical
// deletion never happens.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID string             `bson:"conversation_id" json:"conversationId"`
	SenderID       string             `bson:"sender_id" json:"senderId"`
	ReceiverID     string             `bson:"receiver_id" json:"receiverId"`
	Content        string             `bson:"content" json:"content"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	Read           bool               `bson:"read" json:"read"`
	Type           MessageType        `bson:"type" json:"type"`
	Edited         bool               `bson:"edited" json:"edited"`
	Deleted        bool               `bson:"deleted" json:"deleted"`
}

// CanEdit checks whether actor may overwrite the content. Only the sender may
// edit and deleted messages stay deleted.
func (m *Message) CanEdit(actor string) error {
	if actor != m.SenderID {
		return fmt.Errorf("edit message: %w", ErrUnauthorized)
	}
	if m.Deleted {
		return fmt.Errorf("edit deleted message: %w", ErrInvalidTransition)
	}
	return nil
}

// CanDelete checks whether actor may tombstone the message.
func (m *Message) CanDelete(actor string) error {
	if actor != m.SenderID {
		return fmt.Errorf("delete message: %w", ErrUnauthorized)
	}
	return nil
}

// CanMarkRead checks whether actor may flip the read flag. Receiver only.
func (m *Message) CanMarkRead(actor string) error {
	if actor != m.ReceiverID {
		return fmt.Errorf("mark read: %w", ErrUnauthorized)
	}
	return nil
}
