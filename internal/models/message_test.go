package models

import (
	"errors"
	"testing"
)

func chatMessage() *Message {
	return &Message{
		ConversationID: "conv-1",
		SenderID:       "user-a",
		ReceiverID:     "user-b",
		Content:        "See you at the library at 5?",
		Type:           MessageText,
	}
}

func TestCanEditSenderOnly(t *testing.T) {
	msg := chatMessage()
	if err := msg.CanEdit("user-a"); err != nil {
		t.Fatalf("sender edit: %v", err)
	}
	if err := msg.CanEdit("user-b"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("receiver edit: expected ErrUnauthorized, got %v", err)
	}
}

func TestCanEditDeletedMessage(t *testing.T) {
	msg := chatMessage()
	msg.Deleted = true
	msg.Content = DeletedMessageText
	if err := msg.CanEdit("user-a"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("edit deleted: expected ErrInvalidTransition, got %v", err)
	}
}

func TestCanDeleteSenderOnly(t *testing.T) {
	msg := chatMessage()
	if err := msg.CanDelete("user-a"); err != nil {
		t.Fatalf("sender delete: %v", err)
	}
	if err := msg.CanDelete("user-b"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("receiver delete: expected ErrUnauthorized, got %v", err)
	}
}

func TestCanMarkReadReceiverOnly(t *testing.T) {
	msg := chatMessage()
	if err := msg.CanMarkRead("user-b"); err != nil {
		t.Fatalf("receiver mark read: %v", err)
	}
	if err := msg.CanMarkRead("user-a"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("sender mark read: expected ErrUnauthorized, got %v", err)
	}
}

func TestMessageTypeValid(t *testing.T) {
	for _, mt := range []MessageType{MessageText, MessageImage, MessageVoice, MessageGif} {
		if !mt.Valid() {
			t.Fatalf("expected %s to be valid", mt)
		}
	}
	if MessageType("video").Valid() {
		t.Fatal("expected video to be invalid")
	}
}
