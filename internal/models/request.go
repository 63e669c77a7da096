package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestStatus is the lifecycle state of a message request.
// Valid values: "pending", "accepted", "declined", "blocked".
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
	RequestBlocked  RequestStatus = "blocked"
)

// Valid reports whether s is a known request status. Documents decoded with an
// unknown status are rejected rather than trusted.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestDeclined, RequestBlocked:
		return true
	}
	return false
}

// MaxRequestMessageLen caps the intro message attached to a request.
const MaxRequestMessageLen = 500

// MessageRequest is the consent handshake required before two users can
// exchange messages. Created by the sender; transitioned by the recipient
// (accept/decline/block) or cancelled by the sender while still pending.
// At most one pending request may exist per ordered (from, to) pair.
type MessageRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FromUserID   string             `bson:"from_user_id" json:"fromUserId"`
	ToUserID     string             `bson:"to_user_id" json:"toUserId"`
	FromUserName string             `bson:"from_user_name" json:"fromUserName"`
	ToUserName   string             `bson:"to_user_name" json:"toUserName"`
	Message      string             `bson:"message" json:"message"`
	Status       RequestStatus      `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	IsHidden     bool               `bson:"is_hidden" json:"isHidden"`
}

// ValidateStatus rejects documents carrying a status value this code does not
// know about. Called after every decode from the store.
func (r *MessageRequest) ValidateStatus() error {
	if !r.Status.Valid() {
		return fmt.Errorf("message request %s: unknown status %q", r.ID.Hex(), r.Status)
	}
	return nil
}

// CanTransition checks whether actor may apply the given terminal transition.
// Only the recipient may accept, decline or block, and only while the request
// is still pending. A failed check never mutates the request.
func (r *MessageRequest) CanTransition(actor string, to RequestStatus) error {
	if actor != r.ToUserID {
		return fmt.Errorf("transition to %s: %w", to, ErrUnauthorized)
	}
	if r.Status != RequestPending {
		return fmt.Errorf("transition to %s from %s: %w", to, r.Status, ErrInvalidTransition)
	}
	switch to {
	case RequestAccepted, RequestDeclined, RequestBlocked:
		return nil
	}
	return fmt.Errorf("transition to %s: %w", to, ErrInvalidTransition)
}

// PendingDuplicateOf reports whether r occupies the pending slot for the
// ordered (from, to) pair. Only a pending request occupies the slot; terminal
// requests, blocked ones included, do not — a recipient who blocked a sender
// may still receive a fresh request later. The store-side duplicate filter in
// SendRequest mirrors this rule.
func (r *MessageRequest) PendingDuplicateOf(fromID, toID string) bool {
	return r.FromUserID == fromID && r.ToUserID == toID && r.Status == RequestPending
}

// CanCancel checks whether actor may hard-delete the request. Only the sender
// may cancel, and only while the request is still pending.
func (r *MessageRequest) CanCancel(actor string) error {
	if actor != r.FromUserID {
		return fmt.Errorf("cancel: %w", ErrUnauthorized)
	}
	if r.Status != RequestPending {
		return fmt.Errorf("cancel from %s: %w", r.Status, ErrInvalidTransition)
	}
	return nil
}

// CanSetHidden checks whether actor may toggle inbox visibility. Hiding is a
// recipient-only, reversible flag and is only meaningful while pending.
func (r *MessageRequest) CanSetHidden(actor string) error {
	if actor != r.ToUserID {
		return fmt.Errorf("hide: %w", ErrUnauthorized)
	}
	if r.Status != RequestPending {
		return fmt.Errorf("hide from %s: %w", r.Status, ErrInvalidTransition)
	}
	return nil
}

// BlockRecord is written when a recipient blocks a sender. It does not
// retroactively close other requests from the same sender, and it does not
// gate future requests; it exists for the recipient's blocked list.
type BlockRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          string             `bson:"user_id" json:"userId"`
	BlockedUserID   string             `bson:"blocked_user_id" json:"blockedUserId"`
	BlockedUserName string             `bson:"blocked_user_name" json:"blockedUserName"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}
