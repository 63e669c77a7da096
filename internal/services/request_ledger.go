package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswaphq/skillswap-backend/internal/database"
	"github.com/skillswaphq/skillswap-backend/internal/models"
)

// GetMessageRequest loads a request by id and validates its status field.
func GetMessageRequest(ctx context.Context, requestID string) (*models.MessageRequest, error) {
	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", requestID, models.ErrNotFound)
	}

	var req models.MessageRequest
	err = database.DB.Collection(database.ColMessageRequests).FindOne(ctx, bson.M{"_id": oid}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("request %s: %w", requestID, models.ErrNotFound)
		}
		return nil, err
	}
	if err := req.ValidateStatus(); err != nil {
		return nil, err
	}
	return &req, nil
}

// SendRequest creates a pending message request from one user to another and
// notifies the recipient. Fails with ErrDuplicatePending when a pending
// request for the ordered (from, to) pair already exists. The existence check
// is a pre-write read; a concurrent duplicate-creation race is an accepted
// limitation of the baseline contract.
//
// Note: a BlockRecord from an earlier block does not gate new requests; the
// recipient can decline or block again.
func SendRequest(ctx context.Context, fromID, fromName, toID, toName, message string) (*models.MessageRequest, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("request message is required: %w", models.ErrInvalidInput)
	}
	if len(message) > models.MaxRequestMessageLen {
		return nil, fmt.Errorf("request message exceeds %d characters: %w",
			models.MaxRequestMessageLen, models.ErrInvalidInput)
	}
	if fromID == toID {
		return nil, fmt.Errorf("send request to self: %w", models.ErrUnauthorized)
	}

	col := database.DB.Collection(database.ColMessageRequests)

	// Store-side form of MessageRequest.PendingDuplicateOf: only a pending
	// request occupies the ordered-pair slot.
	count, err := col.CountDocuments(ctx, bson.M{
		"from_user_id": fromID,
		"to_user_id":   toID,
		"status":       models.RequestPending,
	})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("request %s -> %s: %w", fromID, toID, models.ErrDuplicatePending)
	}

	req := models.MessageRequest{
		FromUserID:   fromID,
		ToUserID:     toID,
		FromUserName: fromName,
		ToUserName:   toName,
		Message:      message,
		Status:       models.RequestPending,
		CreatedAt:    time.Now().UTC(),
		IsHidden:     false,
	}

	res, err := col.InsertOne(ctx, req)
	if err != nil {
		return nil, err
	}
	req.ID = res.InsertedID.(primitive.ObjectID)

	Notify(toID, models.NotificationMessageRequest,
		"New message request",
		fromName+" wants to message you",
		map[string]interface{}{
			"fromUserId":     fromID,
			"fromUserName":   fromName,
			"requestMessage": message,
		})

	return &req, nil
}

// transitionRequest applies a terminal transition with a conditional update so
// two racing recipients cannot both win: the filter pins status=pending and a
// zero-modified result is reported as an invalid transition.
func transitionRequest(ctx context.Context, req *models.MessageRequest, actor string, to models.RequestStatus) error {
	if err := req.CanTransition(actor, to); err != nil {
		return err
	}

	res, err := database.DB.Collection(database.ColMessageRequests).UpdateOne(ctx,
		bson.M{"_id": req.ID, "status": models.RequestPending},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return fmt.Errorf("transition to %s: request no longer pending: %w", to, models.ErrInvalidTransition)
	}
	req.Status = to
	return nil
}

// AcceptRequest transitions a pending request to accepted and materializes the
// conversation: both unread counters at zero, both pin flags false, default
// theme, a seed message from the recipient, and a notification back to the
// sender. Returns the new conversation id.
//
// The four writes are independent network calls, not one transaction. A crash
// mid-path leaves a request marked accepted without its conversation; each
// step's error surfaces to the caller and no compensation runs (at-least-once
// baseline).
func AcceptRequest(ctx context.Context, requestID, actor string) (string, error) {
	req, err := GetMessageRequest(ctx, requestID)
	if err != nil {
		return "", err
	}
	if err := transitionRequest(ctx, req, actor, models.RequestAccepted); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	conv := models.Conversation{
		Participants:    []string{req.FromUserID, req.ToUserID},
		LastMessage:     "",
		LastMessageTime: now,
		UnreadCount: map[string]int{
			req.FromUserID: 0,
			req.ToUserID:   0,
		},
		IsPinned: map[string]bool{
			req.FromUserID: false,
			req.ToUserID:   false,
		},
		Theme:     models.DefaultTheme,
		CreatedAt: now,
	}

	res, err := database.DB.Collection(database.ColConversations).InsertOne(ctx, conv)
	if err != nil {
		return "", err
	}
	convID := res.InsertedID.(primitive.ObjectID)

	// Seed message from the recipient. Written directly: it neither bumps the
	// unread counter nor produces a "message" notification.
	seed := models.Message{
		ConversationID: convID.Hex(),
		SenderID:       req.ToUserID,
		ReceiverID:     req.FromUserID,
		Content:        fmt.Sprintf("Hi %s! I accepted your message request. Let's connect!", req.FromUserName),
		CreatedAt:      time.Now().UTC(),
		Read:           false,
		Type:           models.MessageText,
		Edited:         false,
		Deleted:        false,
	}
	if _, err := database.DB.Collection(database.ColMessages).InsertOne(ctx, seed); err != nil {
		return "", err
	}

	Notify(req.FromUserID, models.NotificationMessageAccepted,
		"Message request accepted!",
		req.ToUserName+" accepted your message request",
		map[string]interface{}{"conversationId": convID.Hex()})

	return convID.Hex(), nil
}

// DeclineRequest transitions a pending request to declined. No conversation
// is created and the sender is not notified.
func DeclineRequest(ctx context.Context, requestID, actor string) error {
	req, err := GetMessageRequest(ctx, requestID)
	if err != nil {
		return err
	}
	return transitionRequest(ctx, req, actor, models.RequestDeclined)
}

// BlockRequest transitions a pending request to blocked and records the block
// for the recipient's blocked list. Other requests from the same sender are
// not touched.
func BlockRequest(ctx context.Context, requestID, actor string) error {
	req, err := GetMessageRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err := transitionRequest(ctx, req, actor, models.RequestBlocked); err != nil {
		return err
	}

	block := models.BlockRecord{
		UserID:          actor,
		BlockedUserID:   req.FromUserID,
		BlockedUserName: req.FromUserName,
		CreatedAt:       time.Now().UTC(),
	}
	_, err = database.DB.Collection(database.ColBlockedUsers).InsertOne(ctx, block)
	return err
}

// CancelRequest hard-deletes a pending request. Sender only; no tombstone.
func CancelRequest(ctx context.Context, requestID, actor string) error {
	req, err := GetMessageRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err := req.CanCancel(actor); err != nil {
		return err
	}

	res, err := database.DB.Collection(database.ColMessageRequests).DeleteOne(ctx, bson.M{
		"_id":    req.ID,
		"status": models.RequestPending,
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("cancel: request no longer pending: %w", models.ErrInvalidTransition)
	}
	return nil
}

// SetRequestHidden toggles the recipient's inbox visibility flag without
// changing status. Reversible; only meaningful while pending.
func SetRequestHidden(ctx context.Context, requestID, actor string, hidden bool) error {
	req, err := GetMessageRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if err := req.CanSetHidden(actor); err != nil {
		return err
	}

	_, err = database.DB.Collection(database.ColMessageRequests).UpdateOne(ctx,
		bson.M{"_id": req.ID},
		bson.M{"$set": bson.M{"is_hidden": hidden}},
	)
	return err
}

func listRequests(ctx context.Context, filter bson.M) ([]models.MessageRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := database.DB.Collection(database.ColMessageRequests).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.MessageRequest
	for cur.Next(ctx) {
		var req models.MessageRequest
		if err := cur.Decode(&req); err != nil {
			return nil, err
		}
		if err := req.ValidateStatus(); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, cur.Err()
}

// ListIncomingRequests returns visible pending requests addressed to userID,
// newest first.
func ListIncomingRequests(ctx context.Context, userID string) ([]models.MessageRequest, error) {
	return listRequests(ctx, bson.M{
		"to_user_id": userID,
		"status":     models.RequestPending,
		"is_hidden":  false,
	})
}

// ListHiddenRequests returns hidden pending requests addressed to userID.
func ListHiddenRequests(ctx context.Context, userID string) ([]models.MessageRequest, error) {
	return listRequests(ctx, bson.M{
		"to_user_id": userID,
		"status":     models.RequestPending,
		"is_hidden":  true,
	})
}

// ListOutgoingRequests returns all requests sent by userID regardless of
// status, newest first.
func ListOutgoingRequests(ctx context.Context, userID string) ([]models.MessageRequest, error) {
	return listRequests(ctx, bson.M{"from_user_id": userID})
}

// ListBlockedUsers returns the block records created by userID.
func ListBlockedUsers(ctx context.Context, userID string) ([]models.BlockRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := database.DB.Collection(database.ColBlockedUsers).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.BlockRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
