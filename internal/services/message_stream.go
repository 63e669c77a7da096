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

// EnsureMessagingIndexes configures indexes for the messaging collections.
// Called on startup from main after Mongo has connected.
func EnsureMessagingIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		database.ColMessages: {
			{
				Keys: bson.D{
					{Key: "conversation_id", Value: 1},
					{Key: "created_at", Value: 1},
				},
				Options: options.Index().SetName("idx_conversation_created"),
			},
		},
		database.ColMessageRequests: {
			{
				Keys:    bson.D{{Key: "to_user_id", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("idx_to_status"),
			},
			{
				Keys:    bson.D{{Key: "from_user_id", Value: 1}, {Key: "status", Value: 1}},
				Options: options.Index().SetName("idx_from_status"),
			},
		},
		database.ColConversations: {
			{
				Keys:    bson.D{{Key: "participants", Value: 1}},
				Options: options.Index().SetName("idx_participants"),
			},
		},
		database.ColTypingIndicators: {
			{
				Keys:    bson.D{{Key: "conversation_id", Value: 1}, {Key: "timestamp", Value: -1}},
				Options: options.Index().SetName("idx_conversation_timestamp"),
			},
		},
		database.ColNotifications: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("idx_user_created"),
			},
		},
	}

	for col, ms := range indexes {
		for _, m := range ms {
			if _, err := database.DB.Collection(col).Indexes().CreateOne(ctx, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// SendMessage appends a message to a conversation, bumps the conversation's
// last-message fields, increments the receiver's unread counter ($inc) and
// notifies the receiver. Content length is not capped here, unlike the
// request intro message.
func SendMessage(ctx context.Context, conversationID, senderID, senderName, content string, mtype models.MessageType) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("message content is required: %w", models.ErrInvalidInput)
	}
	if mtype == "" {
		mtype = models.MessageText
	}
	if !mtype.Valid() {
		return nil, fmt.Errorf("unknown message type %q: %w", mtype, models.ErrInvalidInput)
	}

	conv, err := requireParticipant(ctx, conversationID, senderID)
	if err != nil {
		return nil, err
	}
	receiverID := conv.OtherParticipant(senderID)

	msg := models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
		Read:           false,
		Type:           mtype,
		Edited:         false,
		Deleted:        false,
	}

	res, err := database.DB.Collection(database.ColMessages).InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	msg.ID = res.InsertedID.(primitive.ObjectID)

	_, err = database.DB.Collection(database.ColConversations).UpdateOne(ctx,
		bson.M{"_id": conv.ID},
		bson.M{"$set": bson.M{
			"last_message":      content,
			"last_message_time": msg.CreatedAt,
		}},
	)
	if err != nil {
		return nil, err
	}
	if err := AppendUnread(ctx, conversationID, receiverID, 1); err != nil {
		return nil, err
	}

	Notify(receiverID, models.NotificationMessage,
		"New message",
		senderName+" sent you a message",
		map[string]interface{}{"conversationId": conversationID})

	PushMessageToRecentCache(msg)
	PublishChatEvent(ctx, ChatEvent{
		Type:           EventTypeMessageNew,
		ConversationID: conversationID,
		MessageID:      msg.ID.Hex(),
		SenderID:       senderID,
		SenderName:     senderName,
		Content:        content,
		Timestamp:      msg.CreatedAt,
	})

	return &msg, nil
}

// GetMessage loads a message by id.
func GetMessage(ctx context.Context, messageID string) (*models.Message, error) {
	oid, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return nil, fmt.Errorf("message %s: %w", messageID, models.ErrNotFound)
	}

	var msg models.Message
	err = database.DB.Collection(database.ColMessages).FindOne(ctx, bson.M{"_id": oid}).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("message %s: %w", messageID, models.ErrNotFound)
		}
		return nil, err
	}
	return &msg, nil
}

// MarkMessageRead flips the read flag. Receiver only; idempotent.
func MarkMessageRead(ctx context.Context, messageID, actor string) error {
	msg, err := GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if err := msg.CanMarkRead(actor); err != nil {
		return err
	}
	if msg.Read {
		return nil
	}

	_, err = database.DB.Collection(database.ColMessages).UpdateOne(ctx,
		bson.M{"_id": msg.ID},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return err
	}

	InvalidateRecentCache(msg.ConversationID)
	PublishChatEvent(ctx, ChatEvent{
		Type:           EventTypeMessageRead,
		ConversationID: msg.ConversationID,
		MessageID:      messageID,
		SenderID:       actor,
	})
	return nil
}

// MarkConversationRead marks every unread message addressed to actor as read
// and zeroes the unread counter. Invoked when the conversation is opened;
// idempotent.
func MarkConversationRead(ctx context.Context, conversationID, actor string) error {
	if _, err := requireParticipant(ctx, conversationID, actor); err != nil {
		return err
	}

	_, err := database.DB.Collection(database.ColMessages).UpdateMany(ctx,
		bson.M{
			"conversation_id": conversationID,
			"receiver_id":     actor,
			"read":            false,
		},
		bson.M{"$set": bson.M{"read": true}},
	)
	if err != nil {
		return err
	}

	if err := ResetUnread(ctx, conversationID, actor); err != nil {
		return err
	}

	InvalidateRecentCache(conversationID)
	return nil
}

// EditMessage overwrites the content in place and sets edited=true. Sender
// only; deleted messages cannot be edited. Edit history is not retained.
func EditMessage(ctx context.Context, messageID, actor, newContent string) error {
	newContent = strings.TrimSpace(newContent)
	if newContent == "" {
		return fmt.Errorf("message content is required: %w", models.ErrInvalidInput)
	}

	msg, err := GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if err := msg.CanEdit(actor); err != nil {
		return err
	}

	_, err = database.DB.Collection(database.ColMessages).UpdateOne(ctx,
		bson.M{"_id": msg.ID},
		bson.M{"$set": bson.M{"content": newContent, "edited": true}},
	)
	if err != nil {
		return err
	}

	InvalidateRecentCache(msg.ConversationID)
	PublishChatEvent(ctx, ChatEvent{
		Type:           EventTypeMessageEdited,
		ConversationID: msg.ConversationID,
		MessageID:      messageID,
		SenderID:       actor,
		Content:        newContent,
	})
	return nil
}

// SoftDeleteMessage replaces the content with the tombstone text and sets
// deleted=true. The document, its id and its timestamp persist, so the
// message keeps its position in the conversation ordering.
func SoftDeleteMessage(ctx context.Context, messageID, actor string) error {
	msg, err := GetMessage(ctx, messageID)
	if err != nil {
		return err
	}
	if err := msg.CanDelete(actor); err != nil {
		return err
	}

	_, err = database.DB.Collection(database.ColMessages).UpdateOne(ctx,
		bson.M{"_id": msg.ID},
		bson.M{"$set": bson.M{"content": models.DeletedMessageText, "deleted": true}},
	)
	if err != nil {
		return err
	}

	InvalidateRecentCache(msg.ConversationID)
	PublishChatEvent(ctx, ChatEvent{
		Type:           EventTypeMessageDeleted,
		ConversationID: msg.ConversationID,
		MessageID:      messageID,
		SenderID:       actor,
	})
	return nil
}

// messagePageFilter builds the backwards-pagination filter. The cursor is the
// compound sort key (created_at, _id): with created_at alone, messages sharing
// the boundary millisecond with the previous page's last message would be
// skipped.
func messagePageFilter(conversationID string, before *time.Time, beforeID primitive.ObjectID) bson.M {
	filter := bson.M{"conversation_id": conversationID}
	if before == nil {
		return filter
	}

	t := before.UTC()
	if beforeID.IsZero() {
		filter["created_at"] = bson.M{"$lt": t}
		return filter
	}
	filter["$or"] = []bson.M{
		{"created_at": bson.M{"$lt": t}},
		{"created_at": t, "_id": bson.M{"$lt": beforeID}},
	}
	return filter
}

// ListMessages returns a page of messages for a conversation, oldest-first,
// tombstones included. Pagination scrolls backwards: (before, beforeID) is an
// exclusive keyset cursor on the (created_at, _id) sort key, taken from the
// oldest message of the previous page. The initial page is served from the
// Redis recent cache, warmed from Mongo on a miss.
func ListMessages(ctx context.Context, conversationID, actor string, before *time.Time, beforeID primitive.ObjectID, limit int64) ([]models.Message, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if _, err := requireParticipant(ctx, conversationID, actor); err != nil {
		return nil, false, err
	}

	if before == nil {
		if cached, ok := GetRecentMessagesFromCache(ctx, conversationID); ok {
			if msgs, hasMore, served := serveRecentFromCache(cached, limit); served {
				return msgs, hasMore, nil
			}
		}
	}

	filter := messagePageFilter(conversationID, before, beforeID)

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(limit + 1)

	cur, err := database.DB.Collection(database.ColMessages).Find(ctx, filter, opts)
	if err != nil {
		return nil, false, err
	}
	defer cur.Close(ctx)

	var msgs []models.Message
	for cur.Next(ctx) {
		var m models.Message
		if err := cur.Decode(&m); err != nil {
			return nil, false, err
		}
		msgs = append(msgs, m)
	}
	if err := cur.Err(); err != nil {
		return nil, false, err
	}

	hasMore := int64(len(msgs)) > limit
	if hasMore {
		msgs = msgs[:len(msgs)-1]
	}

	// Reverse to oldest-first for the UI.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	// Warm only when the window is authoritative: the complete history, or a
	// full cap-sized page. A shorter page with more behind it would later be
	// served as if it were everything.
	if before == nil && (!hasMore || int64(len(msgs)) >= convRecentMaxLen) {
		WarmRecentCache(ctx, conversationID, msgs)
	}

	return msgs, hasMore, nil
}
