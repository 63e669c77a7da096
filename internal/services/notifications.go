package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswaphq/skillswap-backend/internal/database"
	"github.com/skillswaphq/skillswap-backend/internal/models"
)

// Notify appends a notification for userID. Fire-and-forget: it is called
// after the triggering write has succeeded, and a failed append is logged and
// dropped, never rolled back into the primary transition.
func Notify(userID, ntype, title, message string, data map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n := models.Notification{
		UserID:    userID,
		Type:      ntype,
		Title:     title,
		Message:   message,
		Read:      false,
		CreatedAt: time.Now().UTC(),
		Data:      data,
	}

	if _, err := database.DB.Collection(database.ColNotifications).InsertOne(ctx, n); err != nil {
		log.Printf("notification fan-out failed for user %s (type %s): %v", userID, ntype, err)
	}
}

// ListNotifications returns the user's notifications, newest first.
func ListNotifications(ctx context.Context, userID string, limit int64) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := database.DB.Collection(database.ColNotifications).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Notification
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead sets read=true. Recipient only; idempotent.
func MarkNotificationRead(ctx context.Context, notificationID, actor string) error {
	oid, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return fmt.Errorf("notification %s: %w", notificationID, models.ErrNotFound)
	}

	var n models.Notification
	err = database.DB.Collection(database.ColNotifications).FindOne(ctx, bson.M{"_id": oid}).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return fmt.Errorf("notification %s: %w", notificationID, models.ErrNotFound)
		}
		return err
	}
	if n.UserID != actor {
		return fmt.Errorf("mark notification read: %w", models.ErrUnauthorized)
	}

	_, err = database.DB.Collection(database.ColNotifications).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// MarkAllNotificationsRead marks every unread notification owned by userID.
func MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := database.DB.Collection(database.ColNotifications).UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// BadgeCounts feeds the UI badge aggregator: unread notifications, plus
// conversations holding unread messages, plus visible pending incoming
// requests.
type BadgeCounts struct {
	Notifications int64 `json:"notifications"`
	Conversations int64 `json:"conversations"`
	Requests      int64 `json:"requests"`
	Total         int64 `json:"total"`
}

// Sum fills in Total from the three partial counts.
func (b BadgeCounts) Sum() int64 {
	return b.Notifications + b.Conversations + b.Requests
}

// GetBadgeCounts computes the badge aggregate for a user.
func GetBadgeCounts(ctx context.Context, userID string) (BadgeCounts, error) {
	var counts BadgeCounts

	n, err := database.DB.Collection(database.ColNotifications).CountDocuments(ctx,
		bson.M{"user_id": userID, "read": false})
	if err != nil {
		return counts, err
	}
	counts.Notifications = n

	n, err = database.DB.Collection(database.ColConversations).CountDocuments(ctx, bson.M{
		"participants":           userID,
		"unread_count." + userID: bson.M{"$gt": 0},
	})
	if err != nil {
		return counts, err
	}
	counts.Conversations = n

	n, err = database.DB.Collection(database.ColMessageRequests).CountDocuments(ctx, bson.M{
		"to_user_id": userID,
		"status":     models.RequestPending,
		"is_hidden":  false,
	})
	if err != nil {
		return counts, err
	}
	counts.Requests = n

	counts.Total = counts.Sum()
	return counts, nil
}
