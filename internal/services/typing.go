package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswaphq/skillswap-backend/internal/database"
	"github.com/skillswaphq/skillswap-backend/internal/models"
)

// AnnounceTyping appends a typing indicator for the user. Always a new
// document, never an update in place: the collection is an append-only,
// self-expiring log. Clients debounce to roughly one announcement per
// keystroke burst.
func AnnounceTyping(ctx context.Context, conversationID, userID, userName string) error {
	if _, err := requireParticipant(ctx, conversationID, userID); err != nil {
		return err
	}

	ind := models.TypingIndicator{
		UserID:         userID,
		UserName:       userName,
		ConversationID: conversationID,
		Timestamp:      time.Now().UTC(),
	}

	if _, err := database.DB.Collection(database.ColTypingIndicators).InsertOne(ctx, ind); err != nil {
		return err
	}

	PublishChatEvent(ctx, ChatEvent{
		Type:           EventTypeTyping,
		ConversationID: conversationID,
		SenderID:       userID,
		SenderName:     userName,
		Timestamp:      ind.Timestamp,
	})
	return nil
}

// ActiveTypers returns the users currently typing in a conversation from the
// caller's point of view. Stale and self-authored indicators are filtered
// out; stale documents are never deleted, only ignored.
func ActiveTypers(ctx context.Context, conversationID, selfID string) ([]models.TypingIndicator, error) {
	if _, err := requireParticipant(ctx, conversationID, selfID); err != nil {
		return nil, err
	}

	// Only fetch indicators young enough to possibly be fresh; the precise
	// window check happens in FilterFreshTypers.
	cutoff := time.Now().UTC().Add(-models.TypingFreshWindow)
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cur, err := database.DB.Collection(database.ColTypingIndicators).Find(ctx, bson.M{
		"conversation_id": conversationID,
		"timestamp":       bson.M{"$gte": cutoff},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var indicators []models.TypingIndicator
	if err := cur.All(ctx, &indicators); err != nil {
		return nil, err
	}

	return FilterFreshTypers(indicators, selfID, time.Now().UTC()), nil
}

// FilterFreshTypers keeps at most one fresh indicator per user, excluding
// self. Duplicate and stale records accumulate in the log; this is where they
// are ignored.
func FilterFreshTypers(indicators []models.TypingIndicator, selfID string, now time.Time) []models.TypingIndicator {
	seen := make(map[string]struct{})
	var out []models.TypingIndicator
	for _, ind := range indicators {
		if ind.UserID == selfID || !ind.Fresh(now) {
			continue
		}
		if _, dup := seen[ind.UserID]; dup {
			continue
		}
		seen[ind.UserID] = struct{}{}
		out = append(out, ind)
	}
	return out
}
