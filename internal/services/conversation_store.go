package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillswaphq/skillswap-backend/internal/database"
	"github.com/skillswaphq/skillswap-backend/internal/models"
)

// GetConversation loads a conversation by id.
func GetConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, models.ErrNotFound)
	}

	var conv models.Conversation
	err = database.DB.Collection(database.ColConversations).FindOne(ctx, bson.M{"_id": oid}).Decode(&conv)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("conversation %s: %w", conversationID, models.ErrNotFound)
		}
		return nil, err
	}
	return &conv, nil
}

// requireParticipant loads a conversation and checks membership.
func requireParticipant(ctx context.Context, conversationID, userID string) (*models.Conversation, error) {
	conv, err := GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, fmt.Errorf("conversation %s: %w", conversationID, models.ErrUnauthorized)
	}
	return conv, nil
}

// AppendUnread increments the per-user unread counter by delta. The counter is
// mutated with a field-level $inc, never a read-modify-write, so concurrent
// sends from both participants cannot lose updates.
func AppendUnread(ctx context.Context, conversationID, forUserID string, delta int) error {
	oid, err := primitive.ObjectIDFromHex(conversationID)
	if err != nil {
		return fmt.Errorf("conversation %s: %w", conversationID, models.ErrNotFound)
	}

	_, err = database.DB.Collection(database.ColConversations).UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$inc": bson.M{"unread_count." + forUserID: delta}},
	)
	return err
}

// ResetUnread zeroes the per-user counter. Called when the user opens the
// conversation; idempotent under repeated calls.
func ResetUnread(ctx context.Context, conversationID, forUserID string) error {
	conv, err := requireParticipant(ctx, conversationID, forUserID)
	if err != nil {
		return err
	}

	_, err = database.DB.Collection(database.ColConversations).UpdateOne(ctx,
		bson.M{"_id": conv.ID},
		bson.M{"$set": bson.M{"unread_count." + forUserID: 0}},
	)
	return err
}

// TogglePin flips the caller's pin flag. The other participant's flag is
// untouched.
func TogglePin(ctx context.Context, conversationID, forUserID string) (bool, error) {
	conv, err := requireParticipant(ctx, conversationID, forUserID)
	if err != nil {
		return false, err
	}

	pinned := !conv.IsPinned[forUserID]
	_, err = database.DB.Collection(database.ColConversations).UpdateOne(ctx,
		bson.M{"_id": conv.ID},
		bson.M{"$set": bson.M{"is_pinned." + forUserID: pinned}},
	)
	if err != nil {
		return false, err
	}
	return pinned, nil
}

// SetTheme updates the shared conversation theme. Last writer wins; visible to
// both participants.
func SetTheme(ctx context.Context, conversationID, actor, theme string) error {
	conv, err := requireParticipant(ctx, conversationID, actor)
	if err != nil {
		return err
	}
	if !models.ValidTheme(theme) {
		return fmt.Errorf("unknown theme %q: %w", theme, models.ErrInvalidInput)
	}

	_, err = database.DB.Collection(database.ColConversations).UpdateOne(ctx,
		bson.M{"_id": conv.ID},
		bson.M{"$set": bson.M{"theme": theme}},
	)
	return err
}

// ConversationView is a conversation joined with the counterpart's directory
// profile, shaped for the conversation list.
type ConversationView struct {
	ID              string          `json:"id"`
	Participants    []string        `json:"participants"`
	LastMessage     string          `json:"lastMessage"`
	LastMessageTime time.Time       `json:"lastMessageTime"`
	UnreadCount     int             `json:"unreadCount"`
	IsPinned        map[string]bool `json:"isPinned"`
	Theme           string          `json:"theme"`
	OtherUser       models.Profile  `json:"otherUser"`
}

// ListConversationsForUser returns the user's conversations ordered by
// lastMessageTime descending, each joined with the counterpart's profile via
// the directory. A counterpart missing from the directory yields a placeholder
// profile rather than dropping the conversation.
func ListConversationsForUser(ctx context.Context, userID string) ([]ConversationView, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_message_time", Value: -1}})

	cur, err := database.DB.Collection(database.ColConversations).Find(ctx,
		bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var views []ConversationView
	for cur.Next(ctx) {
		var conv models.Conversation
		if err := cur.Decode(&conv); err != nil {
			return nil, err
		}

		otherID := conv.OtherParticipant(userID)
		profile, err := GetProfile(ctx, otherID)
		if err != nil {
			profile = &models.Profile{ID: otherID, Name: "Unknown"}
		}

		theme := conv.Theme
		if theme == "" {
			theme = models.DefaultTheme
		}
		pins := conv.IsPinned
		if pins == nil {
			pins = map[string]bool{}
		}

		views = append(views, ConversationView{
			ID:              conv.ID.Hex(),
			Participants:    conv.Participants,
			LastMessage:     conv.LastMessage,
			LastMessageTime: conv.LastMessageTime,
			UnreadCount:     conv.UnreadCount[userID],
			IsPinned:        pins,
			Theme:           theme,
			OtherUser:       *profile,
		})
	}
	return views, cur.Err()
}

// Conversation list sort modes. "recent" is the stored order
// (lastMessageTime descending); the rest are consumer-side view transforms.
const (
	ConvSortRecent = "recent"
	ConvSortName   = "name"
	ConvSortUnread = "unread"
	ConvSortPinned = "pinned"
)

// FilterConversations narrows views to those whose counterpart name or last
// message contains the search term (case-insensitive). An empty term keeps
// everything.
func FilterConversations(views []ConversationView, searchTerm string) []ConversationView {
	searchTerm = strings.ToLower(strings.TrimSpace(searchTerm))
	if searchTerm == "" {
		return views
	}

	var out []ConversationView
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.OtherUser.Name), searchTerm) ||
			strings.Contains(strings.ToLower(v.LastMessage), searchTerm) {
			out = append(out, v)
		}
	}
	return out
}

// SortConversations reorders views in place per the requested mode.
// "pinned" puts the caller's pinned conversations first and breaks ties by
// unread count descending.
func SortConversations(views []ConversationView, mode, selfID string) {
	switch mode {
	case ConvSortName:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].OtherUser.Name < views[j].OtherUser.Name
		})
	case ConvSortUnread:
		sort.SliceStable(views, func(i, j int) bool {
			return views[i].UnreadCount > views[j].UnreadCount
		})
	case ConvSortPinned:
		sort.SliceStable(views, func(i, j int) bool {
			iPinned := views[i].IsPinned[selfID]
			jPinned := views[j].IsPinned[selfID]
			if iPinned != jPinned {
				return iPinned
			}
			return views[i].UnreadCount > views[j].UnreadCount
		})
	default:
		// recent: keep stored order
	}
}
