package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/skillswaphq/skillswap-backend/internal/database"
	"github.com/skillswaphq/skillswap-backend/internal/models"
)

const (
	convRecentKeyPrefix = "chat:conversation:"
	convRecentKeySuffix = ":recent"
	convRecentMaxLen    = 50
	convRecentTTL       = 1 * time.Hour
)

func convRecentKey(conversationID string) string {
	return convRecentKeyPrefix + conversationID + convRecentKeySuffix
}

// PushMessageToRecentCache adds a message to the Redis recent cache (newest at
// head). Call after saving to Mongo. LPUSHX + LTRIM keeps the last 50: the
// push only lands on a window warmed from Mongo, so a send after an
// invalidation can never create a partial window that hides older history.
func PushMessageToRecentCache(msg models.Message) {
	if database.RedisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	key := convRecentKey(msg.ConversationID)
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	pipe := database.RedisClient.Pipeline()
	pipe.LPushX(ctx, key, data)
	pipe.LTrim(ctx, key, 0, convRecentMaxLen-1)
	pipe.Expire(ctx, key, convRecentTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("message_cache: push failed for conversation %s: %v", msg.ConversationID, err)
	}
}

// GetRecentMessagesFromCache returns the most recent messages for a
// conversation (oldest-first). Only valid for the initial load (no pagination
// cursor). Returns (messages, true) on hit, (nil, false) on miss.
func GetRecentMessagesFromCache(ctx context.Context, conversationID string) ([]models.Message, bool) {
	if database.RedisClient == nil {
		return nil, false
	}

	key := convRecentKey(conversationID)
	raw, err := database.RedisClient.LRange(ctx, key, 0, -1).Result()
	if err != nil || len(raw) == 0 {
		return nil, false
	}

	msgs := make([]models.Message, 0, len(raw))
	for _, item := range raw {
		var m models.Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			return nil, false
		}
		msgs = append(msgs, m)
	}

	// Stored newest-first; reverse to oldest-first for the UI.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	return msgs, true
}

// WarmRecentCache replaces the cached window with messages fetched from Mongo
// (oldest-first in, newest at head in Redis). Called on a cache miss during an
// initial load. The DEL guards against appends racing the warm.
func WarmRecentCache(ctx context.Context, conversationID string, msgs []models.Message) {
	if database.RedisClient == nil || len(msgs) == 0 {
		return
	}

	key := convRecentKey(conversationID)
	pipe := database.RedisClient.Pipeline()
	pipe.Del(ctx, key)
	for i := len(msgs) - 1; i >= 0; i-- {
		data, err := json.Marshal(msgs[i])
		if err != nil {
			continue
		}
		pipe.RPush(ctx, key, data)
	}
	pipe.LTrim(ctx, key, 0, convRecentMaxLen-1)
	pipe.Expire(ctx, key, convRecentTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("message_cache: warm failed for conversation %s: %v", conversationID, err)
	}
}

// InvalidateRecentCache drops the cached window for a conversation. Called
// after in-place mutations (edit, soft delete, read flags) so the cache never
// serves stale content. The next initial load warms it back from Mongo.
func InvalidateRecentCache(conversationID string) {
	if database.RedisClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = database.RedisClient.Del(ctx, convRecentKey(conversationID)).Err()
}

// serveRecentFromCache decides whether a cached window can answer an initial
// history load. The window must fit inside the requested limit; a window at
// the cap may have older history behind it, anything smaller is the complete
// conversation.
func serveRecentFromCache(cached []models.Message, limit int64) ([]models.Message, bool, bool) {
	if len(cached) == 0 || int64(len(cached)) > limit {
		return nil, false, false
	}
	return cached, len(cached) == convRecentMaxLen, true
}
