package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/skillswaphq/skillswap-backend/internal/database"
)

// Realtime event types pushed to conversation subscribers.
const (
	EventTypeMessageNew     = "message_new"
	EventTypeMessageEdited  = "message_edited"
	EventTypeMessageDeleted = "message_deleted"
	EventTypeMessageRead    = "message_read"
	EventTypeTyping         = "typing"
)

// ChatEvent is the payload broadcast over Redis and WebSocket. It is a
// snapshot notification: clients reconcile against the REST endpoints.
type ChatEvent struct {
	Type           string    `json:"type"`
	ConversationID string    `json:"conversation_id,omitempty"`
	MessageID      string    `json:"message_id,omitempty"`
	SenderID       string    `json:"sender_id,omitempty"`
	SenderName     string    `json:"sender_name,omitempty"`
	Content        string    `json:"content,omitempty"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
}

// chatHub fans events out to local WebSocket subscribers per conversation.
// Cross-instance delivery goes through the Redis pattern subscription.
type chatHub struct {
	mu   sync.RWMutex
	subs map[string]map[chan ChatEvent]struct{}
}

var (
	hub          = &chatHub{subs: make(map[string]map[chan ChatEvent]struct{})}
	redisStarted sync.Once
)

// SubscribeConversation registers a local subscriber for a conversation's
// events. The returned function unsubscribes and closes the channel.
func SubscribeConversation(conversationID string) (<-chan ChatEvent, func()) {
	ch := make(chan ChatEvent, 16)

	hub.mu.Lock()
	set, ok := hub.subs[conversationID]
	if !ok {
		set = make(map[chan ChatEvent]struct{})
		hub.subs[conversationID] = set
	}
	set[ch] = struct{}{}
	hub.mu.Unlock()

	unsubscribe := func() {
		hub.mu.Lock()
		if set, ok := hub.subs[conversationID]; ok {
			if _, present := set[ch]; present {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(hub.subs, conversationID)
			}
		}
		hub.mu.Unlock()
	}
	return ch, unsubscribe
}

// FanOutChatEvent delivers an event to all local subscribers of its
// conversation. Slow subscribers are skipped rather than blocked on.
func FanOutChatEvent(event ChatEvent) {
	if event.ConversationID == "" {
		return
	}

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	for ch := range hub.subs[event.ConversationID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// StartRedisChatSubscriber ensures a single shared Redis listener per instance.
func StartRedisChatSubscriber(ctx context.Context) {
	redisStarted.Do(func() {
		go runRedisSubscriber(ctx)
	})
}

func runRedisSubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; chat subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.PSubscribe(ctx, "chat:conversation:*")
			defer pubsub.Close()

			log.Println("✅ Chat Redis subscriber started (pattern: chat:conversation:*)")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("Redis subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event ChatEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal chat event: %v", err)
					continue
				}

				FanOutChatEvent(event)
			}
		}()
	}
}

// PublishChatEvent publishes an event to the conversation's Redis channel.
// Best effort: realtime delivery failures never fail the primary write.
func PublishChatEvent(ctx context.Context, event ChatEvent) {
	if database.RedisClient == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	channel := "chat:conversation:" + event.ConversationID
	if err := database.RedisClient.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("chat event publish failed for conversation %s: %v", event.ConversationID, err)
	}
}
