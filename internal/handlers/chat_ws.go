package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skillswaphq/skillswap-backend/internal/models"
	"github.com/skillswaphq/skillswap-backend/internal/services"
)

var chatUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// ChatClientMessage represents messages coming from the frontend over WebSocket.
type ChatClientMessage struct {
	Type           string `json:"type"` // "message", "typing", "read", "ping"
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content,omitempty"`
	MessageID      string `json:"message_id,omitempty"`
}

// ChatWebSocket handles real-time conversation updates over WebSocket.
// Authentication uses the existing session token (Authorization: Bearer <token>
// or the `token` query parameter). Each connection is bound to a single
// conversation via the `conversation_id` query parameter.
func ChatWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(r)
	if !ok {
		http.Error(w, "missing or invalid session token", http.StatusUnauthorized)
		return
	}
	uid := userID.String()

	conversationID := r.URL.Query().Get("conversation_id")
	if conversationID == "" {
		http.Error(w, "conversation_id is required", http.StatusBadRequest)
		return
	}

	conv, err := services.GetConversation(r.Context(), conversationID)
	if err != nil {
		http.Error(w, "conversation not found", http.StatusNotFound)
		return
	}
	if !conv.HasParticipant(uid) {
		http.Error(w, "you are not a participant of this conversation", http.StatusForbidden)
		return
	}

	userName, _ := services.GetUserName(r.Context(), uid)

	conn, err := chatUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Mark user as online
	services.SetUserPresence(ctx, uid)

	// Subscribe to local events for this conversation (fed by Redis subscriber)
	eventsCh, unsubscribe := services.SubscribeConversation(conversationID)
	defer unsubscribe()

	// Writer goroutine: forward events from the hub to this connection
	go func() {
		for evt := range eventsCh {
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		}
	}()

	// Reader loop: handle client messages
	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// On disconnect, rely on TTL-based presence expiry
			return
		}

		var msg ChatClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "message":
			handleIncomingChatMessage(ctx, conn, conversationID, uid, userName, msg)
		case "typing":
			_ = services.AnnounceTyping(ctx, conversationID, uid, userName)
		case "read":
			if msg.MessageID != "" {
				_ = services.MarkMessageRead(ctx, msg.MessageID, uid)
			} else {
				_ = services.MarkConversationRead(ctx, conversationID, uid)
			}
		case "ping":
			// Refresh presence TTL
			services.SetUserPresence(ctx, uid)
		default:
			// Ignore unknown types
		}
	}
}

// handleIncomingChatMessage validates, persists to MongoDB, publishes via Redis,
// and sends an acknowledgement back to the sender.
func handleIncomingChatMessage(
	ctx context.Context,
	conn *websocket.Conn,
	conversationID, userID, userName string,
	msg ChatClientMessage,
) {
	content := strings.TrimSpace(msg.Content)
	if content == "" {
		return
	}

	saved, err := services.SendMessage(ctx, conversationID, userID, userName, content, models.MessageText)
	if err != nil {
		_ = conn.WriteJSON(services.ChatEvent{
			Type:           "error",
			ConversationID: conversationID,
			Content:        "failed to send message",
			Timestamp:      time.Now().UTC(),
		})
		return
	}

	// Acknowledge to the sender; other participants receive the event
	// through the conversation subscription.
	_ = conn.WriteJSON(services.ChatEvent{
		Type:           "message_ack",
		ConversationID: conversationID,
		MessageID:      saved.ID.Hex(),
		SenderID:       userID,
		Content:        saved.Content,
		Timestamp:      saved.CreatedAt,
	})
}
