package handlers

import (
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswaphq/skillswap-backend/internal/models"
	"github.com/skillswaphq/skillswap-backend/internal/services"
)

type SendMessageBody struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
	Type           string `json:"type,omitempty"`
}

type MessageActionBody struct {
	MessageID string `json:"messageId"`
	Content   string `json:"content,omitempty"`
}

// GetMessages loads paginated history for a conversation, oldest-first,
// tombstones included.
// Query params:
//
//	conversation_id (required)
//	before          (optional RFC3339 timestamp for pagination)
//	before_id       (optional message id breaking same-millisecond ties,
//	                 taken from the oldest message of the previous page)
//	limit           (optional, default 50)
func GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	conversationID := r.URL.Query().Get("conversation_id")
	if conversationID == "" {
		writeMessage(w, http.StatusBadRequest, false, "conversation_id is required")
		return
	}

	limit := int64(50)
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if parsed, err := strconv.ParseInt(lStr, 10, 64); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	var before *time.Time
	if bStr := r.URL.Query().Get("before"); bStr != "" {
		if t, err := time.Parse(time.RFC3339, bStr); err == nil {
			before = &t
		}
	}
	var beforeID primitive.ObjectID
	if idStr := r.URL.Query().Get("before_id"); idStr != "" {
		if oid, err := primitive.ObjectIDFromHex(idStr); err == nil {
			beforeID = oid
		}
	}

	msgs, hasMore, err := services.ListMessages(r.Context(), conversationID, userID, before, beforeID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": msgs,
		"has_more": hasMore,
	})
}

// SendMessage appends a message to a conversation the caller participates in.
func SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body SendMessageBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ConversationID == "" || body.Content == "" {
		writeMessage(w, http.StatusBadRequest, false, "conversationId and content are required")
		return
	}

	senderName, err := services.GetUserName(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	msg, err := services.SendMessage(r.Context(), body.ConversationID, userID, senderName,
		body.Content, models.MessageType(body.Type))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": msg,
	})
}

// EditMessage overwrites a message's content in place.
func EditMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body MessageActionBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.MessageID == "" || body.Content == "" {
		writeMessage(w, http.StatusBadRequest, false, "messageId and content are required")
		return
	}

	if err := services.EditMessage(r.Context(), body.MessageID, userID, body.Content); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "message edited")
}

// DeleteMessage tombstones a message the caller sent.
func DeleteMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	messageID := r.URL.Query().Get("message_id")
	if messageID == "" {
		writeMessage(w, http.StatusBadRequest, false, "message_id is required")
		return
	}

	if err := services.SoftDeleteMessage(r.Context(), messageID, userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "message deleted")
}

// MarkMessageRead flips a single message's read flag.
func MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body MessageActionBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.MessageID == "" {
		writeMessage(w, http.StatusBadRequest, false, "messageId is required")
		return
	}

	if err := services.MarkMessageRead(r.Context(), body.MessageID, userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "message marked read")
}
