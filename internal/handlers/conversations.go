package handlers

import (
	"net/http"

	"github.com/skillswaphq/skillswap-backend/internal/services"
)

type ConversationActionBody struct {
	ConversationID string `json:"conversationId"`
	Theme          string `json:"theme,omitempty"`
}

// GetConversations returns the caller's conversations joined with the
// counterpart's directory profile. Stored order is lastMessageTime
// descending; `search` and `sort` query params apply view transforms.
func GetConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	views, err := services.ListConversationsForUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	views = services.FilterConversations(views, r.URL.Query().Get("search"))
	services.SortConversations(views, r.URL.Query().Get("sort"), userID)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"conversations": views,
	})
}

// PinConversation flips the caller's pin flag.
func PinConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body ConversationActionBody
	if !decodeBody(w, r, &body) {
		return
	}

	pinned, err := services.TogglePin(r.Context(), body.ConversationID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"pinned":  pinned,
	})
}

// SetConversationTheme updates the shared theme (last writer wins).
func SetConversationTheme(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body ConversationActionBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Theme == "" {
		writeMessage(w, http.StatusBadRequest, false, "theme is required")
		return
	}

	if err := services.SetTheme(r.Context(), body.ConversationID, userID, body.Theme); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "theme updated")
}

// MarkConversationRead marks everything addressed to the caller as read and
// zeroes the unread counter. Called when the conversation is opened.
func MarkConversationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body ConversationActionBody
	if !decodeBody(w, r, &body) {
		return
	}

	if err := services.MarkConversationRead(r.Context(), body.ConversationID, userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "conversation marked read")
}
