package handlers

import (
	"net/http"

	"github.com/skillswaphq/skillswap-backend/internal/services"
)

type TypingBody struct {
	ConversationID string `json:"conversationId"`
}

// AnnounceTyping appends a typing indicator for the caller. Clients debounce;
// the server just appends.
func AnnounceTyping(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body TypingBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ConversationID == "" {
		writeMessage(w, http.StatusBadRequest, false, "conversationId is required")
		return
	}

	userName, err := services.GetUserName(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := services.AnnounceTyping(r.Context(), body.ConversationID, userID, userName); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "typing announced")
}

// GetActiveTypers returns who is typing in a conversation right now, from the
// caller's point of view.
func GetActiveTypers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	conversationID := r.URL.Query().Get("conversation_id")
	if conversationID == "" {
		writeMessage(w, http.StatusBadRequest, false, "conversation_id is required")
		return
	}

	typers, err := services.ActiveTypers(r.Context(), conversationID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"typing":  typers,
	})
}
