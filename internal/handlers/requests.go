package handlers

import (
	"net/http"

	"github.com/skillswaphq/skillswap-backend/internal/models"
	"github.com/skillswaphq/skillswap-backend/internal/services"
)

type SendRequestBody struct {
	ToUserID string `json:"toUserId"`
	Message  string `json:"message"`
}

type RequestActionBody struct {
	RequestID string `json:"requestId"`
	Hidden    bool   `json:"hidden,omitempty"`
}

// SendMessageRequest creates a pending message request to another user.
func SendMessageRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body SendRequestBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.ToUserID == "" || body.Message == "" {
		writeMessage(w, http.StatusBadRequest, false, "toUserId and message are required")
		return
	}
	if len(body.Message) > models.MaxRequestMessageLen {
		writeMessage(w, http.StatusBadRequest, false, "message exceeds 500 characters")
		return
	}

	fromName, err := services.GetUserName(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	toName, err := services.GetUserName(r.Context(), body.ToUserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	req, err := services.SendRequest(r.Context(), userID, fromName, body.ToUserID, toName, body.Message)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"request": req,
	})
}

func listRequestsResponse(w http.ResponseWriter, r *http.Request, reqs []models.MessageRequest, incoming bool) {
	reqs = services.FilterRequests(reqs, r.URL.Query().Get("search"), incoming)
	services.SortRequests(reqs, r.URL.Query().Get("sort"), incoming)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"requests": reqs,
	})
}

// GetIncomingRequests returns visible pending requests addressed to the caller.
func GetIncomingRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	reqs, err := services.ListIncomingRequests(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	listRequestsResponse(w, r, reqs, true)
}

// GetOutgoingRequests returns all requests the caller has sent.
func GetOutgoingRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	reqs, err := services.ListOutgoingRequests(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	listRequestsResponse(w, r, reqs, false)
}

// GetHiddenRequests returns hidden pending requests addressed to the caller.
func GetHiddenRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	reqs, err := services.ListHiddenRequests(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	listRequestsResponse(w, r, reqs, true)
}

// AcceptMessageRequest accepts a pending request and returns the new
// conversation id.
func AcceptMessageRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body RequestActionBody
	if !decodeBody(w, r, &body) {
		return
	}

	convID, err := services.AcceptRequest(r.Context(), body.RequestID, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"conversationId": convID,
	})
}

// DeclineMessageRequest declines a pending request.
func DeclineMessageRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body RequestActionBody
	if !decodeBody(w, r, &body) {
		return
	}

	if err := services.DeclineRequest(r.Context(), body.RequestID, userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "request declined")
}

// BlockMessageRequest blocks the sender of a pending request.
func BlockMessageRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body RequestActionBody
	if !decodeBody(w, r, &body) {
		return
	}

	if err := services.BlockRequest(r.Context(), body.RequestID, userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "user blocked")
}

// HideMessageRequest toggles the caller's inbox visibility for a pending
// request.
func HideMessageRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body RequestActionBody
	if !decodeBody(w, r, &body) {
		return
	}

	if err := services.SetRequestHidden(r.Context(), body.RequestID, userID, body.Hidden); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "request visibility updated")
}

// CancelMessageRequest hard-deletes a pending request the caller sent.
func CancelMessageRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	requestID := r.URL.Query().Get("request_id")
	if requestID == "" {
		writeMessage(w, http.StatusBadRequest, false, "request_id is required")
		return
	}

	if err := services.CancelRequest(r.Context(), requestID, userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "request cancelled")
}

// GetBlockedUsers returns the caller's block records.
func GetBlockedUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	blocks, err := services.ListBlockedUsers(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"blocked": blocks,
	})
}
