package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/skillswaphq/skillswap-backend/internal/models"
	"github.com/skillswaphq/skillswap-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": success,
		"message": message,
	})
}

// writeDomainError maps the messaging core's error taxonomy onto HTTP
// statuses. Anything outside the taxonomy is treated as an internal error and
// logged; the client sees a generic message.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeMessage(w, http.StatusNotFound, false, err.Error())
	case errors.Is(err, models.ErrUnauthorized):
		writeMessage(w, http.StatusForbidden, false, err.Error())
	case errors.Is(err, models.ErrInvalidTransition), errors.Is(err, models.ErrDuplicatePending):
		writeMessage(w, http.StatusConflict, false, err.Error())
	case errors.Is(err, models.ErrInvalidInput):
		writeMessage(w, http.StatusBadRequest, false, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeMessage(w, http.StatusInternalServerError, false, "internal error")
	}
}

func extractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// authedUser resolves the caller from the session token. Falls back to the
// `token` query parameter for browser WebSocket clients.
func authedUser(r *http.Request) (uuid.UUID, bool) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		return uuid.Nil, false
	}

	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		return uuid.Nil, false
	}
	return userID, true
}

// requireUser writes a 401 and returns false when the request carries no
// valid session.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := authedUser(r)
	if !ok {
		writeMessage(w, http.StatusUnauthorized, false, "missing or invalid session token")
		return "", false
	}
	return userID.String(), true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "invalid request body")
		return false
	}
	return true
}
