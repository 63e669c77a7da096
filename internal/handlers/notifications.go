package handlers

import (
	"net/http"
	"strconv"

	"github.com/skillswaphq/skillswap-backend/internal/services"
)

type NotificationActionBody struct {
	NotificationID string `json:"notificationId"`
}

// GetNotifications returns the caller's notifications, newest first.
func GetNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit := int64(50)
	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if parsed, err := strconv.ParseInt(lStr, 10, 64); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	notifications, err := services.ListNotifications(r.Context(), userID, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"notifications": notifications,
	})
}

// MarkNotificationRead marks one notification read.
func MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body NotificationActionBody
	if !decodeBody(w, r, &body) {
		return
	}
	if body.NotificationID == "" {
		writeMessage(w, http.StatusBadRequest, false, "notificationId is required")
		return
	}

	if err := services.MarkNotificationRead(r.Context(), body.NotificationID, userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "notification marked read")
}

// MarkAllNotificationsRead marks every unread notification the caller owns.
func MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := services.MarkAllNotificationsRead(r.Context(), userID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, true, "all notifications marked read")
}

// GetBadgeCounts returns the UI badge aggregate: unread notifications,
// conversations with unread messages, and visible pending incoming requests.
func GetBadgeCounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	counts, err := services.GetBadgeCounts(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"badges":  counts,
	})
}
