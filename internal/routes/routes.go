package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/skillswaphq/skillswap-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Get("/api/auth/me", handlers.GetMe)

	// Message request routes
	r.Post("/api/requests", handlers.SendMessageRequest)
	r.Get("/api/requests/incoming", handlers.GetIncomingRequests)
	r.Get("/api/requests/outgoing", handlers.GetOutgoingRequests)
	r.Get("/api/requests/hidden", handlers.GetHiddenRequests)
	r.Get("/api/requests/blocked", handlers.GetBlockedUsers)
	r.Post("/api/requests/accept", handlers.AcceptMessageRequest)
	r.Post("/api/requests/decline", handlers.DeclineMessageRequest)
	r.Post("/api/requests/block", handlers.BlockMessageRequest)
	r.Post("/api/requests/hide", handlers.HideMessageRequest)
	r.Delete("/api/requests", handlers.CancelMessageRequest)

	// Conversation routes
	r.Get("/api/conversations", handlers.GetConversations)
	r.Post("/api/conversations/pin", handlers.PinConversation)
	r.Post("/api/conversations/theme", handlers.SetConversationTheme)
	r.Post("/api/conversations/read", handlers.MarkConversationRead)

	// Message routes (MongoDB history + Redis recent-page cache)
	r.Get("/api/messages", handlers.GetMessages)
	r.Post("/api/messages", handlers.SendMessage)
	r.Put("/api/messages", handlers.EditMessage)
	r.Delete("/api/messages", handlers.DeleteMessage)
	r.Post("/api/messages/read", handlers.MarkMessageRead)

	// Typing indicator routes
	r.Post("/api/typing", handlers.AnnounceTyping)
	r.Get("/api/typing", handlers.GetActiveTypers)

	// Notification routes
	r.Get("/api/notifications", handlers.GetNotifications)
	r.Post("/api/notifications/read", handlers.MarkNotificationRead)
	r.Post("/api/notifications/read-all", handlers.MarkAllNotificationsRead)
	r.Get("/api/notifications/badges", handlers.GetBadgeCounts)

	// File upload routes
	r.Post("/api/upload", handlers.UploadFile)

	// WebSocket endpoint for realtime conversation events
	r.Get("/api/ws/chat", handlers.ChatWebSocket)
}
