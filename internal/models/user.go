package models

import "time"

// Profile is the public directory view of a user, joined onto conversations
// and requests. Backed by the PostgreSQL users table plus Redis presence.
type Profile struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Rating         float64    `json:"rating"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	IsOnline       bool       `json:"isOnline"`
	LastSeen       *time.Time `json:"lastSeen,omitempty"`
}
