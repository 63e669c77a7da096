package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/skillswaphq/skillswap-backend/internal/database"
	"github.com/skillswaphq/skillswap-backend/internal/models"
)

const (
	// PresenceKeyPrefix is the Redis key prefix for online presence.
	PresenceKeyPrefix = "presence:"
	// PresenceTTL is how long a presence key lives without a refresh.
	// WebSocket pings refresh it; after disconnect it simply expires.
	PresenceTTL = 60 * time.Second
)

// GetProfile resolves a user id to its public directory profile, including
// Redis-backed online status and the last_seen fallback.
func GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	var picture sql.NullString
	var lastSeen sql.NullTime

	err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT id, username, name, email, rating, profile_picture, last_seen
		FROM users WHERE id = $1 AND is_active = TRUE
	`, userID).Scan(&p.ID, &p.Username, &p.Name, &p.Email, &p.Rating, &picture, &lastSeen)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
		}
		return nil, err
	}

	if picture.Valid {
		p.ProfilePicture = picture.String
	}
	if lastSeen.Valid {
		t := lastSeen.Time
		p.LastSeen = &t
	}
	p.IsOnline = IsUserOnline(ctx, userID)

	return &p, nil
}

// GetUserName retrieves the display name for a user id.
func GetUserName(ctx context.Context, userID string) (string, error) {
	var name string
	err := database.PostgresDB.QueryRowContext(ctx, `
		SELECT name FROM users WHERE id = $1 AND is_active = TRUE
	`, userID).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("user %s: %w", userID, models.ErrNotFound)
		}
		return "", err
	}
	return name, nil
}

// SetUserPresence marks a user online for PresenceTTL and records last_seen.
func SetUserPresence(ctx context.Context, userID string) {
	if database.RedisClient == nil {
		return
	}
	_ = database.RedisClient.Set(ctx, PresenceKeyPrefix+userID, "online", PresenceTTL).Err()
	_, _ = database.PostgresDB.ExecContext(ctx, `UPDATE users SET last_seen = NOW() WHERE id = $1`, userID)
}

// IsUserOnline reports whether the user's presence key is still alive.
func IsUserOnline(ctx context.Context, userID string) bool {
	if database.RedisClient == nil {
		return false
	}
	n, err := database.RedisClient.Exists(ctx, PresenceKeyPrefix+userID).Result()
	return err == nil && n > 0
}
