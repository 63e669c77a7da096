package handlers

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/skillswaphq/skillswap-backend/internal/database"
	"github.com/skillswaphq/skillswap-backend/internal/services"
	"github.com/skillswaphq/skillswap-backend/pkg/utils"
)

type SignupRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Token   string                 `json:"token,omitempty"`
	User    map[string]interface{} `json:"user,omitempty"`
}

// Signup creates a directory entry and opens a session.
func Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Username == "" || req.Name == "" || req.Email == "" {
		writeMessage(w, http.StatusBadRequest, false, "username, name and email are required")
		return
	}
	if len(req.Password) < 8 {
		writeMessage(w, http.StatusBadRequest, false, "password must be at least 8 characters")
		return
	}

	var exists bool
	err := database.PostgresDB.QueryRowContext(r.Context(), `
		SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(username) = $1 OR email = $2)
	`, req.Username, req.Email).Scan(&exists)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if exists {
		writeMessage(w, http.StatusConflict, false, "username or email already taken")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var userID uuid.UUID
	err = database.PostgresDB.QueryRowContext(r.Context(), `
		INSERT INTO users (username, name, email, password_hash)
		VALUES ($1, $2, $3, $4) RETURNING id
	`, req.Username, req.Name, req.Email, hash).Scan(&userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: "account created",
		Token:   token,
		User: map[string]interface{}{
			"id":       userID.String(),
			"username": req.Username,
			"name":     req.Name,
		},
	})
}

// Signin verifies credentials and opens a session.
func Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, false, "username and password are required")
		return
	}

	var userID uuid.UUID
	var name, hash string
	err := database.PostgresDB.QueryRowContext(r.Context(), `
		SELECT id, name, password_hash FROM users
		WHERE (LOWER(username) = $1 OR email = $1) AND is_active = TRUE
	`, req.Username).Scan(&userID, &name, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			writeMessage(w, http.StatusUnauthorized, false, "invalid credentials")
			return
		}
		writeDomainError(w, err)
		return
	}

	ok, err := utils.VerifyPassword(req.Password, hash)
	if err != nil || !ok {
		writeMessage(w, http.StatusUnauthorized, false, "invalid credentials")
		return
	}

	token, err := services.CreateSession(userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: "signed in",
		Token:   token,
		User: map[string]interface{}{
			"id":       userID.String(),
			"username": req.Username,
			"name":     name,
		},
	})
}

// GetMe returns the caller's directory profile.
func GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := services.GetProfile(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    profile,
	})
}
