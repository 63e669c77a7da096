package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skillswaphq/skillswap-backend/internal/models"
)

func TestWriteDomainErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("conversation abc: %w", models.ErrNotFound), http.StatusNotFound},
		{"unauthorized", fmt.Errorf("edit message: %w", models.ErrUnauthorized), http.StatusForbidden},
		{"invalid transition", fmt.Errorf("transition to accepted: %w", models.ErrInvalidTransition), http.StatusConflict},
		{"duplicate pending", fmt.Errorf("request a -> b: %w", models.ErrDuplicatePending), http.StatusConflict},
		{"empty content", fmt.Errorf("message content is required: %w", models.ErrInvalidInput), http.StatusBadRequest},
		{"unknown message type", fmt.Errorf("unknown message type %q: %w", "video", models.ErrInvalidInput), http.StatusBadRequest},
		{"unknown theme", fmt.Errorf("unknown theme %q: %w", "neon", models.ErrInvalidInput), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tt.err)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body["success"])
			}
			if body["message"] != tt.err.Error() {
				t.Fatalf("expected message %q, got %q", tt.err.Error(), body["message"])
			}
		})
	}
}

func TestWriteDomainErrorHidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, errors.New("dial tcp: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["message"] != "internal error" {
		t.Fatalf("internal detail leaked to the client: %q", body["message"])
	}
}
