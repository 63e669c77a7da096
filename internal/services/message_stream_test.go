package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skillswaphq/skillswap-backend/internal/models"
)

func TestSendMessageRejectsBlankContent(t *testing.T) {
	_, err := SendMessage(context.Background(), "conv-1", "user-a", "Alice", "   ", models.MessageText)
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSendMessageRejectsUnknownType(t *testing.T) {
	_, err := SendMessage(context.Background(), "conv-1", "user-a", "Alice", "hello", models.MessageType("video"))
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEditMessageRejectsBlankContent(t *testing.T) {
	err := EditMessage(context.Background(), primitive.NewObjectID().Hex(), "user-a", "  ")
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSendRequestInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    error
	}{
		{"blank message", "   ", models.ErrInvalidInput},
		{"oversized message", strings.Repeat("a", models.MaxRequestMessageLen+1), models.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SendRequest(context.Background(), "user-a", "Alice", "user-b", "Bob", tt.message)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSendRequestToSelf(t *testing.T) {
	_, err := SendRequest(context.Background(), "user-a", "Alice", "user-a", "Alice", "hi me")
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestMessagePageFilterInitialLoad(t *testing.T) {
	filter := messagePageFilter("conv-1", nil, primitive.NilObjectID)

	if filter["conversation_id"] != "conv-1" {
		t.Fatalf("expected conversation scope, got %v", filter)
	}
	if _, ok := filter["created_at"]; ok {
		t.Fatal("initial load must not carry a cursor")
	}
	if _, ok := filter["$or"]; ok {
		t.Fatal("initial load must not carry a cursor")
	}
}

func TestMessagePageFilterTimestampOnlyCursor(t *testing.T) {
	before := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	filter := messagePageFilter("conv-1", &before, primitive.NilObjectID)

	cursor, ok := filter["created_at"].(bson.M)
	if !ok {
		t.Fatalf("expected created_at range, got %v", filter)
	}
	if cursor["$lt"] != before {
		t.Fatalf("expected exclusive upper bound %v, got %v", before, cursor["$lt"])
	}
}

func TestMessagePageFilterKeysetCursorKeepsBoundaryTies(t *testing.T) {
	// Two messages written in the same millisecond share created_at; only the
	// _id clause lets the second page pick up the remaining one instead of
	// skipping past it.
	before := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	beforeID := primitive.NewObjectID()

	filter := messagePageFilter("conv-1", &before, beforeID)

	or, ok := filter["$or"].([]bson.M)
	if !ok || len(or) != 2 {
		t.Fatalf("expected a two-clause keyset cursor, got %v", filter)
	}

	older, ok := or[0]["created_at"].(bson.M)
	if !ok || older["$lt"] != before {
		t.Fatalf("expected strictly-older clause, got %v", or[0])
	}

	if or[1]["created_at"] != before {
		t.Fatalf("expected tie clause pinned to the boundary timestamp, got %v", or[1])
	}
	tie, ok := or[1]["_id"].(bson.M)
	if !ok || tie["$lt"] != beforeID {
		t.Fatalf("expected tie clause to exclude ids from %v on, got %v", beforeID, or[1])
	}
}
