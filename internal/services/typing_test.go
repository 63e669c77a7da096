package services

import (
	"testing"
	"time"

	"github.com/skillswaphq/skillswap-backend/internal/models"
)

func TestFilterFreshTypersExcludesSelfAndStale(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	indicators := []models.TypingIndicator{
		{UserID: "user-b", UserName: "Bob", Timestamp: now.Add(-time.Second)},
		{UserID: "user-a", UserName: "Alice", Timestamp: now.Add(-time.Second)},
		{UserID: "user-c", UserName: "Cara", Timestamp: now.Add(-5 * time.Second)},
	}

	got := FilterFreshTypers(indicators, "user-a", now)
	if len(got) != 1 {
		t.Fatalf("expected 1 fresh typer, got %d", len(got))
	}
	if got[0].UserID != "user-b" {
		t.Fatalf("expected user-b, got %q", got[0].UserID)
	}
}

func TestFilterFreshTypersWindowBoundary(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		age   time.Duration
		fresh bool
	}{
		{"just written", 0, true},
		{"just inside window", models.TypingFreshWindow - time.Millisecond, true},
		{"exactly at window", models.TypingFreshWindow, false},
		{"past window", models.TypingFreshWindow + time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			indicators := []models.TypingIndicator{
				{UserID: "user-b", Timestamp: now.Add(-tt.age)},
			}
			got := FilterFreshTypers(indicators, "user-a", now)
			if fresh := len(got) == 1; fresh != tt.fresh {
				t.Fatalf("age %v: expected fresh=%v, got %v", tt.age, tt.fresh, fresh)
			}
		})
	}
}

func TestFilterFreshTypersDeduplicatesPerUser(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Newest-first, as fetched from the store. Only the first record per user
	// should survive.
	indicators := []models.TypingIndicator{
		{UserID: "user-b", Timestamp: now.Add(-100 * time.Millisecond)},
		{UserID: "user-b", Timestamp: now.Add(-800 * time.Millisecond)},
		{UserID: "user-c", Timestamp: now.Add(-200 * time.Millisecond)},
		{UserID: "user-b", Timestamp: now.Add(-1500 * time.Millisecond)},
	}

	got := FilterFreshTypers(indicators, "user-a", now)
	if len(got) != 2 {
		t.Fatalf("expected 2 typers after dedup, got %d", len(got))
	}
	if got[0].UserID != "user-b" || got[1].UserID != "user-c" {
		t.Fatalf("unexpected typer order: %q, %q", got[0].UserID, got[1].UserID)
	}
	if got[0].Timestamp != now.Add(-100*time.Millisecond) {
		t.Fatal("expected the newest indicator to win per user")
	}
}
