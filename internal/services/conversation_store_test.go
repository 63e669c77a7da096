package services

import (
	"testing"
	"time"

	"github.com/skillswaphq/skillswap-backend/internal/models"
)

func sampleViews() []ConversationView {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []ConversationView{
		{
			ID:              "conv-1",
			LastMessage:     "See you at the library",
			LastMessageTime: base,
			UnreadCount:     0,
			IsPinned:        map[string]bool{"me": false},
			OtherUser:       models.Profile{ID: "u1", Name: "Bob"},
		},
		{
			ID:              "conv-2",
			LastMessage:     "Thanks for the guitar tips!",
			LastMessageTime: base.Add(-time.Hour),
			UnreadCount:     3,
			IsPinned:        map[string]bool{"me": true},
			OtherUser:       models.Profile{ID: "u2", Name: "Alice"},
		},
		{
			ID:              "conv-3",
			LastMessage:     "hola",
			LastMessageTime: base.Add(-2 * time.Hour),
			UnreadCount:     5,
			IsPinned:        map[string]bool{"me": true},
			OtherUser:       models.Profile{ID: "u3", Name: "Cara"},
		},
	}
}

func viewIDs(views []ConversationView) []string {
	ids := make([]string, len(views))
	for i, v := range views {
		ids[i] = v.ID
	}
	return ids
}

func TestFilterConversationsMatchesNameOrLastMessage(t *testing.T) {
	views := sampleViews()

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term keeps everything", "", []string{"conv-1", "conv-2", "conv-3"}},
		{"counterpart name", "alice", []string{"conv-2"}},
		{"last message", "library", []string{"conv-1"}},
		{"case insensitive", "GUITAR", []string{"conv-2"}},
		{"no match", "piano", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := viewIDs(FilterConversations(views, tt.term))
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestSortConversationsPinnedFirstThenUnread(t *testing.T) {
	views := sampleViews()
	SortConversations(views, ConvSortPinned, "me")

	got := viewIDs(views)
	// Pinned first; among pinned, higher unread first; unpinned last.
	want := []string{"conv-3", "conv-2", "conv-1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestSortConversationsByName(t *testing.T) {
	views := sampleViews()
	SortConversations(views, ConvSortName, "me")

	got := viewIDs(views)
	want := []string{"conv-2", "conv-1", "conv-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
}

func TestSortConversationsByUnread(t *testing.T) {
	views := sampleViews()
	SortConversations(views, ConvSortUnread, "me")

	if views[0].ID != "conv-3" || views[1].ID != "conv-2" || views[2].ID != "conv-1" {
		t.Fatalf("unexpected unread order: %v", viewIDs(views))
	}
}

func TestSortConversationsRecentKeepsStoredOrder(t *testing.T) {
	views := sampleViews()
	SortConversations(views, ConvSortRecent, "me")

	got := viewIDs(views)
	want := []string{"conv-1", "conv-2", "conv-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected stored order %v, got %v", want, got)
		}
	}
}
