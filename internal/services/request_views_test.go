package services

import (
	"testing"
	"time"

	"github.com/skillswaphq/skillswap-backend/internal/models"
)

func sampleRequests() []models.MessageRequest {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []models.MessageRequest{
		{
			FromUserID: "u1", FromUserName: "Bob",
			ToUserID: "me", ToUserName: "Me",
			Message:   "Want to swap cooking for coding?",
			CreatedAt: base,
		},
		{
			FromUserID: "u2", FromUserName: "Alice",
			ToUserID: "me", ToUserName: "Me",
			Message:   "I can help with Spanish",
			CreatedAt: base.Add(-time.Hour),
		},
		{
			FromUserID: "u3", FromUserName: "Cara",
			ToUserID: "me", ToUserName: "Me",
			Message:   "Guitar lessons?",
			CreatedAt: base.Add(-2 * time.Hour),
		},
	}
}

func TestFilterRequestsIncomingMatchesSenderName(t *testing.T) {
	reqs := sampleRequests()

	got := FilterRequests(reqs, "alice", true)
	if len(got) != 1 || got[0].FromUserName != "Alice" {
		t.Fatalf("expected one request from Alice, got %d", len(got))
	}

	got = FilterRequests(reqs, "spanish", true)
	if len(got) != 1 || got[0].FromUserName != "Alice" {
		t.Fatalf("expected message match on Alice's request, got %d", len(got))
	}

	if got := FilterRequests(reqs, "", true); len(got) != len(reqs) {
		t.Fatalf("empty term should keep everything, got %d", len(got))
	}
}

func TestFilterRequestsOutgoingMatchesRecipientName(t *testing.T) {
	reqs := []models.MessageRequest{
		{FromUserID: "me", FromUserName: "Me", ToUserID: "u1", ToUserName: "Bob", Message: "hey"},
		{FromUserID: "me", FromUserName: "Me", ToUserID: "u2", ToUserName: "Alice", Message: "hi"},
	}

	got := FilterRequests(reqs, "bob", false)
	if len(got) != 1 || got[0].ToUserName != "Bob" {
		t.Fatalf("expected one request to Bob, got %d", len(got))
	}

	// "me" matches the sender name, which is not searched on outgoing lists.
	if got := FilterRequests(reqs, "me", false); len(got) != 0 {
		t.Fatalf("sender name should not match on outgoing lists, got %d", len(got))
	}
}

func TestSortRequestsOldest(t *testing.T) {
	reqs := sampleRequests()
	SortRequests(reqs, ReqSortOldest, true)

	if reqs[0].FromUserName != "Cara" || reqs[2].FromUserName != "Bob" {
		t.Fatalf("unexpected oldest-first order: %s, %s, %s",
			reqs[0].FromUserName, reqs[1].FromUserName, reqs[2].FromUserName)
	}
}

func TestSortRequestsByName(t *testing.T) {
	reqs := sampleRequests()
	SortRequests(reqs, ReqSortName, true)

	if reqs[0].FromUserName != "Alice" || reqs[1].FromUserName != "Bob" || reqs[2].FromUserName != "Cara" {
		t.Fatalf("unexpected name order: %s, %s, %s",
			reqs[0].FromUserName, reqs[1].FromUserName, reqs[2].FromUserName)
	}
}

func TestSortRequestsNewestKeepsStoredOrder(t *testing.T) {
	reqs := sampleRequests()
	SortRequests(reqs, ReqSortNewest, true)

	if reqs[0].FromUserName != "Bob" || reqs[2].FromUserName != "Cara" {
		t.Fatalf("newest should keep stored order, got %s first", reqs[0].FromUserName)
	}
}

func TestBadgeCountsSum(t *testing.T) {
	counts := BadgeCounts{Notifications: 2, Conversations: 3, Requests: 1}
	if got := counts.Sum(); got != 6 {
		t.Fatalf("expected sum 6, got %d", got)
	}

	var zero BadgeCounts
	if got := zero.Sum(); got != 0 {
		t.Fatalf("expected zero sum, got %d", got)
	}
}
