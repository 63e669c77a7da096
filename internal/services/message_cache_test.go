package services

import (
	"testing"

	"github.com/skillswaphq/skillswap-backend/internal/models"
)

func cachedWindow(n int) []models.Message {
	msgs := make([]models.Message, n)
	for i := range msgs {
		msgs[i] = models.Message{ConversationID: "conv-1", Content: "m"}
	}
	return msgs
}

func TestServeRecentFromCacheWindowMustFitLimit(t *testing.T) {
	// A window larger than the requested page cannot be truncated safely;
	// the store query handles that case.
	if _, _, served := serveRecentFromCache(cachedWindow(10), 5); served {
		t.Fatal("oversized window must fall through to the store")
	}
	if _, _, served := serveRecentFromCache(nil, 50); served {
		t.Fatal("empty window is a miss")
	}

	msgs, _, served := serveRecentFromCache(cachedWindow(10), 50)
	if !served || len(msgs) != 10 {
		t.Fatalf("expected the full 10-message window, served=%v len=%d", served, len(msgs))
	}
}

func TestServeRecentFromCacheHasMore(t *testing.T) {
	// A warmed window below the cap is the whole conversation; only a window
	// at the cap may have older history behind it. This holds because pushes
	// never create windows (LPUSHX) and warming stores either the complete
	// history or a cap-sized page.
	_, hasMore, served := serveRecentFromCache(cachedWindow(2), 50)
	if !served || hasMore {
		t.Fatalf("short window is complete history, served=%v hasMore=%v", served, hasMore)
	}

	_, hasMore, served = serveRecentFromCache(cachedWindow(convRecentMaxLen), convRecentMaxLen)
	if !served || !hasMore {
		t.Fatalf("cap-sized window may hide older pages, served=%v hasMore=%v", served, hasMore)
	}
}
