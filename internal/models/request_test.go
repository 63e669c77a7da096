package models

import (
	"errors"
	"testing"
)

func pendingRequest() *MessageRequest {
	return &MessageRequest{
		FromUserID:   "user-a",
		ToUserID:     "user-b",
		FromUserName: "Alice",
		ToUserName:   "Bob",
		Message:      "Hi! I'd love to trade guitar lessons for Spanish practice.",
		Status:       RequestPending,
	}
}

func TestCanTransitionRecipientOnly(t *testing.T) {
	for _, to := range []RequestStatus{RequestAccepted, RequestDeclined, RequestBlocked} {
		req := pendingRequest()
		if err := req.CanTransition("user-b", to); err != nil {
			t.Fatalf("recipient transition to %s: %v", to, err)
		}
	}

	tests := []struct {
		name  string
		actor string
	}{
		{"sender", "user-a"},
		{"stranger", "user-c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := pendingRequest()
			err := req.CanTransition(tt.actor, RequestAccepted)
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestCanTransitionPendingOnly(t *testing.T) {
	for _, from := range []RequestStatus{RequestAccepted, RequestDeclined, RequestBlocked} {
		req := pendingRequest()
		req.Status = from
		for _, to := range []RequestStatus{RequestAccepted, RequestDeclined, RequestBlocked} {
			err := req.CanTransition("user-b", to)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("transition %s -> %s: expected ErrInvalidTransition, got %v", from, to, err)
			}
		}
	}
}

func TestCanTransitionRejectsNonTerminalTarget(t *testing.T) {
	req := pendingRequest()
	for _, to := range []RequestStatus{RequestPending, RequestStatus("archived")} {
		err := req.CanTransition("user-b", to)
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("transition to %s: expected ErrInvalidTransition, got %v", to, err)
		}
	}
}

func TestCanCancel(t *testing.T) {
	req := pendingRequest()
	if err := req.CanCancel("user-a"); err != nil {
		t.Fatalf("sender cancel while pending: %v", err)
	}

	if err := req.CanCancel("user-b"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("recipient cancel: expected ErrUnauthorized, got %v", err)
	}

	req.Status = RequestAccepted
	if err := req.CanCancel("user-a"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel after accept: expected ErrInvalidTransition, got %v", err)
	}
}

func TestCanSetHidden(t *testing.T) {
	req := pendingRequest()
	if err := req.CanSetHidden("user-b"); err != nil {
		t.Fatalf("recipient hide while pending: %v", err)
	}

	if err := req.CanSetHidden("user-a"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("sender hide: expected ErrUnauthorized, got %v", err)
	}

	req.Status = RequestDeclined
	if err := req.CanSetHidden("user-b"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("hide after decline: expected ErrInvalidTransition, got %v", err)
	}
}

func TestPendingDuplicateOf(t *testing.T) {
	req := pendingRequest()
	if !req.PendingDuplicateOf("user-a", "user-b") {
		t.Fatal("pending request should occupy the ordered-pair slot")
	}
	if req.PendingDuplicateOf("user-b", "user-a") {
		t.Fatal("the reverse pair must have its own slot")
	}
	if req.PendingDuplicateOf("user-a", "user-c") {
		t.Fatal("a different recipient must have its own slot")
	}
}

func TestBlockDoesNotGateFutureRequests(t *testing.T) {
	// A terminal request frees the ordered-pair slot. In particular a blocked
	// request does not stop the same sender from opening a fresh one; the
	// recipient just gets to decline or block again.
	for _, status := range []RequestStatus{RequestAccepted, RequestDeclined, RequestBlocked} {
		req := pendingRequest()
		req.Status = status
		if req.PendingDuplicateOf("user-a", "user-b") {
			t.Fatalf("%s request should not occupy the pending slot", status)
		}
	}
}

func TestValidateStatusRejectsUnknownValue(t *testing.T) {
	req := pendingRequest()
	if err := req.ValidateStatus(); err != nil {
		t.Fatalf("valid status rejected: %v", err)
	}

	req.Status = RequestStatus("ghosted")
	if err := req.ValidateStatus(); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
