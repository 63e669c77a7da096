package models

import "testing"

func TestHasParticipant(t *testing.T) {
	conv := &Conversation{Participants: []string{"user-a", "user-b"}}

	if !conv.HasParticipant("user-a") || !conv.HasParticipant("user-b") {
		t.Fatal("expected both members to be participants")
	}
	if conv.HasParticipant("user-c") {
		t.Fatal("expected non-member to be rejected")
	}
}

func TestOtherParticipant(t *testing.T) {
	conv := &Conversation{Participants: []string{"user-a", "user-b"}}

	if got := conv.OtherParticipant("user-a"); got != "user-b" {
		t.Fatalf("expected user-b, got %q", got)
	}
	if got := conv.OtherParticipant("user-b"); got != "user-a" {
		t.Fatalf("expected user-a, got %q", got)
	}
}

func TestValidTheme(t *testing.T) {
	for _, theme := range ConversationThemes {
		if !ValidTheme(theme) {
			t.Fatalf("expected %q to be valid", theme)
		}
	}
	for _, theme := range []string{"", "neon", "Default"} {
		if ValidTheme(theme) {
			t.Fatalf("expected %q to be invalid", theme)
		}
	}
}
