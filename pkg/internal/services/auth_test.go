package services

import (
	"testing"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")

	token, err := IssueSessionToken(alice)
	if err != nil {
		t.Fatalf("unable to issue token: %v", err)
	}

	id, err := ParseSessionToken(token)
	if err != nil {
		t.Fatalf("unable to parse token: %v", err)
	}
	if id != alice.ID {
		t.Errorf("token subject = %d, want %d", id, alice.ID)
	}
}

func TestParseSessionTokenRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not.a.token", "eyJhbGciOiJIUzI1NiJ9.e30.forged"} {
		if _, err := ParseSessionToken(raw); err == nil {
			t.Errorf("token %q should be rejected", raw)
		}
	}
}

func TestGetSessionAccount(t *testing.T) {
	testDatabase(t)

	alice := testAccount(t, "alice")

	account, err := GetSessionAccount(alice.ID)
	if err != nil {
		t.Fatalf("unable to resolve session account: %v", err)
	}
	if account.Name != "alice" {
		t.Errorf("resolved %q, want alice", account.Name)
	}

	if _, err := GetSessionAccount(9999); err == nil {
		t.Error("an unknown id should not resolve")
	}

	// Invalidation is tag based and safe to call even when nothing is cached.
	InvalidateSessionAccount(alice.ID)
}
