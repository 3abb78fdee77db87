package authUtils

import "testing"

func TestVerificationTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateVerificationToken("user-123")
	if err != nil {
		t.Fatalf("GenerateVerificationToken error: %v", err)
	}

	userID, err := ParseVerificationToken(token)
	if err != nil {
		t.Fatalf("ParseVerificationToken error: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("userID = %q, want %q", userID, "user-123")
	}
}

func TestParseVerificationTokenRejectsSessionToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	// A session token lacks the verify_email purpose claim.
	token, err := GenerateAndSetToken("user-123")
	if err != nil {
		t.Fatalf("GenerateAndSetToken error: %v", err)
	}

	if _, err := ParseVerificationToken(token); err == nil {
		t.Fatal("session token accepted as verification token")
	}
}

func TestParseVerificationTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := ParseVerificationToken("not-a-token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestTokenRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := GenerateAndSetToken("user-123"); err == nil {
		t.Fatal("token generated without JWT_SECRET")
	}
}
