package jwt

import (
	"testing"
	"time"
)

func TestSignParseRoundtrip(t *testing.T) {
	token, err := Sign("user-42", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("UserID = %q, want user-42", claims.UserID)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, err := Sign("user-42", -time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := Parse(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) accepted", bad)
		}
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := Sign("user-42", time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	SetSecret("a-completely-different-secret")
	defer SetSecret(defaultSecret)

	if _, err := Parse(token); err == nil {
		t.Error("token signed with the old secret accepted")
	}
}
