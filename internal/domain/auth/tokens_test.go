package auth

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "u1", "admin@acme.test", RoleAdmin, "", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseSessionToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "admin@acme.test" || claims.Role != RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Type != "" {
		t.Errorf("admin token should carry no type, got %q", claims.Type)
	}
}

func TestEmployeeTokenCarriesType(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "r1", "e@acme.test", "", TokenTypeEmployee, time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ParseSessionToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.Type != TokenTypeEmployee {
		t.Errorf("type = %q, want %q", claims.Type, TokenTypeEmployee)
	}
}

func TestTokenKindsNotInterchangeable(t *testing.T) {
	session, err := GenerateSessionToken(testSecret, "u1", "a@b.test", RoleAdmin, "", time.Hour)
	if err != nil {
		t.Fatalf("generate session failed: %v", err)
	}
	reset, err := GenerateResetToken(testSecret, "u1", 10*time.Minute)
	if err != nil {
		t.Fatalf("generate reset failed: %v", err)
	}

	if _, err := ParseSessionToken(testSecret, reset); err == nil {
		t.Error("reset token accepted as session token")
	}
	if _, err := ParseResetToken(testSecret, session); err == nil {
		t.Error("session token accepted as reset token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "u1", "a@b.test", RoleAdmin, "", -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseSessionToken(testSecret, token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateSessionToken(testSecret, "u1", "a@b.test", RoleAdmin, "", time.Hour)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := ParseSessionToken("other-secret", token); err == nil {
		t.Error("token with wrong secret accepted")
	}
}

func TestResetTokenBindsUser(t *testing.T) {
	token, err := GenerateResetToken(testSecret, "u42", 10*time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	claims, err := ParseResetToken(testSecret, token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "u42" {
		t.Errorf("userId = %q, want u42", claims.UserID)
	}
	if claims.Purpose != PurposePasswordReset {
		t.Errorf("purpose = %q", claims.Purpose)
	}
}
