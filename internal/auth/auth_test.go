package auth

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateAccessToken(42, "user@example.com", "customer", secret)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Expected email user@example.com, got %s", claims.Email)
	}
	if claims.Role != "customer" {
		t.Errorf("Expected role customer, got %s", claims.Role)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "user@example.com", "customer", "secret-a")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	if _, err := ValidateToken(token, "secret-b"); err == nil {
		t.Error("Expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token", "secret"); err == nil {
		t.Error("Expected validation to fail for a malformed token")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	if hash == "hunter22" {
		t.Error("Hash should not equal the plain password")
	}
	if !CheckPassword("hunter22", hash) {
		t.Error("Expected correct password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("Expected wrong password to fail verification")
	}
}
