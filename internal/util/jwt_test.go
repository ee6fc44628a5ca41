package util

import (
	"testing"
	"time"

	"github.com/nycbookings/api/internal/domain"
)

func TestJWTManagerIssueAndVerify(t *testing.T) {
	manager, err := NewJWTManager("top-secret", time.Minute)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}

	user := &domain.User{ID: 42, Email: "user@example.com", Role: domain.RoleAdmin}
	token, err := manager.Issue(user)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token to be non-empty")
	}

	claims, ok := manager.Verify(token)
	if !ok {
		t.Fatalf("expected token to verify")
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("expected email claim, got %q", claims.Email)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role claim admin, got %q", claims.Role)
	}
}

func TestJWTManagerVerifyExpiredToken(t *testing.T) {
	manager, err := NewJWTManager("secret", time.Millisecond)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}
	token, err := manager.Issue(&domain.User{ID: 1, Email: "user@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	time.Sleep(2 * time.Millisecond)

	if _, ok := manager.Verify(token); ok {
		t.Fatalf("expected expired token to fail verification")
	}
}

func TestJWTManagerVerifyGarbage(t *testing.T) {
	manager, err := NewJWTManager("secret", time.Minute)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, ok := manager.Verify(token); ok {
			t.Fatalf("expected %q to fail verification", token)
		}
	}
}

func TestJWTManagerForeignSignature(t *testing.T) {
	issuer, err := NewJWTManager("secret-a", time.Minute)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}
	verifier, err := NewJWTManager("secret-b", time.Minute)
	if err != nil {
		t.Fatalf("NewJWTManager returned error: %v", err)
	}
	token, err := issuer.Issue(&domain.User{ID: 7, Email: "user@example.com", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, ok := verifier.Verify(token); ok {
		t.Fatalf("expected token signed with another secret to fail")
	}
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
