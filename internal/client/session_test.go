package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/nycbookings/api/internal/domain"
)

func newTestStore(t *testing.T) *FileTokenStore {
	t.Helper()
	return NewFileTokenStoreAt(filepath.Join(t.TempDir(), "token"))
}

func TestSessionRestoreNoToken(t *testing.T) {
	session := NewSession(New("http://unused.invalid"), newTestStore(t))

	if state := session.State(); state != StateLoading {
		t.Fatalf("expected fresh session to be loading, got %v", state)
	}
	if err := session.Restore(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state := session.State(); state != StateAnonymous {
		t.Fatalf("expected anonymous after restore, got %v", state)
	}
}

func TestSessionRestoreValidToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/me" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer stored-token" {
			t.Fatalf("unexpected auth header %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user": domain.User{ID: 7, Email: "ada@example.com"},
		})
	}))
	defer server.Close()

	store := newTestStore(t)
	if err := store.Save("stored-token"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	session := NewSession(New(server.URL), store)

	if err := session.Restore(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state := session.State(); state != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", state)
	}
	if user := session.User(); user == nil || user.ID != 7 {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestSessionRestoreRejectedTokenIsCleared(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
	}))
	defer server.Close()

	store := newTestStore(t)
	if err := store.Save("stale-token"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	session := NewSession(New(server.URL), store)

	if err := session.Restore(context.Background()); err != nil {
		t.Fatalf("expected a rejected token to restore cleanly, got %v", err)
	}
	if state := session.State(); state != StateAnonymous {
		t.Fatalf("expected anonymous after rejection, got %v", state)
	}
	if token, _ := store.Load(); token != "" {
		t.Fatalf("expected stored token to be cleared, got %q", token)
	}
}

func TestSessionRestoreServerTroubleKeepsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := newTestStore(t)
	if err := store.Save("good-token"); err != nil {
		t.Fatalf("save token: %v", err)
	}
	session := NewSession(New(server.URL), store)

	if err := session.Restore(context.Background()); err == nil {
		t.Fatal("expected an error for a failing server")
	}
	if token, _ := store.Load(); token != "good-token" {
		t.Fatalf("expected token to survive a transient failure, got %q", token)
	}
}

func TestSessionLoginAndLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user":  domain.User{ID: 3, Email: "ada@example.com"},
			"token": "fresh-token",
		})
	}))
	defer server.Close()

	store := newTestStore(t)
	session := NewSession(New(server.URL), store)

	user, err := session.Login(context.Background(), "ada@example.com", "secret123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != 3 {
		t.Fatalf("unexpected user: %+v", user)
	}
	if token, _ := store.Load(); token != "fresh-token" {
		t.Fatalf("expected token to be persisted, got %q", token)
	}
	if state := session.State(); state != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", state)
	}

	if err := session.Logout(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state := session.State(); state != StateAnonymous {
		t.Fatalf("expected anonymous after logout, got %v", state)
	}
	if token, _ := store.Load(); token != "" {
		t.Fatalf("expected token to be cleared on logout, got %q", token)
	}
}
