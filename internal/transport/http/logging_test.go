package http

import (
	"strings"
	"testing"
)

func TestSanitizeBodyRedactsCredentials(t *testing.T) {
	body := []byte(`{"email":"a@example.com","password":"hunter2","nested":{"resetToken":"abc"}}`)

	result := sanitizeBody(body, "application/json")
	m, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected a map, got %T", result)
	}
	if m["email"] != "a@example.com" {
		t.Fatalf("expected email to pass through, got %v", m["email"])
	}
	if m["password"] != "redacted" {
		t.Fatalf("expected password to be redacted, got %v", m["password"])
	}
	nested, ok := m["nested"].(map[string]any)
	if !ok || nested["resetToken"] != "redacted" {
		t.Fatalf("expected nested token to be redacted, got %v", m["nested"])
	}
}

func TestSanitizeBodyFormEncoded(t *testing.T) {
	body := []byte("email=a%40example.com&password=hunter2")

	result := sanitizeBody(body, "application/x-www-form-urlencoded")
	m, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected a map, got %T", result)
	}
	if m["password"] != "redacted" {
		t.Fatalf("expected password to be redacted, got %v", m["password"])
	}
}

func TestSanitizeBodyBinary(t *testing.T) {
	if got := sanitizeBody([]byte{0xff, 0x00, 0x01}, "application/octet-stream"); got != "binary" {
		t.Fatalf("expected binary marker, got %v", got)
	}
}

func TestSanitizeBodyClampsLongText(t *testing.T) {
	long := strings.Repeat("a", maxLoggedBody+100)
	got, ok := sanitizeBody([]byte(long), "text/plain").(string)
	if !ok {
		t.Fatalf("expected a string")
	}
	if !strings.HasSuffix(got, "...(truncated)") {
		t.Fatal("expected long body to be truncated")
	}
}

func TestSanitizeBodyEmpty(t *testing.T) {
	if got := sanitizeBody(nil, "application/json"); got != nil {
		t.Fatalf("expected nil for empty body, got %v", got)
	}
}
