package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/nycbookings/api/internal/domain"
	"github.com/nycbookings/api/internal/service"
	"github.com/nycbookings/api/internal/util"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		name      string
		header    string
		wantToken string
		wantOK    bool
	}{
		{name: "standard", header: "Bearer abc123", wantToken: "abc123", wantOK: true},
		{name: "case insensitive scheme", header: "bearer abc123", wantToken: "abc123", wantOK: true},
		{name: "missing header", header: "", wantOK: false},
		{name: "wrong scheme", header: "Basic abc123", wantOK: false},
		{name: "scheme only", header: "Bearer", wantOK: false},
		{name: "empty token", header: "Bearer   ", wantOK: false},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			token, ok := bearerToken(c)
			if ok != tc.wantOK {
				t.Fatalf("expected ok=%v, got %v", tc.wantOK, ok)
			}
			if ok && token != tc.wantToken {
				t.Fatalf("expected token %q, got %q", tc.wantToken, token)
			}
		})
	}
}

type failingUserRepo struct {
	*fakeAuthUserRepo
}

func (f *failingUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return nil, errors.New("connection reset by peer")
}

func TestRequireAuthInfrastructureFailure(t *testing.T) {
	repo := newFakeAuthUserRepo()
	user := repo.seed(t, "ada@example.com", "right-password")

	tokens, err := util.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("jwt manager: %v", err)
	}
	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	auth := service.NewAuthService(&failingUserRepo{repo}, tokens, nil, "http://localhost:3000")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAuth(auth)(func(c echo.Context) error {
		t.Fatal("next handler must not run on a lookup failure")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}
}
