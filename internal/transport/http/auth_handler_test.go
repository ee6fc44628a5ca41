package http

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/nycbookings/api/internal/domain"
	"github.com/nycbookings/api/internal/repository/ports"
	"github.com/nycbookings/api/internal/service"
	"github.com/nycbookings/api/internal/util"
)

type fakeAuthUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newFakeAuthUserRepo() *fakeAuthUserRepo {
	return &fakeAuthUserRepo{byEmail: map[string]*domain.User{}, nextID: 1}
}

func (f *fakeAuthUserRepo) seed(t *testing.T, email, password string) *domain.User {
	t.Helper()
	hash, err := util.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &domain.User{
		ID:           f.nextID,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	f.nextID++
	f.byEmail[email] = user
	return user
}

func (f *fakeAuthUserRepo) Create(ctx context.Context, firstName, lastName, email string, phone *string, passwordHash string) (*domain.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	user := &domain.User{
		ID:           f.nextID,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
	}
	f.nextID++
	f.byEmail[email] = user
	return user, nil
}

func (f *fakeAuthUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeAuthUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthUserRepo) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	for _, user := range f.byEmail {
		if user.ResetToken != nil && *user.ResetToken == token {
			return user, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthUserRepo) UpdateProfile(ctx context.Context, id int64, update ports.UserProfileUpdate) (*domain.User, error) {
	user, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.FirstName = update.FirstName
	user.LastName = update.LastName
	user.Email = update.Email
	user.Phone = update.Phone
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	return user, nil
}

func (f *fakeAuthUserRepo) SetResetToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	user, err := f.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	return nil
}

func (f *fakeAuthUserRepo) ResetPassword(ctx context.Context, id int64, passwordHash string) (*domain.User, error) {
	user, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = passwordHash
	user.ResetToken = nil
	user.ResetTokenExpiry = nil
	return user, nil
}

func newAuthHandlerForTests(t *testing.T, repo ports.UserRepository) *AuthHandler {
	t.Helper()
	tokens, err := util.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("jwt manager: %v", err)
	}
	return &AuthHandler{auth: service.NewAuthService(repo, tokens, nil, "http://localhost:3000")}
}

func invokeAuth(t *testing.T, handler echo.HandlerFunc, body string, user *domain.User) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(contextUserKey, user)
	}
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	repo := newFakeAuthUserRepo()
	repo.seed(t, "ada@example.com", "original-pass")
	handler := newAuthHandlerForTests(t, repo)

	rec := invokeAuth(t, handler.register,
		`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","password":"secret1"}`, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "User already exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := newFakeAuthUserRepo()
	repo.seed(t, "ada@example.com", "right-password")
	handler := newAuthHandlerForTests(t, repo)

	unknown := invokeAuth(t, handler.login,
		`{"email":"nobody@example.com","password":"whatever1"}`, nil)
	wrongPass := invokeAuth(t, handler.login,
		`{"email":"ada@example.com","password":"wrong-password"}`, nil)

	if unknown.Code != http.StatusUnauthorized || wrongPass.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknown.Code, wrongPass.Code)
	}
	if unknown.Body.String() != wrongPass.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", unknown.Body.String(), wrongPass.Body.String())
	}
}

func TestForgotPasswordHidesAccountExistence(t *testing.T) {
	repo := newFakeAuthUserRepo()
	repo.seed(t, "ada@example.com", "right-password")
	handler := newAuthHandlerForTests(t, repo)

	existing := invokeAuth(t, handler.forgotPassword, `{"email":"ada@example.com"}`, nil)
	missing := invokeAuth(t, handler.forgotPassword, `{"email":"nobody@example.com"}`, nil)

	if existing.Code != http.StatusOK || missing.Code != http.StatusOK {
		t.Fatalf("expected 200/200, got %d/%d", existing.Code, missing.Code)
	}
	if existing.Body.String() != missing.Body.String() {
		t.Fatalf("bodies differ: %q vs %q", existing.Body.String(), missing.Body.String())
	}
}

func TestUpdateProfilePasswordChangeNeedsCurrentPassword(t *testing.T) {
	repo := newFakeAuthUserRepo()
	user := repo.seed(t, "ada@example.com", "right-password")
	handler := newAuthHandlerForTests(t, repo)

	rec := invokeAuth(t, handler.updateProfile,
		`{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","newPassword":"fresh-pass"}`, user)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if !util.VerifyPassword("right-password", user.PasswordHash) {
		t.Fatal("password hash changed despite the rejected request")
	}
}

func TestMeOmitsPasswordHash(t *testing.T) {
	repo := newFakeAuthUserRepo()
	user := repo.seed(t, "ada@example.com", "right-password")
	handler := newAuthHandlerForTests(t, repo)

	rec := invokeAuth(t, handler.me, "", user)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if strings.Contains(body, "passwordHash") || strings.Contains(body, user.PasswordHash) {
		t.Fatalf("response leaks credentials: %s", body)
	}
	if !strings.Contains(body, `"email":"ada@example.com"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}
