package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/nycbookings/api/internal/domain"
	"github.com/nycbookings/api/internal/repository/ports"
	"github.com/nycbookings/api/internal/util"
)

var (
	ErrEmailTaken              = errors.New("user already exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrUnauthenticated         = errors.New("unauthorized")
	ErrUserNotFound            = errors.New("user not found")
	ErrCurrentPasswordMismatch = errors.New("current password is incorrect")
	ErrResetTokenInvalid       = errors.New("invalid or expired reset token")
	ErrResetTokenExpired       = errors.New("reset token has expired")
)

// ResetMailer delivers the password-reset link. Deliberately an interface so
// tests can fake it; only the SMTP mailer implements it in production.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, email, firstName, resetURL string) error
}

type AuthService struct {
	users        ports.UserRepository
	tokens       *util.JWTManager
	mailer       ResetMailer
	frontendBase string
}

func NewAuthService(users ports.UserRepository, tokens *util.JWTManager, mailer ResetMailer, frontendBase string) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer, frontendBase: frontendBase}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     *string
}

// Register creates an unverified account and issues a session token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	if existing, err := s.users.FindByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, "", ErrEmailTaken
	} else if err != nil && !isNotFound(err) {
		return nil, "", err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user, err := s.users.Create(ctx, input.FirstName, input.LastName, input.Email, input.Phone, hash)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a session token. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !util.VerifyPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves a bearer token to a fresh user row. Claims carry
// identity only; profile fields always come from the store.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, ok := s.tokens.Verify(token)
	if !ok {
		return nil, ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           *string
	CurrentPassword string
	NewPassword     string
}

// UpdateProfile replaces profile fields, and the password hash with them when
// a password change is requested, in a single statement.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, input UpdateProfileInput) (*domain.User, error) {
	update := ports.UserProfileUpdate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
	}

	if input.NewPassword != "" {
		current, err := s.users.FindByID(ctx, userID)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		if !util.VerifyPassword(input.CurrentPassword, current.PasswordHash) {
			return nil, ErrCurrentPasswordMismatch
		}
		hash, err := util.HashPassword(input.NewPassword)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &hash
	}

	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ForgotPassword stores a fresh reset token and attempts to mail the reset
// link. It never reveals whether the account exists, and a mail failure is
// logged but not surfaced.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	token, err := util.GenerateResetToken()
	if err != nil {
		return err
	}
	expiry := util.ResetTokenExpiry()

	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	if s.mailer != nil {
		resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendBase, url.QueryEscape(token))
		if err := s.mailer.SendPasswordReset(ctx, user.Email, user.FirstName, resetURL); err != nil {
			log.Printf("forgot password: reset email to %s failed: %v", user.Email, err)
		}
	}
	return nil
}

// ResetPassword consumes a reset token. An expired token keeps its row
// untouched so a later forgot-password call must mint a fresh one.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (*domain.User, error) {
	user, err := s.users.FindByResetToken(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrResetTokenInvalid
		}
		return nil, err
	}

	if !util.IsResetTokenValid(user.ResetTokenExpiry) {
		return nil, ErrResetTokenExpired
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.ResetPassword(ctx, user.ID, hash)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return updated, nil
}
