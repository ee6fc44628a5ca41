package ports

import (
	"context"
	"time"

	"github.com/nycbookings/api/internal/domain"
)

type UserProfileUpdate struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
	// PasswordHash, when non-nil, is replaced in the same statement as the
	// profile fields.
	PasswordHash *string
}

type UserRepository interface {
	Create(ctx context.Context, firstName, lastName, email string, phone *string, passwordHash string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByResetToken(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, update UserProfileUpdate) (*domain.User, error)
	SetResetToken(ctx context.Context, id int64, token string, expiry time.Time) error
	// ResetPassword replaces the hash and clears the reset token pair in one
	// statement.
	ResetPassword(ctx context.Context, id int64, passwordHash string) (*domain.User, error)
}
