package domain

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a single account row. PasswordHash never leaves the auth service.
// ResetToken and ResetTokenExpiry are either both set or both NULL and are
// cleared together when a reset is consumed.
type User struct {
	ID               int64      `db:"id" json:"id"`
	FirstName        string     `db:"first_name" json:"firstName"`
	LastName         string     `db:"last_name" json:"lastName"`
	Email            string     `db:"email" json:"email"`
	Phone            *string    `db:"phone" json:"phone,omitempty"`
	PasswordHash     string     `db:"password_hash" json:"-"`
	Role             Role       `db:"role" json:"role"`
	IsVerified       bool       `db:"is_verified" json:"isVerified"`
	ResetToken       *string    `db:"reset_token" json:"-"`
	ResetTokenExpiry *time.Time `db:"reset_token_expiry" json:"-"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
