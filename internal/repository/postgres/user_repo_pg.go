package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nycbookings/api/internal/domain"
	"github.com/nycbookings/api/internal/repository/ports"
)

const userColumns = `id, first_name, last_name, email, phone, password_hash, role, is_verified, reset_token, reset_token_expiry, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, firstName, lastName, email string, phone *string, passwordHash string) (*domain.User, error) {
	const query = `
        INSERT INTO users (first_name, last_name, email, phone, password_hash, role, is_verified)
        VALUES ($1, $2, $3, $4, $5, 'user', FALSE)
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, firstName, lastName, email, phone, passwordHash)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, token); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, update ports.UserProfileUpdate) (*domain.User, error) {
	const query = `
        UPDATE users
        SET first_name = $2,
            last_name = $3,
            email = $4,
            phone = $5,
            password_hash = COALESCE($6, password_hash),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, id, update.FirstName, update.LastName, update.Email, update.Phone, update.PasswordHash)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id int64, token string, expiry time.Time) error {
	const query = `
        UPDATE users
        SET reset_token = $2,
            reset_token_expiry = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, token, expiry)
	return err
}

func (r *UserRepository) ResetPassword(ctx context.Context, id int64, passwordHash string) (*domain.User, error) {
	const query = `
        UPDATE users
        SET password_hash = $2,
            reset_token = NULL,
            reset_token_expiry = NULL,
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, id, passwordHash)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
