package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/nycbookings/api/internal/domain"
)

type WishlistRepository struct {
	db *sqlx.DB
}

func NewWishlistRepo(db *sqlx.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) ListByUser(ctx context.Context, userID int64) ([]domain.WishlistItem, error) {
	const query = `
        SELECT id, user_id, property_id, created_at
        FROM wishlist
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	items := []domain.WishlistItem{}
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *WishlistRepository) Exists(ctx context.Context, userID int64, propertyID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM wishlist WHERE user_id = $1 AND property_id = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, userID, propertyID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *WishlistRepository) Add(ctx context.Context, userID int64, propertyID string) (*domain.WishlistItem, error) {
	const query = `
        INSERT INTO wishlist (user_id, property_id)
        VALUES ($1, $2)
        RETURNING id, user_id, property_id, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, userID, propertyID)
	var item domain.WishlistItem
	if err := row.StructScan(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *WishlistRepository) Remove(ctx context.Context, userID int64, propertyID string) (int64, error) {
	const query = `DELETE FROM wishlist WHERE user_id = $1 AND property_id = $2`
	result, err := r.db.ExecContext(ctx, query, userID, propertyID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
