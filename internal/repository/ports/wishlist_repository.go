package ports

import (
	"context"

	"github.com/nycbookings/api/internal/domain"
)

type WishlistRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.WishlistItem, error)
	Exists(ctx context.Context, userID int64, propertyID string) (bool, error)
	Add(ctx context.Context, userID int64, propertyID string) (*domain.WishlistItem, error)
	// Remove returns the number of rows deleted; removing an absent entry is
	// not an error.
	Remove(ctx context.Context, userID int64, propertyID string) (int64, error)
}
