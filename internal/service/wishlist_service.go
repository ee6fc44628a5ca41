package service

import (
	"context"
	"errors"

	"github.com/nycbookings/api/internal/domain"
	"github.com/nycbookings/api/internal/repository/ports"
)

var ErrWishlistDuplicate = errors.New("property already in wishlist")

type WishlistService struct {
	wishlist ports.WishlistRepository
}

func NewWishlistService(wishlistRepo ports.WishlistRepository) *WishlistService {
	return &WishlistService{wishlist: wishlistRepo}
}

func (s *WishlistService) List(ctx context.Context, userID int64) ([]domain.WishlistItem, error) {
	return s.wishlist.ListByUser(ctx, userID)
}

func (s *WishlistService) Add(ctx context.Context, userID int64, propertyID string) (*domain.WishlistItem, error) {
	exists, err := s.wishlist.Exists(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrWishlistDuplicate
	}

	item, err := s.wishlist.Add(ctx, userID, propertyID)
	if err != nil {
		// The existence check races with concurrent adds; the DB constraint
		// settles it.
		if isUniqueViolation(err) {
			return nil, ErrWishlistDuplicate
		}
		return nil, err
	}
	return item, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID int64, propertyID string) (int64, error) {
	return s.wishlist.Remove(ctx, userID, propertyID)
}
