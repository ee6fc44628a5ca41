package ports

import (
	"context"

	"github.com/nycbookings/api/internal/domain"
)

type PropertyRepository interface {
	// ListActive applies the public search filters over active rows only.
	ListActive(ctx context.Context, filter domain.PropertyFilter, limit, offset int) ([]domain.Property, int64, error)
	FindActiveByID(ctx context.Context, id string) (*domain.Property, error)

	// Admin surface: operates on all rows regardless of isActive.
	ListAll(ctx context.Context, search string, limit, offset int) ([]domain.Property, int64, error)
	FindByID(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
	ReplaceReviews(ctx context.Context, id string, reviews domain.Reviews, rating float64, reviewCount int) (*domain.Property, error)
	ListActiveIDs(ctx context.Context) ([]string, error)
}
