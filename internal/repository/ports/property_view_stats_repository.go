package ports

import (
	"context"
	"time"

	"github.com/nycbookings/api/internal/domain"
)

type PropertyViewStatsRepository interface {
	UpsertBuckets(ctx context.Context, buckets []domain.PropertyViewBucket) error
	// GetStats returns the cached ranges for one property plus the most
	// recent bucket end, used to decide staleness.
	GetStats(ctx context.Context, propertyID string) (map[domain.ViewRange]domain.ViewStatValue, time.Time, error)
}
