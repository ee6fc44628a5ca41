package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nycbookings/api/internal/domain"
)

type PropertyViewStatsRepository struct {
	db *sqlx.DB
}

func NewPropertyViewStatsRepo(db *sqlx.DB) *PropertyViewStatsRepository {
	return &PropertyViewStatsRepository{db: db}
}

func (r *PropertyViewStatsRepository) UpsertBuckets(ctx context.Context, buckets []domain.PropertyViewBucket) error {
	if len(buckets) == 0 {
		return nil
	}

	const query = `
        INSERT INTO property_view_stats (
            property_id, range_key, bucket_start, bucket_end,
            total_views, unique_ips, updated_at
        ) VALUES (
            :property_id, :range_key, :bucket_start, :bucket_end,
            :total_views, :unique_ips, :updated_at
        )
        ON CONFLICT (property_id, range_key)
        DO UPDATE SET
            bucket_start = EXCLUDED.bucket_start,
            bucket_end = EXCLUDED.bucket_end,
            total_views = EXCLUDED.total_views,
            unique_ips = EXCLUDED.unique_ips,
            updated_at = EXCLUDED.updated_at
    `
	_, err := r.db.NamedExecContext(ctx, query, buckets)
	return err
}

func (r *PropertyViewStatsRepository) GetStats(ctx context.Context, propertyID string) (map[domain.ViewRange]domain.ViewStatValue, time.Time, error) {
	const query = `
        SELECT property_id, range_key, bucket_start, bucket_end, total_views, unique_ips, updated_at
        FROM property_view_stats
        WHERE property_id = $1
    `
	rows := []domain.PropertyViewBucket{}
	if err := r.db.SelectContext(ctx, &rows, query, propertyID); err != nil {
		return nil, time.Time{}, err
	}

	stats := make(map[domain.ViewRange]domain.ViewStatValue, len(rows))
	var latest time.Time
	for _, row := range rows {
		stats[row.RangeKey] = domain.ViewStatValue{
			TotalViews: row.TotalViews,
			UniqueIPs:  row.UniqueIPs,
			BucketEnd:  row.BucketEnd,
		}
		if row.BucketEnd.After(latest) {
			latest = row.BucketEnd
		}
	}
	return stats, latest, nil
}
