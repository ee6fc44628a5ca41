package domain

import "time"

type ViewRange string

const (
	ViewRange24h ViewRange = "24h"
	ViewRange7d  ViewRange = "7d"
	ViewRange30d ViewRange = "30d"
)

var ViewRangesOrdered = []ViewRange{ViewRange24h, ViewRange7d, ViewRange30d}

func (r ViewRange) Duration() (time.Duration, bool) {
	switch r {
	case ViewRange24h:
		return 24 * time.Hour, true
	case ViewRange7d:
		return 7 * 24 * time.Hour, true
	case ViewRange30d:
		return 30 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// PropertyViewBucket is one cached aggregation window for one property.
type PropertyViewBucket struct {
	PropertyID  string    `db:"property_id"`
	RangeKey    ViewRange `db:"range_key"`
	BucketStart time.Time `db:"bucket_start"`
	BucketEnd   time.Time `db:"bucket_end"`
	TotalViews  int64     `db:"total_views"`
	UniqueIPs   int       `db:"unique_ips"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type ViewStatValue struct {
	TotalViews int64     `json:"totalViews"`
	UniqueIPs  int       `json:"uniqueVisitors"`
	BucketEnd  time.Time `json:"asOf"`
}

type PropertyViewStats struct {
	PropertyID string                      `json:"propertyId"`
	Title      string                      `json:"title"`
	Ranges     map[ViewRange]ViewStatValue `json:"ranges"`
}
