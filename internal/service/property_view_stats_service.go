package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/nycbookings/api/internal/domain"
	"github.com/nycbookings/api/internal/repository/ports"
)

var ErrViewStatsUnavailable = errors.New("property view stats unavailable")

type PropertyViewStatsConfig struct {
	LogIndex       string
	CacheTTL       time.Duration
	RequestTimeout time.Duration
}

// PropertyViewStatsService aggregates page views for property detail requests
// from the request-log index, caching results in Postgres so the admin
// dashboard survives an Elasticsearch outage.
type PropertyViewStatsService struct {
	repo           ports.PropertyViewStatsRepository
	properties     ports.PropertyRepository
	es             *elasticsearch.Client
	logIndex       string
	cacheTTL       time.Duration
	requestTimeout time.Duration
}

func NewPropertyViewStatsService(repo ports.PropertyViewStatsRepository, propertyRepo ports.PropertyRepository, es *elasticsearch.Client, cfg PropertyViewStatsConfig) *PropertyViewStatsService {
	return &PropertyViewStatsService{
		repo:           repo,
		properties:     propertyRepo,
		es:             es,
		logIndex:       cfg.LogIndex,
		cacheTTL:       cfg.CacheTTL,
		requestTimeout: cfg.RequestTimeout,
	}
}

func (s *PropertyViewStatsService) Enabled() bool {
	return s != nil && s.es != nil
}

func (s *PropertyViewStatsService) GetViewStats(ctx context.Context, property *domain.Property, forceRefresh bool) (domain.PropertyViewStats, error) {
	stats, latest, err := s.repo.GetStats(ctx, property.ID)
	if err != nil {
		return domain.PropertyViewStats{}, err
	}

	if forceRefresh || s.isStale(latest) || len(stats) == 0 {
		if err := s.refresh(ctx, property.ID); err != nil {
			if len(stats) == 0 {
				return domain.PropertyViewStats{}, err
			}
			log.Printf("view stats: refresh for %s failed, serving cache: %v", property.ID, err)
		} else {
			stats, _, err = s.repo.GetStats(ctx, property.ID)
			if err != nil {
				return domain.PropertyViewStats{}, err
			}
		}
	}

	result := domain.PropertyViewStats{
		PropertyID: property.ID,
		Title:      property.Title,
		Ranges:     make(map[domain.ViewRange]domain.ViewStatValue, len(domain.ViewRangesOrdered)),
	}
	for _, key := range domain.ViewRangesOrdered {
		if value, ok := stats[key]; ok {
			result.Ranges[key] = value
			continue
		}
		result.Ranges[key] = domain.ViewStatValue{BucketEnd: latest}
	}
	return result, nil
}

func (s *PropertyViewStatsService) refresh(ctx context.Context, propertyID string) error {
	if s.es == nil {
		return fmt.Errorf("%w: elasticsearch client not configured", ErrViewStatsUnavailable)
	}

	now := time.Now().UTC()
	buckets := make([]domain.PropertyViewBucket, 0, len(domain.ViewRangesOrdered))
	for _, rangeKey := range domain.ViewRangesOrdered {
		value, err := s.fetchRange(ctx, propertyID, rangeKey, now)
		if err != nil {
			return err
		}
		duration, _ := rangeKey.Duration()
		buckets = append(buckets, domain.PropertyViewBucket{
			PropertyID:  propertyID,
			RangeKey:    rangeKey,
			BucketStart: now.Add(-duration),
			BucketEnd:   now,
			TotalViews:  value.TotalViews,
			UniqueIPs:   value.UniqueIPs,
			UpdatedAt:   now,
		})
	}
	return s.repo.UpsertBuckets(ctx, buckets)
}

func (s *PropertyViewStatsService) fetchRange(ctx context.Context, propertyID string, rangeKey domain.ViewRange, now time.Time) (domain.ViewStatValue, error) {
	duration, ok := rangeKey.Duration()
	if !ok {
		return domain.ViewStatValue{}, fmt.Errorf("unknown view range %q", rangeKey)
	}

	body := map[string]any{
		"size": 0,
		"query": map[string]any{
			"bool": map[string]any{
				"must": []map[string]any{
					{"term": map[string]any{"request.method.keyword": "GET"}},
					{"term": map[string]any{"response.status": 200}},
					{"term": map[string]any{"request.uri.keyword": "/api/properties/" + propertyID}},
					{"range": map[string]any{
						"@timestamp": map[string]any{"gte": now.Add(-duration).Format(time.RFC3339)},
					}},
				},
			},
		},
		"aggs": map[string]any{
			"unique_ips": map[string]any{"cardinality": map[string]any{"field": "ip.keyword"}},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return domain.ViewStatValue{}, err
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if s.requestTimeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()
	}

	resp, err := s.es.Search(
		s.es.Search.WithContext(reqCtx),
		s.es.Search.WithIndex(s.logIndex),
		s.es.Search.WithBody(bytes.NewReader(payload)),
	)
	if err != nil {
		return domain.ViewStatValue{}, fmt.Errorf("%w: %v", ErrViewStatsUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return domain.ViewStatValue{}, fmt.Errorf("%w: elasticsearch search error: %s", ErrViewStatsUnavailable, resp.String())
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
		} `json:"hits"`
		Aggregations struct {
			UniqueIPs struct {
				Value float64 `json:"value"`
			} `json:"unique_ips"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return domain.ViewStatValue{}, fmt.Errorf("%w: decode response: %v", ErrViewStatsUnavailable, err)
	}

	return domain.ViewStatValue{
		TotalViews: parsed.Hits.Total.Value,
		UniqueIPs:  int(parsed.Aggregations.UniqueIPs.Value),
		BucketEnd:  now,
	}, nil
}

// RunRollup refreshes the cached buckets for every active property on a
// fixed interval, so admin dashboards mostly hit a warm cache. Blocks until
// ctx is cancelled.
func (s *PropertyViewStatsService) RunRollup(ctx context.Context, interval time.Duration) {
	if !s.Enabled() {
		return
	}
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ids, err := s.properties.ListActiveIDs(ctx)
			if err != nil {
				log.Printf("view stats rollup: list properties: %v", err)
				continue
			}
			for _, id := range ids {
				if err := s.refresh(ctx, id); err != nil {
					log.Printf("view stats rollup: refresh %s: %v", id, err)
				}
			}
		}
	}
}

func (s *PropertyViewStatsService) isStale(latest time.Time) bool {
	if s.cacheTTL <= 0 {
		return false
	}
	if latest.IsZero() {
		return true
	}
	return time.Since(latest) > s.cacheTTL
}
