package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/nycbookings/api/internal/domain"
	"github.com/nycbookings/api/internal/repository/ports"
)

var ErrPropertyNotFound = errors.New("property not found")

type PropertyService struct {
	properties ports.PropertyRepository
}

type PropertyListResult struct {
	Properties []domain.Property
	Total      int64
	Page       int
	Limit      int
}

func NewPropertyService(propertyRepo ports.PropertyRepository) *PropertyService {
	return &PropertyService{properties: propertyRepo}
}

func (s *PropertyService) Search(ctx context.Context, filter domain.PropertyFilter, page, limit int) (*PropertyListResult, error) {
	page, limit = normalizePaging(page, limit)
	properties, total, err := s.properties.ListActive(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &PropertyListResult{Properties: properties, Total: total, Page: page, Limit: limit}, nil
}

func (s *PropertyService) GetActive(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.FindActiveByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) AdminList(ctx context.Context, search string, page, limit int) (*PropertyListResult, error) {
	page, limit = normalizePaging(page, limit)
	properties, total, err := s.properties.ListAll(ctx, search, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &PropertyListResult{Properties: properties, Total: total, Page: page, Limit: limit}, nil
}

func (s *PropertyService) AdminGet(ctx context.Context, id string) (*domain.Property, error) {
	property, err := s.properties.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if strings.TrimSpace(property.ID) == "" {
		property.ID = "prop_" + uuid.NewString()
	}
	property.IsActive = true
	return s.properties.Create(ctx, property)
}

func (s *PropertyService) Update(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	updated, err := s.properties.Update(ctx, property)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *PropertyService) Delete(ctx context.Context, id string) error {
	if err := s.properties.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrPropertyNotFound
		}
		return err
	}
	return nil
}

// ReplaceReviews swaps the full review set and recomputes the denormalized
// rating and review count from it.
func (s *PropertyService) ReplaceReviews(ctx context.Context, id string, reviews domain.Reviews) (*domain.Property, error) {
	var rating float64
	for _, review := range reviews {
		rating += review.Rating
	}
	if len(reviews) > 0 {
		rating /= float64(len(reviews))
	}

	property, err := s.properties.ReplaceReviews(ctx, id, reviews, rating, len(reviews))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return property, nil
}

func normalizePaging(page, limit int) (int, int) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
