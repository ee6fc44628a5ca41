package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nycbookings/api/internal/domain"
)

type fakeWishlistRepo struct {
	items []domain.WishlistItem

	existsResult bool
	existsErr    error

	addResult *domain.WishlistItem
	addErr    error
	addCalls  int

	removeResult int64
	removeErr    error
	removeInput  struct {
		userID     int64
		propertyID string
	}
}

func (f *fakeWishlistRepo) ListByUser(ctx context.Context, userID int64) ([]domain.WishlistItem, error) {
	return append([]domain.WishlistItem(nil), f.items...), nil
}

func (f *fakeWishlistRepo) Exists(ctx context.Context, userID int64, propertyID string) (bool, error) {
	return f.existsResult, f.existsErr
}

func (f *fakeWishlistRepo) Add(ctx context.Context, userID int64, propertyID string) (*domain.WishlistItem, error) {
	f.addCalls++
	if f.addErr != nil {
		return nil, f.addErr
	}
	if f.addResult != nil {
		return f.addResult, nil
	}
	return &domain.WishlistItem{ID: 1, UserID: userID, PropertyID: propertyID, CreatedAt: time.Now()}, nil
}

func (f *fakeWishlistRepo) Remove(ctx context.Context, userID int64, propertyID string) (int64, error) {
	f.removeInput = struct {
		userID     int64
		propertyID string
	}{userID: userID, propertyID: propertyID}
	return f.removeResult, f.removeErr
}

func TestWishlistAdd(t *testing.T) {
	repo := &fakeWishlistRepo{}
	svc := NewWishlistService(repo)

	item, err := svc.Add(context.Background(), 1, "prop_abc")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if item.UserID != 1 || item.PropertyID != "prop_abc" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestWishlistAddDuplicate(t *testing.T) {
	t.Run("existence check catches it", func(t *testing.T) {
		repo := &fakeWishlistRepo{existsResult: true}
		svc := NewWishlistService(repo)

		_, err := svc.Add(context.Background(), 1, "prop_abc")
		if !errors.Is(err, ErrWishlistDuplicate) {
			t.Fatalf("expected ErrWishlistDuplicate, got %v", err)
		}
		if repo.addCalls != 0 {
			t.Fatal("expected no insert after the existence check")
		}
	})

	t.Run("constraint catches the race", func(t *testing.T) {
		repo := &fakeWishlistRepo{addErr: &pgconn.PgError{Code: "23505"}}
		svc := NewWishlistService(repo)

		_, err := svc.Add(context.Background(), 1, "prop_abc")
		if !errors.Is(err, ErrWishlistDuplicate) {
			t.Fatalf("expected ErrWishlistDuplicate, got %v", err)
		}
	})
}

func TestWishlistRemoveReportsCount(t *testing.T) {
	repo := &fakeWishlistRepo{removeResult: 0}
	svc := NewWishlistService(repo)

	deleted, err := svc.Remove(context.Background(), 1, "prop_missing")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected 0 deletions, got %d", deleted)
	}
	if repo.removeInput.propertyID != "prop_missing" {
		t.Fatalf("unexpected property id: %q", repo.removeInput.propertyID)
	}
}
