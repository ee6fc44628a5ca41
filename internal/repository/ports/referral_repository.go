package ports

import (
	"context"

	"github.com/nycbookings/api/internal/domain"
)

type ReferralRepository interface {
	Create(ctx context.Context, referral *domain.Referral) (*domain.Referral, error)
}
