package service

import (
	"context"

	"github.com/nycbookings/api/internal/domain"
	"github.com/nycbookings/api/internal/repository/ports"
)

// ReferralMailer notifies the bookings team about a new referral. Unlike the
// password-reset mail, delivery failure here fails the request: the email is
// the point of the form.
type ReferralMailer interface {
	SendReferralNotification(ctx context.Context, referral *domain.Referral) error
}

type ReferralService struct {
	referrals ports.ReferralRepository
	mailer    ReferralMailer
}

func NewReferralService(referralRepo ports.ReferralRepository, mailer ReferralMailer) *ReferralService {
	return &ReferralService{referrals: referralRepo, mailer: mailer}
}

func (s *ReferralService) Submit(ctx context.Context, referral *domain.Referral) (*domain.Referral, error) {
	created, err := s.referrals.Create(ctx, referral)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendReferralNotification(ctx, created); err != nil {
			return nil, err
		}
	}
	return created, nil
}
