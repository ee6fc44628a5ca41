package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/nycbookings/api/internal/domain"
)

type ReferralRepository struct {
	db *sqlx.DB
}

func NewReferralRepo(db *sqlx.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

func (r *ReferralRepository) Create(ctx context.Context, referral *domain.Referral) (*domain.Referral, error) {
	const query = `
        INSERT INTO referrals (name, travel_agency_name, phone, email, message)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, name, travel_agency_name, phone, email, message, created_at
    `
	row := r.db.QueryRowxContext(ctx, query, referral.Name, referral.AgencyName, referral.Phone, referral.Email, referral.Message)
	var created domain.Referral
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}
