package domain

import "time"

type WishlistItem struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"userId"`
	PropertyID string    `db:"property_id" json:"propertyId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
