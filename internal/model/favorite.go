package model

import "time"

// Favorite marks a listing saved by a user.
type Favorite struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex:idx_fav_user_listing;not null"`
	ListingID uint      `json:"listing_id" gorm:"uniqueIndex:idx_fav_user_listing;not null"`
	CreatedAt time.Time `json:"created_at"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}
