package model

import "time"

// WishlistItem links a user to a destination they saved for later.
type WishlistItem struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"user_id"`
	DestinationID uint64    `json:"destination_id"`
	CreatedAt     time.Time `json:"created_at"`
}
