package model

import "time"

// Review is a rating and comment left by a user on a destination.
// Rating is constrained to 1..5 at validation time.
type Review struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"user_id"`
	DestinationID uint64    `json:"destination_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}
