package model

import "time"

// Destination is a bookable place.  Images and Features are stored as JSON
// arrays in their columns and scanned through the repository layer.
type Destination struct {
	ID             uint64     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	Images         []string   `json:"images"`
	PricePerNight  float64    `json:"price_per_night"`
	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	AvailableUntil *time.Time `json:"available_until,omitempty"`
	Features       []string   `json:"features"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
