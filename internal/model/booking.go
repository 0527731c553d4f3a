package model

import "time"

// Booking statuses as stored in bookings.status.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Payment states tracked on the booking itself (bookings.payment_status).
const (
	BookingPaymentPaid    = "paid"
	BookingPaymentDue     = "due"
	BookingPaymentOverdue = "overdue"
)

// Booking represents a stay at a destination reserved by a user.  It is a
// plain referential record: user and destination foreign keys plus scalar
// fields, no invariants beyond their existence.
type Booking struct {
	ID             uint64    `json:"id"`
	UserID         uint64    `json:"user_id"`
	DestinationID  uint64    `json:"destination_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`
	NumberOfPeople int       `json:"number_of_people"`
	TotalCost      float64   `json:"total_cost"`
	PaymentStatus  string    `json:"payment_status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
