// Package queue defines the message payloads exchanged over the broker and
// the background consumer that turns them into notification log lines.
package queue

// Queue names used by both the publisher and the consumer.
const (
	UserRegisteredQueue = "user.registered"
	BookingCreatedQueue = "booking.created"
)

// UserRegisteredEvent is published after a successful registration. The
// notification flags are carried along so the consumer can honour the
// user's preferred channels without querying the primary database.
type UserRegisteredEvent struct {
	UserID       uint64 `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	NotifyEmail  bool   `json:"notify_email"`
	NotifySMS    bool   `json:"notify_sms"`
	RegisteredAt string `json:"registered_at"`
}

// BookingCreatedEvent is published when a booking is successfully created.
// It contains enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type BookingCreatedEvent struct {
	BookingID       uint64  `json:"booking_id"`
	UserID          uint64  `json:"user_id"`
	DestinationID   uint64  `json:"destination_id"`
	DestinationName string  `json:"destination_name"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	NumberOfPeople  int     `json:"number_of_people"`
	TotalCost       float64 `json:"total_cost"`
	CreatedAt       string  `json:"created_at"`
}
