package model

import "time"

// Support ticket statuses (support_tickets.status).
const (
	TicketOpen       = "open"
	TicketInProgress = "in-progress"
	TicketResolved   = "resolved"
)

// SupportTicket is a help request opened by a user.
type SupportTicket struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	Subject         string    `json:"subject"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	ResolutionNotes string    `json:"resolution_notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
