package model

import "time"

// Accepted payment methods (payments.payment_method).
const (
	PaymentCreditCard   = "credit_card"
	PaymentPaypal       = "paypal"
	PaymentBankTransfer = "bank_transfer"
)

// Payment statuses (payments.status).
const (
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
	PaymentPending = "pending"
)

// Payment records a payment made against a booking.
type Payment struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"user_id"`
	BookingID     uint64    `json:"booking_id"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method"`
	PaymentDate   time.Time `json:"payment_date"`
	Status        string    `json:"status"`
	ReceiptURL    string    `json:"receipt_url,omitempty"`
}
