package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-booking/internal/model"
)

// PaymentRepo manages persistence for payments.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

// Create inserts a payment. PaymentDate and Status take their DB defaults
// (NOW() / pending) unless set by the caller.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	if p.Status == "" {
		p.Status = model.PaymentPending
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO payments (user_id, booking_id, amount, payment_method, status, receipt_url)
		 VALUES (?,?,?,?,?,?)`,
		p.UserID, p.BookingID, p.Amount, p.PaymentMethod, p.Status, p.ReceiptURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT payment_date FROM payments WHERE id=?", p.ID).Scan(&p.PaymentDate)
}

// ListByUser returns the user's payments, newest first.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Payment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,user_id,booking_id,amount,payment_method,payment_date,status,receipt_url
		 FROM payments WHERE user_id=? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		var (
			p       model.Payment
			receipt sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.UserID, &p.BookingID, &p.Amount,
			&p.PaymentMethod, &p.PaymentDate, &p.Status, &receipt); err != nil {
			return nil, err
		}
		p.ReceiptURL = receipt.String
		out = append(out, p)
	}
	return out, rows.Err()
}
