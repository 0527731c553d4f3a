package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-booking/internal/model"
)

// BookingRepo manages persistence for bookings.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingColumns = `id,user_id,destination_id,start_date,end_date,status,number_of_people,total_cost,payment_status,created_at,updated_at`

// Create inserts a booking. Status and payment_status take their DB
// defaults (pending / due) unless set by the caller.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if b.Status == "" {
		b.Status = model.BookingPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = model.BookingPaymentDue
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO bookings (user_id, destination_id, start_date, end_date, status, number_of_people, total_cost, payment_status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		b.UserID, b.DestinationID, b.StartDate, b.EndDate, b.Status,
		b.NumberOfPeople, b.TotalCost, b.PaymentStatus)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM bookings WHERE id=?", b.ID).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

// GetByID fetches a single booking.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	var b model.Booking
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id).
		Scan(&b.ID, &b.UserID, &b.DestinationID, &b.StartDate, &b.EndDate,
			&b.Status, &b.NumberOfPeople, &b.TotalCost, &b.PaymentStatus,
			&b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	return b, err
}

// ListByUser returns the user's bookings, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE user_id=? ORDER BY id DESC", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.DestinationID, &b.StartDate,
			&b.EndDate, &b.Status, &b.NumberOfPeople, &b.TotalCost,
			&b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Cancel marks a booking as cancelled. It verifies ownership first so a
// user cannot cancel someone else's booking.
func (r *BookingRepo) Cancel(ctx context.Context, id, userID uint64) error {
	b, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=?, updated_at=NOW() WHERE id=?",
		model.BookingCancelled, id)
	return err
}
