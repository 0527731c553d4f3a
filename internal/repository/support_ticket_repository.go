package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-booking/internal/model"
)

// SupportTicketRepo manages persistence for support tickets.
type SupportTicketRepo struct{ DB *sql.DB }

func NewSupportTicketRepo(db *sql.DB) *SupportTicketRepo { return &SupportTicketRepo{DB: db} }

// Create inserts a ticket with status defaulting to open.
func (r *SupportTicketRepo) Create(ctx context.Context, t *model.SupportTicket) error {
	if t.Status == "" {
		t.Status = model.TicketOpen
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO support_tickets (user_id, subject, description, status) VALUES (?,?,?,?)`,
		t.UserID, t.Subject, t.Description, t.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM support_tickets WHERE id=?", t.ID).
		Scan(&t.CreatedAt, &t.UpdatedAt)
}

// ListByUser returns the user's tickets, newest first.
func (r *SupportTicketRepo) ListByUser(ctx context.Context, userID uint64) ([]model.SupportTicket, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,user_id,subject,description,status,resolution_notes,created_at,updated_at
		 FROM support_tickets WHERE user_id=? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SupportTicket
	for rows.Next() {
		var (
			t     model.SupportTicket
			notes sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.Subject, &t.Description,
			&t.Status, &notes, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.ResolutionNotes = notes.String
		out = append(out, t)
	}
	return out, rows.Err()
}
