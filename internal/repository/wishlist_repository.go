package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/travel-booking/internal/model"
)

// WishlistRepo manages persistence for wishlist entries.
type WishlistRepo struct{ DB *sql.DB }

func NewWishlistRepo(db *sql.DB) *WishlistRepo { return &WishlistRepo{DB: db} }

// Add inserts a wishlist entry. A unique index on (user_id,
// destination_id) rejects saving the same destination twice.
func (r *WishlistRepo) Add(ctx context.Context, w *model.WishlistItem) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO wishlists (user_id, destination_id) VALUES (?,?)",
		w.UserID, w.DestinationID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicate
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	w.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM wishlists WHERE id=?", w.ID).Scan(&w.CreatedAt)
}

// ListByUser returns the user's saved destinations, newest first.
func (r *WishlistRepo) ListByUser(ctx context.Context, userID uint64) ([]model.WishlistItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,user_id,destination_id,created_at
		 FROM wishlists WHERE user_id=? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.WishlistItem
	for rows.Next() {
		var w model.WishlistItem
		if err := rows.Scan(&w.ID, &w.UserID, &w.DestinationID, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Remove deletes the entry linking the user to a destination.
func (r *WishlistRepo) Remove(ctx context.Context, userID, destinationID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM wishlists WHERE user_id=? AND destination_id=?",
		userID, destinationID)
	return err
}
