package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-booking/internal/model"
)

// ReviewRepo manages persistence for reviews.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// Create inserts a review and assigns its generated ID.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO reviews (user_id, destination_id, rating, comment) VALUES (?,?,?,?)`,
		rv.UserID, rv.DestinationID, rv.Rating, rv.Comment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rv.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at FROM reviews WHERE id=?", rv.ID).Scan(&rv.CreatedAt)
}

// ListByDestination returns all reviews of a destination, newest first.
func (r *ReviewRepo) ListByDestination(ctx context.Context, destinationID uint64) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,user_id,destination_id,rating,comment,created_at
		 FROM reviews WHERE destination_id=? ORDER BY id DESC`, destinationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.DestinationID,
			&rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
