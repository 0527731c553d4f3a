package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/travel-booking/internal/model"
)

// DestinationRepo manages persistence for destinations. Images and
// features are stored as JSON columns and encoded/decoded here so the
// rest of the application only sees string slices.
type DestinationRepo struct{ DB *sql.DB }

func NewDestinationRepo(db *sql.DB) *DestinationRepo { return &DestinationRepo{DB: db} }

// Create inserts a new destination and assigns the generated ID plus the
// DB-default timestamps back onto the struct.
func (r *DestinationRepo) Create(ctx context.Context, d *model.Destination) error {
	images, err := json.Marshal(d.Images)
	if err != nil {
		return err
	}
	features, err := json.Marshal(d.Features)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO destinations (name, description, location, images, price_per_night, available_from, available_until, features)
		 VALUES (?,?,?,?,?,?,?,?)`,
		d.Name, d.Description, d.Location, images, d.PricePerNight,
		d.AvailableFrom, d.AvailableUntil, features)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM destinations WHERE id=?", d.ID).
		Scan(&d.CreatedAt, &d.UpdatedAt)
}

const destinationColumns = `id,name,description,location,images,price_per_night,available_from,available_until,features,created_at,updated_at`

// GetByID fetches a single destination.
func (r *DestinationRepo) GetByID(ctx context.Context, id uint64) (model.Destination, error) {
	d, err := scanDestination(r.DB.QueryRowContext(ctx,
		"SELECT "+destinationColumns+" FROM destinations WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.Destination{}, ErrDestinationNotFound
	}
	return d, err
}

// ListAll returns all destinations ordered by id.
func (r *DestinationRepo) ListAll(ctx context.Context) ([]model.Destination, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+destinationColumns+" FROM destinations ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanDestination(s rowScanner) (model.Destination, error) {
	var (
		d        model.Destination
		images   []byte
		features []byte
		from, to sql.NullTime
	)
	err := s.Scan(&d.ID, &d.Name, &d.Description, &d.Location, &images,
		&d.PricePerNight, &from, &to, &features, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return model.Destination{}, err
	}
	if from.Valid {
		t := from.Time
		d.AvailableFrom = &t
	}
	if to.Valid {
		t := to.Time
		d.AvailableUntil = &t
	}
	if len(images) > 0 {
		if err := json.Unmarshal(images, &d.Images); err != nil {
			return model.Destination{}, err
		}
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, &d.Features); err != nil {
			return model.Destination{}, err
		}
	}
	return d, nil
}
