package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/travel-booking/internal/model"
)

// UserRepo persists rows of the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id,name,email,password_hash,phone,profile_picture,vacation_type,notify_email,notify_sms,session_token,created_at,updated_at`

// Create inserts the user and assigns the generated ID plus the DB-default
// timestamps back onto the struct. The caller supplies PasswordHash; the
// repository never sees a plaintext password.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, phone, profile_picture, vacation_type, notify_email, notify_sms)
		 VALUES (?,?,?,?,?,?,?,?)`,
		u.Name, u.Email, u.PasswordHash, u.Phone, u.ProfilePicture,
		u.Preferences.VacationType,
		u.Preferences.NotificationMethods.Email,
		u.Preferences.NotificationMethods.SMS)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return r.DB.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM users WHERE id=?", u.ID).
		Scan(&u.CreatedAt, &u.UpdatedAt)
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// SaveSessionToken stores the last issued token on the user row. The
// token is never consulted during verification; the column mirrors the
// original record layout and is overwritten on every login.
func (r *UserRepo) SaveSessionToken(ctx context.Context, id uint64, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET session_token=?, updated_at=NOW() WHERE id=?", token, id)
	return err
}

// ListAll returns every user row. Callers are expected to reduce the
// result to public views before responding.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// rowScanner lets scanUser work for both QueryRow and Query results.
type rowScanner interface{ Scan(dest ...any) error }

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

func scanUser(s rowScanner) (model.User, error) {
	var (
		u            model.User
		phone        sql.NullString
		picture      sql.NullString
		vacationType sql.NullString
		sessionToken sql.NullString
	)
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&phone, &picture, &vacationType,
		&u.Preferences.NotificationMethods.Email,
		&u.Preferences.NotificationMethods.SMS,
		&sessionToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.Phone = phone.String
	u.ProfilePicture = picture.String
	u.Preferences.VacationType = vacationType.String
	u.SessionToken = sessionToken.String
	return u, nil
}
