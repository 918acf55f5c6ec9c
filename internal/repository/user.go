package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/reservetable/reservetable-go/internal/model"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrDuplicateGoogle = errors.New("google account already linked")
)

const userColumns = `id, name, email, phone, password_hash, login_method, google_id, role, is_active, last_login, created_at, updated_at`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
// The email is stored lowercased so uniqueness is case-insensitive.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(user.Email)

	query := `INSERT INTO users (name, email, phone, password_hash, login_method, google_id, role, is_active, last_login)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.Phone, user.PasswordHash,
		user.LoginMethod, user.GoogleID, user.Role, user.IsActive, user.LastLogin,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			if strings.Contains(err.Error(), "google_id") {
				return ErrDuplicateGoogle
			}
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by email address, case-insensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(email))
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByGoogleID retrieves a user by their Google subject identifier.
func (r *UserRepository) GetByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE google_id = ?`, googleID)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash,
		&user.LoginMethod, &user.GoogleID, &user.Role, &user.IsActive,
		&user.LastLogin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates a user's name and phone.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, name, phone string) error {
	return r.exec(ctx, `UPDATE users SET name = ?, phone = ? WHERE id = ?`, name, phone, id)
}

// UpdatePassword replaces a user's stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.exec(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
}

// UpdateLastLogin stamps a user's last successful authentication time.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return r.exec(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, at, id)
}

// LinkGoogle attaches a Google subject id to an existing account and
// switches its login method.
func (r *UserRepository) LinkGoogle(ctx context.Context, id int64, googleID string) error {
	err := r.exec(ctx, `UPDATE users SET google_id = ?, login_method = ? WHERE id = ?`,
		googleID, model.LoginMethodGoogle, id)
	if err != nil && isDuplicateEntryError(err) {
		return ErrDuplicateGoogle
	}
	return err
}

// Promote upserts the admin account identified by email: name, password
// hash, and admin role are applied whether or not the row exists yet.
func (r *UserRepository) Promote(ctx context.Context, user *model.User) error {
	user.Email = strings.ToLower(user.Email)

	query := `INSERT INTO users (name, email, password_hash, login_method, role, is_active, last_login)
	          VALUES (?, ?, ?, ?, ?, 1, ?)
	          ON DUPLICATE KEY UPDATE name = VALUES(name), password_hash = VALUES(password_hash), role = VALUES(role)`

	result, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.LoginMethod, user.Role, user.LastLogin,
	)
	if err != nil {
		return err
	}

	if id, err := result.LastInsertId(); err == nil && id != 0 {
		user.ID = id
	}
	return nil
}

// Delete removes a user. Reservations cascade at the schema level.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Count returns the total number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// CountLoginsBetween counts users whose last login falls in [from, to).
func (r *UserRepository) CountLoginsBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE last_login >= ? AND last_login < ?`, from, to,
	).Scan(&n)
	return n, err
}

func (r *UserRepository) exec(ctx context.Context, query string, args ...any) error {
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
