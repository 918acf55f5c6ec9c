package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/reservetable/reservetable-go/internal/model"
)

var ErrReservationNotFound = errors.New("reservation not found")

const reservationColumns = `id, user_id, hotel_id, restaurant_name, restaurant_id, address, phone,
	date, time, party_size, status, confirmation_code, created_at, updated_at`

// ReservationRepository handles reservation persistence operations.
type ReservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new ReservationRepository.
func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts a new reservation and sets the generated ID.
func (r *ReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	query := `INSERT INTO reservations (user_id, hotel_id, restaurant_name, restaurant_id, address, phone,
	          date, time, party_size, status, confirmation_code)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		res.UserID, res.HotelID, res.RestaurantName, res.RestaurantID, res.Address, res.Phone,
		res.Date, res.Time, res.PartySize, res.Status, res.ConfirmationCode,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	res.ID = id
	return nil
}

// ListByUser returns a user's reservations ordered by date ascending.
func (r *ReservationRepository) ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE user_id = ? ORDER BY date ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []model.Reservation
	for rows.Next() {
		var res model.Reservation
		if err := scanReservation(rows, &res); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// GetByID retrieves a reservation owned by the given user.
func (r *ReservationRepository) GetByID(ctx context.Context, id, userID int64) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ? AND user_id = ?`, id, userID)

	res := &model.Reservation{}
	if err := scanReservation(row, res); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return res, nil
}

// Update persists the mutable fields of a reservation, scoped to its owner.
func (r *ReservationRepository) Update(ctx context.Context, res *model.Reservation) error {
	query := `UPDATE reservations SET date = ?, time = ?, party_size = ?, status = ?
	          WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		res.Date, res.Time, res.PartySize, res.Status, res.ID, res.UserID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, res.ID, res.UserID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a reservation, scoped to its owner.
func (r *ReservationRepository) Delete(ctx context.Context, id, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM reservations WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// DeleteAllByUser removes every reservation belonging to a user and
// returns how many were deleted.
func (r *ReservationRepository) DeleteAllByUser(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE user_id = ?`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListByHotel returns all reservations for a hotel, newest first, with the
// booking user's name and email joined in for admin views.
func (r *ReservationRepository) ListByHotel(ctx context.Context, hotelID int64) ([]model.AdminReservation, error) {
	query := `SELECT r.id, r.user_id, r.hotel_id, r.restaurant_name, r.restaurant_id, r.address, r.phone,
	          r.date, r.time, r.party_size, r.status, r.confirmation_code, r.created_at, r.updated_at,
	          u.name, u.email
	          FROM reservations r
	          JOIN users u ON u.id = r.user_id
	          WHERE r.hotel_id = ?
	          ORDER BY r.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []model.AdminReservation
	for rows.Next() {
		var res model.AdminReservation
		err := rows.Scan(
			&res.ID, &res.UserID, &res.HotelID, &res.RestaurantName, &res.RestaurantID,
			&res.Address, &res.Phone, &res.Date, &res.Time, &res.PartySize, &res.Status,
			&res.ConfirmationCode, &res.CreatedAt, &res.UpdatedAt,
			&res.UserName, &res.UserEmail,
		)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// Count returns the total number of reservations.
func (r *ReservationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&n)
	return n, err
}

func scanReservation(row rowScanner, res *model.Reservation) error {
	return row.Scan(
		&res.ID, &res.UserID, &res.HotelID, &res.RestaurantName, &res.RestaurantID,
		&res.Address, &res.Phone, &res.Date, &res.Time, &res.PartySize, &res.Status,
		&res.ConfirmationCode, &res.CreatedAt, &res.UpdatedAt,
	)
}
