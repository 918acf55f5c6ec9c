package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/reservetable/reservetable-go/internal/model"
)

var ErrHotelNotFound = errors.New("hotel not found")

const hotelColumns = `id, name, city, address, phone, description, cuisine, price_range, open_time, close_time,
	capacity, image, rating, location_type, district, best_food, meal_type, lat, lng, created_at, updated_at`

// HotelRepository handles hotel persistence operations.
type HotelRepository struct {
	db *sql.DB
}

// NewHotelRepository creates a new HotelRepository.
func NewHotelRepository(db *sql.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

// Create inserts a new hotel and sets the generated ID on the hotel struct.
func (r *HotelRepository) Create(ctx context.Context, hotel *model.Hotel) error {
	query := `INSERT INTO hotels (name, city, address, phone, description, cuisine, price_range, open_time,
	          close_time, capacity, image, rating, location_type, district, best_food, meal_type, lat, lng)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		hotel.Name, hotel.City, hotel.Address, hotel.Phone, hotel.Description, hotel.Cuisine,
		hotel.PriceRange, hotel.OpenTime, hotel.CloseTime, hotel.Capacity, hotel.Image, hotel.Rating,
		hotel.LocationType, hotel.District, hotel.BestFood, hotel.MealType, hotel.Lat, hotel.Lng,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	hotel.ID = id
	return nil
}

// List returns all hotels, newest first.
func (r *HotelRepository) List(ctx context.Context) ([]model.Hotel, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+hotelColumns+` FROM hotels ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hotels []model.Hotel
	for rows.Next() {
		var h model.Hotel
		if err := scanHotel(rows, &h); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	return hotels, rows.Err()
}

// GetByID retrieves a hotel by its ID.
func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*model.Hotel, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = ?`, id)

	hotel := &model.Hotel{}
	if err := scanHotel(row, hotel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return hotel, nil
}

// Update replaces all mutable fields of a hotel.
func (r *HotelRepository) Update(ctx context.Context, hotel *model.Hotel) error {
	query := `UPDATE hotels SET name = ?, city = ?, address = ?, phone = ?, description = ?, cuisine = ?,
	          price_range = ?, open_time = ?, close_time = ?, capacity = ?, image = ?, rating = ?,
	          location_type = ?, district = ?, best_food = ?, meal_type = ?, lat = ?, lng = ?
	          WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		hotel.Name, hotel.City, hotel.Address, hotel.Phone, hotel.Description, hotel.Cuisine,
		hotel.PriceRange, hotel.OpenTime, hotel.CloseTime, hotel.Capacity, hotel.Image, hotel.Rating,
		hotel.LocationType, hotel.District, hotel.BestFood, hotel.MealType, hotel.Lat, hotel.Lng,
		hotel.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, hotel.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a hotel by ID.
func (r *HotelRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM hotels WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrHotelNotFound
	}
	return nil
}

// Count returns the total number of hotels.
func (r *HotelRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hotels`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHotel(row rowScanner, h *model.Hotel) error {
	return row.Scan(
		&h.ID, &h.Name, &h.City, &h.Address, &h.Phone, &h.Description, &h.Cuisine,
		&h.PriceRange, &h.OpenTime, &h.CloseTime, &h.Capacity, &h.Image, &h.Rating,
		&h.LocationType, &h.District, &h.BestFood, &h.MealType, &h.Lat, &h.Lng,
		&h.CreatedAt, &h.UpdatedAt,
	)
}
