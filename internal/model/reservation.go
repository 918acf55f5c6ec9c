package model

import "time"

// ReservationStatus is a reservation's lifecycle state.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusPending   ReservationStatus = "pending"
)

// Valid reports whether s is a known reservation status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusPending:
		return true
	}
	return false
}

// Reservation represents a table booking. HotelID is set when the booking
// targets a hotel in our own catalog; bookings imported from the external
// restaurant directory carry only RestaurantID and the denormalized
// name/address/phone.
type Reservation struct {
	ID               int64
	UserID           int64
	HotelID          *int64
	RestaurantName   string
	RestaurantID     *int64
	Address          string
	Phone            string
	Date             time.Time
	Time             string
	PartySize        int
	Status           ReservationStatus
	ConfirmationCode string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReservationRequest represents a reservation create payload.
type ReservationRequest struct {
	HotelID        *int64            `json:"hotel_id"`
	RestaurantName string            `json:"restaurant_name"`
	RestaurantID   *int64            `json:"restaurant_id"`
	Address        string            `json:"address"`
	Phone          string            `json:"phone"`
	Date           string            `json:"date"` // YYYY-MM-DD
	Time           string            `json:"time"` // e.g. "19:30"
	PartySize      int               `json:"party_size"`
	Status         ReservationStatus `json:"status"`
}

// ReservationUpdateRequest represents a partial reservation update.
// Nil fields are left unchanged.
type ReservationUpdateRequest struct {
	Date      *string            `json:"date"`
	Time      *string            `json:"time"`
	PartySize *int               `json:"party_size"`
	Status    *ReservationStatus `json:"status"`
}

// ReservationResponse represents reservation data returned by the API.
type ReservationResponse struct {
	ID               int64             `json:"id"`
	HotelID          *int64            `json:"hotel_id,omitempty"`
	RestaurantName   string            `json:"restaurant_name"`
	RestaurantID     *int64            `json:"restaurant_id,omitempty"`
	Address          string            `json:"address,omitempty"`
	Phone            string            `json:"phone,omitempty"`
	Date             string            `json:"date"`
	Time             string            `json:"time"`
	PartySize        int               `json:"party_size"`
	Status           ReservationStatus `json:"status"`
	ConfirmationCode string            `json:"confirmation_code"`
	CreatedAt        time.Time         `json:"created_at"`
	// Populated only on admin listings.
	UserName  string `json:"user_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
}

// Response converts a Reservation into its API representation.
func (r *Reservation) Response() ReservationResponse {
	return ReservationResponse{
		ID:               r.ID,
		HotelID:          r.HotelID,
		RestaurantName:   r.RestaurantName,
		RestaurantID:     r.RestaurantID,
		Address:          r.Address,
		Phone:            r.Phone,
		Date:             r.Date.Format("2006-01-02"),
		Time:             r.Time,
		PartySize:        r.PartySize,
		Status:           r.Status,
		ConfirmationCode: r.ConfirmationCode,
		CreatedAt:        r.CreatedAt,
	}
}

// AdminReservation pairs a reservation with the booking user's public
// contact fields for admin listings.
type AdminReservation struct {
	Reservation
	UserName  string
	UserEmail string
}

// DashboardSummary is the admin dashboard's aggregate counters.
type DashboardSummary struct {
	Users        int64 `json:"users"`
	Hotels       int64 `json:"hotels"`
	Reservations int64 `json:"reservations"`
	TodayLogins  int64 `json:"today_logins"`
}

// Timeslot is a single offered booking time.
type Timeslot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// TimeslotResponse is the set of bookable slots offered for a hotel on a
// given date.
type TimeslotResponse struct {
	HotelID int64      `json:"hotel_id"`
	Date    string     `json:"date"`
	Slots   []Timeslot `json:"slots"`
}
