package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/reservetable/reservetable-go/internal/model"
	"github.com/reservetable/reservetable-go/internal/repository"
)

// Default booking window when a hotel has no usable opening hours: dinner
// service, 5 PM to 10 PM.
const (
	defaultOpenHour  = 17
	defaultCloseHour = 22
)

// TimeslotService offers bookable time slots for a hotel on a given date.
// Availability is simulated: there is no table inventory behind it, each
// slot is simply offered with fixed probability.
type TimeslotService struct {
	hotels HotelStore
}

// NewTimeslotService creates a new TimeslotService.
func NewTimeslotService(hotels HotelStore) *TimeslotService {
	return &TimeslotService{hotels: hotels}
}

// Slots returns half-hourly slots between the hotel's opening hours for the
// given date. Roughly 30% of slots are marked unavailable.
func (s *TimeslotService) Slots(ctx context.Context, hotelID int64, date string) (model.TimeslotResponse, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return model.TimeslotResponse{}, ErrDateInvalid
	}

	hotel, err := s.hotels.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return model.TimeslotResponse{}, ErrHotelNotFound
		}
		return model.TimeslotResponse{}, err
	}

	openHour := parseHour(hotel.OpenTime, defaultOpenHour)
	closeHour := parseHour(hotel.CloseTime, defaultCloseHour)
	if closeHour <= openHour {
		openHour, closeHour = defaultOpenHour, defaultCloseHour
	}

	var slots []model.Timeslot
	for hour := openHour; hour < closeHour; hour++ {
		for _, minute := range []int{0, 30} {
			slots = append(slots, model.Timeslot{
				Time:      fmt.Sprintf("%02d:%02d", hour, minute),
				Available: rand.Float64() > 0.3,
			})
		}
	}

	return model.TimeslotResponse{
		HotelID: hotelID,
		Date:    date,
		Slots:   slots,
	}, nil
}

// parseHour extracts the hour from an "HH:MM" string, falling back when the
// value is missing or malformed.
func parseHour(t string, fallback int) int {
	var hour, minute int
	if _, err := fmt.Sscanf(t, "%d:%d", &hour, &minute); err != nil {
		return fallback
	}
	if hour < 0 || hour > 23 {
		return fallback
	}
	return hour
}
