package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/reservetable/reservetable-go/internal/model"
	"github.com/reservetable/reservetable-go/internal/repository"
)

var (
	ErrRestaurantNameRequired = errors.New("restaurant name is required")
	ErrDateInvalid            = errors.New("a valid date (YYYY-MM-DD) is required")
	ErrTimeRequired           = errors.New("a reservation time is required")
	ErrPartySizeInvalid       = errors.New("party size must be at least 1")
	ErrInvalidStatus          = errors.New("invalid reservation status")
	ErrReservationNotFound    = errors.New("reservation not found")
)

// ReservationStore defines the persistence operations ReservationService
// depends on.
type ReservationStore interface {
	Create(ctx context.Context, res *model.Reservation) error
	ListByUser(ctx context.Context, userID int64) ([]model.Reservation, error)
	GetByID(ctx context.Context, id, userID int64) (*model.Reservation, error)
	Update(ctx context.Context, res *model.Reservation) error
	Delete(ctx context.Context, id, userID int64) error
	DeleteAllByUser(ctx context.Context, userID int64) (int64, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]model.AdminReservation, error)
}

// ReservationService handles table booking business logic. All operations
// except the admin hotel listing are scoped to the requesting user.
type ReservationService struct {
	repo ReservationStore
}

// NewReservationService creates a new ReservationService.
func NewReservationService(repo ReservationStore) *ReservationService {
	return &ReservationService{repo: repo}
}

// ListForUser returns the user's reservations ordered by date.
func (s *ReservationService) ListForUser(ctx context.Context, userID int64) ([]model.ReservationResponse, error) {
	reservations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]model.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		out = append(out, reservations[i].Response())
	}
	return out, nil
}

// Create validates and stores a new reservation for the user, assigning a
// confirmation code.
func (s *ReservationService) Create(ctx context.Context, userID int64, req model.ReservationRequest) (model.ReservationResponse, error) {
	if req.RestaurantName == "" {
		return model.ReservationResponse{}, ErrRestaurantNameRequired
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return model.ReservationResponse{}, ErrDateInvalid
	}
	if req.Time == "" {
		return model.ReservationResponse{}, ErrTimeRequired
	}
	if req.PartySize < 1 {
		return model.ReservationResponse{}, ErrPartySizeInvalid
	}

	status := req.Status
	if status == "" {
		status = model.StatusConfirmed
	}
	if !status.Valid() {
		return model.ReservationResponse{}, ErrInvalidStatus
	}

	res := &model.Reservation{
		UserID:           userID,
		HotelID:          req.HotelID,
		RestaurantName:   req.RestaurantName,
		RestaurantID:     req.RestaurantID,
		Address:          req.Address,
		Phone:            req.Phone,
		Date:             date,
		Time:             req.Time,
		PartySize:        req.PartySize,
		Status:           status,
		ConfirmationCode: uuid.NewString(),
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return model.ReservationResponse{}, err
	}
	return res.Response(), nil
}

// Update applies the non-nil fields of the request to a reservation owned
// by the user.
func (s *ReservationService) Update(ctx context.Context, userID, id int64, req model.ReservationUpdateRequest) (model.ReservationResponse, error) {
	res, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return model.ReservationResponse{}, ErrReservationNotFound
		}
		return model.ReservationResponse{}, err
	}

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return model.ReservationResponse{}, ErrDateInvalid
		}
		res.Date = date
	}
	if req.Time != nil {
		if *req.Time == "" {
			return model.ReservationResponse{}, ErrTimeRequired
		}
		res.Time = *req.Time
	}
	if req.PartySize != nil {
		if *req.PartySize < 1 {
			return model.ReservationResponse{}, ErrPartySizeInvalid
		}
		res.PartySize = *req.PartySize
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return model.ReservationResponse{}, ErrInvalidStatus
		}
		res.Status = *req.Status
	}

	if err := s.repo.Update(ctx, res); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return model.ReservationResponse{}, ErrReservationNotFound
		}
		return model.ReservationResponse{}, err
	}
	return res.Response(), nil
}

// Delete removes one of the user's reservations.
func (s *ReservationService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return ErrReservationNotFound
		}
		return err
	}
	return nil
}

// Clear removes all of the user's reservations, returning the count.
func (s *ReservationService) Clear(ctx context.Context, userID int64) (int64, error) {
	return s.repo.DeleteAllByUser(ctx, userID)
}

// ListForHotel returns a hotel's reservations with booking user contact
// details, for the admin dashboard.
func (s *ReservationService) ListForHotel(ctx context.Context, hotelID int64) ([]model.ReservationResponse, error) {
	reservations, err := s.repo.ListByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	out := make([]model.ReservationResponse, 0, len(reservations))
	for i := range reservations {
		resp := reservations[i].Response()
		resp.UserName = reservations[i].UserName
		resp.UserEmail = reservations[i].UserEmail
		out = append(out, resp)
	}
	return out, nil
}
