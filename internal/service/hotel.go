package service

import (
	"context"
	"errors"

	"github.com/reservetable/reservetable-go/internal/model"
	"github.com/reservetable/reservetable-go/internal/repository"
)

var (
	ErrHotelNameRequired   = errors.New("hotel name is required")
	ErrHotelCityRequired   = errors.New("hotel city is required")
	ErrInvalidPriceRange   = errors.New("invalid price range")
	ErrInvalidLocationType = errors.New("invalid location type")
	ErrInvalidMealType     = errors.New("invalid meal type")
	ErrHotelNotFound       = errors.New("hotel not found")
)

// HotelStore defines the persistence operations HotelService depends on.
type HotelStore interface {
	Create(ctx context.Context, hotel *model.Hotel) error
	List(ctx context.Context) ([]model.Hotel, error)
	GetByID(ctx context.Context, id int64) (*model.Hotel, error)
	Update(ctx context.Context, hotel *model.Hotel) error
	Delete(ctx context.Context, id int64) error
}

// HotelService handles hotel catalog business logic.
type HotelService struct {
	repo HotelStore
}

// NewHotelService creates a new HotelService.
func NewHotelService(repo HotelStore) *HotelService {
	return &HotelService{repo: repo}
}

// List returns all hotels, newest first.
func (s *HotelService) List(ctx context.Context) ([]model.HotelResponse, error) {
	hotels, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.HotelResponse, 0, len(hotels))
	for i := range hotels {
		out = append(out, hotels[i].Response())
	}
	return out, nil
}

// Get returns a single hotel by ID.
func (s *HotelService) Get(ctx context.Context, id int64) (model.HotelResponse, error) {
	hotel, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return model.HotelResponse{}, ErrHotelNotFound
		}
		return model.HotelResponse{}, err
	}
	return hotel.Response(), nil
}

// Create validates and stores a new hotel.
func (s *HotelService) Create(ctx context.Context, req model.HotelRequest) (model.HotelResponse, error) {
	hotel, err := hotelFromRequest(req)
	if err != nil {
		return model.HotelResponse{}, err
	}

	if err := s.repo.Create(ctx, hotel); err != nil {
		return model.HotelResponse{}, err
	}
	return hotel.Response(), nil
}

// Update validates and replaces an existing hotel's fields.
func (s *HotelService) Update(ctx context.Context, id int64, req model.HotelRequest) (model.HotelResponse, error) {
	hotel, err := hotelFromRequest(req)
	if err != nil {
		return model.HotelResponse{}, err
	}
	hotel.ID = id

	if err := s.repo.Update(ctx, hotel); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return model.HotelResponse{}, ErrHotelNotFound
		}
		return model.HotelResponse{}, err
	}

	return s.Get(ctx, id)
}

// Delete removes a hotel by ID.
func (s *HotelService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return ErrHotelNotFound
		}
		return err
	}
	return nil
}

// hotelFromRequest validates a request and applies the catalog defaults.
func hotelFromRequest(req model.HotelRequest) (*model.Hotel, error) {
	if req.Name == "" {
		return nil, ErrHotelNameRequired
	}
	if req.City == "" {
		return nil, ErrHotelCityRequired
	}

	hotel := &model.Hotel{
		Name:         req.Name,
		City:         req.City,
		Address:      req.Address,
		Phone:        req.Phone,
		Description:  req.Description,
		Cuisine:      req.Cuisine,
		PriceRange:   req.PriceRange,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		Capacity:     req.Capacity,
		Image:        req.Image,
		Rating:       req.Rating,
		LocationType: req.LocationType,
		District:     req.District,
		BestFood:     req.BestFood,
		MealType:     req.MealType,
		Lat:          req.Lat,
		Lng:          req.Lng,
	}

	if hotel.PriceRange == "" {
		hotel.PriceRange = model.PriceModerate
	}
	if hotel.LocationType == "" {
		hotel.LocationType = model.LocationOpen
	}
	if hotel.MealType == "" {
		hotel.MealType = model.MealAny
	}
	if hotel.Capacity <= 0 {
		hotel.Capacity = 50
	}
	if hotel.Rating == 0 {
		hotel.Rating = 4.5
	}

	if !hotel.PriceRange.Valid() {
		return nil, ErrInvalidPriceRange
	}
	if !hotel.LocationType.Valid() {
		return nil, ErrInvalidLocationType
	}
	if !hotel.MealType.Valid() {
		return nil, ErrInvalidMealType
	}

	return hotel, nil
}
