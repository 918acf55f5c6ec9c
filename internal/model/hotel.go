package model

import "time"

// PriceRange is a hotel's price bracket, from "$" to "$$$$".
type PriceRange string

const (
	PriceCheap     PriceRange = "$"
	PriceModerate  PriceRange = "$$"
	PriceExpensive PriceRange = "$$$"
	PriceLuxury    PriceRange = "$$$$"
)

// Valid reports whether p is a known price range.
func (p PriceRange) Valid() bool {
	switch p {
	case PriceCheap, PriceModerate, PriceExpensive, PriceLuxury:
		return true
	}
	return false
}

// LocationType classifies a hotel's setting, used by admin filtering.
type LocationType string

const (
	LocationOpen   LocationType = "open"
	LocationClosed LocationType = "closed"
	LocationBeach  LocationType = "beach"
	LocationHill   LocationType = "hill"
)

// Valid reports whether l is a known location type.
func (l LocationType) Valid() bool {
	switch l {
	case LocationOpen, LocationClosed, LocationBeach, LocationHill:
		return true
	}
	return false
}

// MealType classifies which meal a hotel is best suited for.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealAny       MealType = "any"
)

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealAny:
		return true
	}
	return false
}

// Hotel represents a restaurant listing. The original product called
// restaurants "hotels" and the API keeps that name.
type Hotel struct {
	ID          int64
	Name        string
	City        string
	Address     string
	Phone       string
	Description string
	Cuisine     string
	PriceRange  PriceRange
	OpenTime    string
	CloseTime   string
	Capacity    int
	Image       string
	Rating      float64
	// Admin-only metadata, used for filtering rather than display.
	LocationType LocationType
	District     string
	BestFood     string
	MealType     MealType
	Lat          *float64
	Lng          *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HotelRequest represents a hotel create or update payload.
type HotelRequest struct {
	Name         string       `json:"name"`
	City         string       `json:"city"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone"`
	Description  string       `json:"description"`
	Cuisine      string       `json:"cuisine"`
	PriceRange   PriceRange   `json:"price_range"`
	OpenTime     string       `json:"open_time"`
	CloseTime    string       `json:"close_time"`
	Capacity     int          `json:"capacity"`
	Image        string       `json:"image"`
	Rating       float64      `json:"rating"`
	LocationType LocationType `json:"location_type"`
	District     string       `json:"district"`
	BestFood     string       `json:"best_food"`
	MealType     MealType     `json:"meal_type"`
	Lat          *float64     `json:"lat"`
	Lng          *float64     `json:"lng"`
}

// HotelResponse represents hotel data returned by the API.
type HotelResponse struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	City         string       `json:"city"`
	Address      string       `json:"address,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Description  string       `json:"description,omitempty"`
	Cuisine      string       `json:"cuisine,omitempty"`
	PriceRange   PriceRange   `json:"price_range"`
	OpenTime     string       `json:"open_time,omitempty"`
	CloseTime    string       `json:"close_time,omitempty"`
	Capacity     int          `json:"capacity"`
	Image        string       `json:"image,omitempty"`
	Rating       float64      `json:"rating"`
	LocationType LocationType `json:"location_type"`
	District     string       `json:"district,omitempty"`
	BestFood     string       `json:"best_food,omitempty"`
	MealType     MealType     `json:"meal_type"`
	Lat          *float64     `json:"lat,omitempty"`
	Lng          *float64     `json:"lng,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Response converts a Hotel into its API representation.
func (h *Hotel) Response() HotelResponse {
	return HotelResponse{
		ID:           h.ID,
		Name:         h.Name,
		City:         h.City,
		Address:      h.Address,
		Phone:        h.Phone,
		Description:  h.Description,
		Cuisine:      h.Cuisine,
		PriceRange:   h.PriceRange,
		OpenTime:     h.OpenTime,
		CloseTime:    h.CloseTime,
		Capacity:     h.Capacity,
		Image:        h.Image,
		Rating:       h.Rating,
		LocationType: h.LocationType,
		District:     h.District,
		BestFood:     h.BestFood,
		MealType:     h.MealType,
		Lat:          h.Lat,
		Lng:          h.Lng,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}
