package handler

import (
	"errors"
	"net/http"

	"github.com/reservetable/reservetable-go/internal/model"
	"github.com/reservetable/reservetable-go/internal/service"
)

// HotelHandler handles HTTP requests for the hotel catalog. Listing and
// detail are public; create, update, and delete are admin-gated by the
// route setup.
type HotelHandler struct {
	service   *service.HotelService
	timeslots *service.TimeslotService
}

// NewHotelHandler creates a new HotelHandler.
func NewHotelHandler(svc *service.HotelService, timeslots *service.TimeslotService) *HotelHandler {
	return &HotelHandler{service: svc, timeslots: timeslots}
}

// HandleList handles GET /api/hotels requests.
func (h *HotelHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.service.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to list hotels"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotels": hotels})
}

// HandleGet handles GET /api/hotels/{id} requests.
func (h *HotelHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	hotel, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrHotelNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to get hotel"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotel": hotel})
}

// HandleTimeslots handles GET /api/hotels/{id}/timeslots?date=YYYY-MM-DD requests.
func (h *HotelHandler) HandleTimeslots(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	resp, err := h.timeslots.Slots(r.Context(), id, r.URL.Query().Get("date"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDateInvalid):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrHotelNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("failed to load timeslots"))
		}
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleCreate handles POST /api/hotels requests.
func (h *HotelHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.HotelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hotel, err := h.service.Create(r.Context(), req)
	if err != nil {
		if isHotelValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to create hotel"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"hotel": hotel})
}

// HandleUpdate handles PUT /api/hotels/{id} requests.
func (h *HotelHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req model.HotelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hotel, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case isHotelValidationError(err):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrHotelNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("failed to update hotel"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotel": hotel})
}

// HandleDelete handles DELETE /api/hotels/{id} requests.
func (h *HotelHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrHotelNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to delete hotel"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func isHotelValidationError(err error) bool {
	return errors.Is(err, service.ErrHotelNameRequired) ||
		errors.Is(err, service.ErrHotelCityRequired) ||
		errors.Is(err, service.ErrInvalidPriceRange) ||
		errors.Is(err, service.ErrInvalidLocationType) ||
		errors.Is(err, service.ErrInvalidMealType)
}
