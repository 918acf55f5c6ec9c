package handler

import (
	"errors"
	"net/http"

	"github.com/reservetable/reservetable-go/internal/middleware"
	"github.com/reservetable/reservetable-go/internal/model"
	"github.com/reservetable/reservetable-go/internal/service"
)

// ReservationHandler handles HTTP requests for table bookings. Every route
// requires authentication; all operations are scoped to the caller.
type ReservationHandler struct {
	service *service.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: svc}
}

// HandleList handles GET /api/reservations requests.
func (h *ReservationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	reservations, err := h.service.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to get reservations"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}

// HandleCreate handles POST /api/reservations requests.
func (h *ReservationHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.ReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.Create(r.Context(), identity.UserID, req)
	if err != nil {
		if isReservationValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to create reservation"))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"reservation": reservation})
}

// HandleUpdate handles PUT /api/reservations/{id} requests.
func (h *ReservationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	var req model.ReservationUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reservation, err := h.service.Update(r.Context(), identity.UserID, id, req)
	if err != nil {
		switch {
		case isReservationValidationError(err):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrReservationNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("failed to update reservation"))
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservation": reservation})
}

// HandleDelete handles DELETE /api/reservations/{id} requests.
func (h *ReservationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	id, ok := urlID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, id); err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to delete reservation"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleClear handles DELETE /api/reservations requests, removing all of
// the caller's reservations.
func (h *ReservationHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	deleted, err := h.service.Clear(r.Context(), identity.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to clear reservations"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "deleted": deleted})
}

func isReservationValidationError(err error) bool {
	return errors.Is(err, service.ErrRestaurantNameRequired) ||
		errors.Is(err, service.ErrDateInvalid) ||
		errors.Is(err, service.ErrTimeRequired) ||
		errors.Is(err, service.ErrPartySizeInvalid) ||
		errors.Is(err, service.ErrInvalidStatus)
}
