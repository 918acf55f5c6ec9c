package handler

import (
	"net/http"

	"github.com/reservetable/reservetable-go/internal/service"
)

// AdminHandler handles HTTP requests for the admin dashboard. Routes are
// admin-gated by the route setup.
type AdminHandler struct {
	admin        *service.AdminService
	reservations *service.ReservationService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin *service.AdminService, reservations *service.ReservationService) *AdminHandler {
	return &AdminHandler{admin: admin, reservations: reservations}
}

// HandleDashboardSummary handles GET /api/admin/dashboard/summary requests.
func (h *AdminHandler) HandleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.admin.DashboardSummary(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to load summary"))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleHotelReservations handles GET /api/admin/hotels/{id}/reservations requests.
func (h *AdminHandler) HandleHotelReservations(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r)
	if !ok {
		return
	}

	reservations, err := h.reservations.ListForHotel(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("failed to load hotel reservations"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reservations": reservations})
}
