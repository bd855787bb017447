package http

import (
	"net/http"

	"librarium-backend/internal/service"

	"github.com/gorilla/mux"
)

// ReservationHandler exposes placing and cancelling reservations.
type ReservationHandler struct {
	reservations service.ReservationService
}

func NewReservationHandler(reservations service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

type makeReservationRequest struct {
	UserID     int64 `json:"user_id" validate:"required,gt=0"`
	MaterialID int64 `json:"material_id" validate:"required,gt=0"`
}

func (h *ReservationHandler) Make(w http.ResponseWriter, r *http.Request) {
	var req makeReservationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	reservation, err := h.reservations.MakeReservation(r.Context(), req.UserID, req.MaterialID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, reservation)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	reservationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.reservations.CancelReservation(r.Context(), reservationID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "reservation cancelled"})
}

func (h *ReservationHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	reservations, err := h.reservations.ListUserReservations(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func RegisterReservationRoutes(router *mux.Router, reservations service.ReservationService) {
	handler := NewReservationHandler(reservations)
	router.HandleFunc("/reservations", handler.Make).Methods("POST")
	router.HandleFunc("/reservations/{id}", handler.Cancel).Methods("DELETE")
	router.HandleFunc("/users/{id}/reservations", handler.ListByUser).Methods("GET")
}
