package handlers

import (
	"net/http"

	"arena-pro/models/booking"
	"arena-pro/report"
	services "arena-pro/service"
	"arena-pro/squad"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

type cancelRequest struct {
	UID string `json:"uid"`
}

type joinResponse struct {
	Booking *booking.Booking `json:"booking"`
	Squad   squad.Status     `json:"squad"`
}

// CreateBooking handles POST /v1/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req services.CreateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, err := h.bookingService.CreateBooking(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// GetBooking handles GET /v1/bookings/{id}
func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookingService.GetBooking(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// GetSquadStatus handles GET /v1/bookings/{id}/squad
func (h *BookingHandler) GetSquadStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.bookingService.GetSquadStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// JoinSquad handles POST /v1/bookings/{id}/squad/join
func (h *BookingHandler) JoinSquad(w http.ResponseWriter, r *http.Request) {
	var req services.JoinSquadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	b, status, err := h.bookingService.JoinSquad(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, joinResponse{Booking: b, Squad: status})
}

// CancelBooking handles POST /v1/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "uid is required"})
		return
	}
	b, err := h.bookingService.CancelBooking(r.Context(), mux.Vars(r)["id"], req.UID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// GetReceipt handles GET /v1/bookings/{id}/receipt.pdf
func (h *BookingHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookingService.GetBooking(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	pdf, err := report.BookingReceipt(b)
	if err != nil {
		writeError(w, err)
		return
	}
	writePDF(w, "booking-"+b.ID+".pdf", pdf)
}
