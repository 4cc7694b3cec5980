package handlers

import (
	"log"
	"net/http"

	"arena-pro/models/slot"
	"arena-pro/models/venue"
	"arena-pro/report"
	services "arena-pro/service"
	"arena-pro/server/middleware"

	"github.com/gorilla/mux"
)

// AdminHandler serves the venue admin panel. Every route sits behind
// middleware.RequireAdmin.
type AdminHandler struct {
	venueService *services.VenueService
}

func NewAdminHandler(venueService *services.VenueService) *AdminHandler {
	return &AdminHandler{venueService: venueService}
}

// UpsertVenue handles PUT /v1/admin/venues/{id}
func (h *AdminHandler) UpsertVenue(w http.ResponseWriter, r *http.Request) {
	var v venue.Venue
	if !decodeBody(w, r, &v) {
		return
	}
	id := mux.Vars(r)["id"]
	if v.VenueID != "" && v.VenueID != id {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "venue id does not match path"})
		return
	}
	v.VenueID = id

	if err := h.venueService.UpsertVenue(r.Context(), v); err != nil {
		writeError(w, err)
		return
	}
	log.Printf("[AdminHandler] %s upserted venue %s", middleware.AdminID(r.Context()), id)
	writeJSON(w, http.StatusOK, v)
}

// SetDateSlots handles PUT /v1/admin/venues/{id}/slots/{date}
func (h *AdminHandler) SetDateSlots(w http.ResponseWriter, r *http.Request) {
	var curated []slot.Slot
	if !decodeBody(w, r, &curated) {
		return
	}
	vars := mux.Vars(r)
	stored, err := h.venueService.SetDateSlots(r.Context(), vars["id"], vars["date"], curated)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

// GenerateDateSlots handles POST /v1/admin/venues/{id}/slots/{date}/generate
func (h *AdminHandler) GenerateDateSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	generated, err := h.venueService.GenerateDateSlots(r.Context(), vars["id"], vars["date"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, generated)
}

// PreviewLegacySlots handles GET /v1/admin/venues/{id}/slots/legacy-preview
func (h *AdminHandler) PreviewLegacySlots(w http.ResponseWriter, r *http.Request) {
	preview, err := h.venueService.PreviewLegacySlots(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preview)
}

// GetDailyReport handles GET /v1/admin/venues/{id}/report.pdf?date=
func (h *AdminHandler) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	venueID := mux.Vars(r)["id"]
	date := r.URL.Query().Get(DATE_QUERY_ARG)

	avail, err := h.venueService.GetAvailableSlots(ctx, venueID, date)
	if err != nil {
		writeError(w, err)
		return
	}
	v, err := h.venueService.GetVenue(ctx, venueID)
	if err != nil {
		writeError(w, err)
		return
	}

	slots := make([]slot.Slot, 0, len(avail.Slots))
	for _, s := range avail.Slots {
		slots = append(slots, s.Slot)
	}
	pdf, err := report.DailySlotReport(v, date, slots)
	if err != nil {
		writeError(w, err)
		return
	}
	writePDF(w, venueID+"-"+date+".pdf", pdf)
}
