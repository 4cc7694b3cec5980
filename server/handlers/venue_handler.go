package handlers

import (
	"bytes"
	"log"
	"net/http"
	"net/url"

	"arena-pro/models/slot"
	services "arena-pro/service"
	"arena-pro/util"

	"github.com/gorilla/mux"
)

type VenueHandler struct {
	venueService *services.VenueService
}

func NewVenueHandler(venueService *services.VenueService) *VenueHandler {
	return &VenueHandler{venueService: venueService}
}

// GetVenuesNearby handles GET /v1/venues/nearby?lat=&lon=&radius=
func (h *VenueHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
	lat, lon, radius, ok := h.parseArgs(r.URL.Query(), w)
	if !ok {
		return // error already written
	}

	venues, err := h.venueService.GetVenuesNearby(r.Context(), lat, lon, radius)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, venues)
}

func (h *VenueHandler) parseArgs(vals url.Values, w http.ResponseWriter) (
	lat, lon, radius float64, ok bool,
) {
	var err error

	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return
	}
	lon, err = parseArgFloat64(vals, LON_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LON_QUERY_ARG, http.StatusBadRequest)
		return
	}
	radius = DEFAULT_RADIUS_KM
	if vals.Get(RADIUS_QUERY_ARG) != "" {
		radius, err = parseArgFloat64(vals, RADIUS_QUERY_ARG)
		if err != nil || radius <= 0 {
			http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
			return
		}
	}
	ok = true
	return
}

// GetPriceQuote handles GET /v1/venues/{id}/price
func (h *VenueHandler) GetPriceQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.venueService.GetPriceQuote(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// GetAvailableSlots handles GET /v1/venues/{id}/slots?date=YYYY-MM-DD
func (h *VenueHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	avail, err := h.venueService.GetAvailableSlots(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get(DATE_QUERY_ARG))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, avail)
}

// GetPriceChart handles GET /v1/venues/{id}/slots/chart?date=YYYY-MM-DD
func (h *VenueHandler) GetPriceChart(w http.ResponseWriter, r *http.Request) {
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

	var buf bytes.Buffer
	if err := util.RenderPriceChart(&buf, v.VenueName, date, slots, avail.DiscountPercentage); err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Ping handles GET /ping
func (h *VenueHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, http.StatusOK, map[string]string{"status": "pong"})
}
