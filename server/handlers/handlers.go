package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"arena-pro/dao/redis"
	services "arena-pro/service"
	"arena-pro/slots"
	"arena-pro/squad"
)

const (
	LAT_QUERY_ARG    = "lat"
	LON_QUERY_ARG    = "lon"
	RADIUS_QUERY_ARG = "radius"
	DATE_QUERY_ARG   = "date"

	DEFAULT_RADIUS_KM = 10.0
	MAX_BODY_BYTES    = 1 << 20
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}

func writePDF(w http.ResponseWriter, filename string, pdf []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Println("Internal error:", err)
		msg = "Internal server error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, redis.ErrVenueNotFound), errors.Is(err, redis.ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidRequest),
		errors.Is(err, services.ErrInvalidDate),
		errors.Is(err, slots.ErrMalformedTime),
		errors.Is(err, squad.ErrInvalidSquadConfiguration):
		return http.StatusBadRequest
	case errors.Is(err, slots.ErrNoOperatingHours):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotOrganizer):
		return http.StatusForbidden
	case errors.Is(err, services.ErrSlotUnavailable),
		errors.Is(err, squad.ErrSquadFull),
		errors.Is(err, squad.ErrAlreadyJoined),
		errors.Is(err, squad.ErrOrganizerCannotJoin),
		errors.Is(err, squad.ErrBookingCancelled):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body: " + err.Error()})
		return false
	}
	return true
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}
