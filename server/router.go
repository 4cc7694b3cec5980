package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// VenueRoutes is served by handlers.VenueHandler.
type VenueRoutes interface {
	Ping(w http.ResponseWriter, r *http.Request)
	GetVenuesNearby(w http.ResponseWriter, r *http.Request)
	GetPriceQuote(w http.ResponseWriter, r *http.Request)
	GetAvailableSlots(w http.ResponseWriter, r *http.Request)
	GetPriceChart(w http.ResponseWriter, r *http.Request)
}

// BookingRoutes is served by handlers.BookingHandler.
type BookingRoutes interface {
	CreateBooking(w http.ResponseWriter, r *http.Request)
	GetBooking(w http.ResponseWriter, r *http.Request)
	GetSquadStatus(w http.ResponseWriter, r *http.Request)
	JoinSquad(w http.ResponseWriter, r *http.Request)
	CancelBooking(w http.ResponseWriter, r *http.Request)
	GetReceipt(w http.ResponseWriter, r *http.Request)
}

// AdminRoutes is served by handlers.AdminHandler.
type AdminRoutes interface {
	UpsertVenue(w http.ResponseWriter, r *http.Request)
	SetDateSlots(w http.ResponseWriter, r *http.Request)
	GenerateDateSlots(w http.ResponseWriter, r *http.Request)
	PreviewLegacySlots(w http.ResponseWriter, r *http.Request)
	GetDailyReport(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	venueHandler   VenueRoutes
	bookingHandler BookingRoutes
	adminHandler   AdminRoutes
	wsHandler      http.HandlerFunc
	requireAdmin   mux.MiddlewareFunc
	router         *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	venueHandler VenueRoutes,
	bookingHandler BookingRoutes,
	adminHandler AdminRoutes,
	wsHandler http.HandlerFunc,
	requireAdmin mux.MiddlewareFunc,
	router *mux.Router) *Router {
	return &Router{
		venueHandler:   venueHandler,
		bookingHandler: bookingHandler,
		adminHandler:   adminHandler,
		wsHandler:      wsHandler,
		requireAdmin:   requireAdmin,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.venueHandler.Ping).Methods("GET")
	r.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={km(float), optional}
	r.router.HandleFunc("/v1/venues/nearby", r.venueHandler.GetVenuesNearby).Methods("GET")
	r.router.HandleFunc("/v1/venues/{id}/price", r.venueHandler.GetPriceQuote).Methods("GET")
	// expects ?date=YYYY-MM-DD
	r.router.HandleFunc("/v1/venues/{id}/slots", r.venueHandler.GetAvailableSlots).Methods("GET")
	r.router.HandleFunc("/v1/venues/{id}/slots/chart", r.venueHandler.GetPriceChart).Methods("GET")
	if r.wsHandler != nil {
		r.router.HandleFunc("/v1/venues/{id}/ws", r.wsHandler).Methods("GET")
	}

	r.router.HandleFunc("/v1/bookings", r.bookingHandler.CreateBooking).Methods("POST")
	r.router.HandleFunc("/v1/bookings/{id}", r.bookingHandler.GetBooking).Methods("GET")
	r.router.HandleFunc("/v1/bookings/{id}/squad", r.bookingHandler.GetSquadStatus).Methods("GET")
	r.router.HandleFunc("/v1/bookings/{id}/squad/join", r.bookingHandler.JoinSquad).Methods("POST")
	r.router.HandleFunc("/v1/bookings/{id}/cancel", r.bookingHandler.CancelBooking).Methods("POST")
	r.router.HandleFunc("/v1/bookings/{id}/receipt.pdf", r.bookingHandler.GetReceipt).Methods("GET")

	admin := r.router.PathPrefix("/v1/admin").Subrouter()
	if r.requireAdmin != nil {
		admin.Use(r.requireAdmin)
	}
	admin.HandleFunc("/venues/{id}", r.adminHandler.UpsertVenue).Methods("PUT")
	admin.HandleFunc("/venues/{id}/slots/legacy-preview", r.adminHandler.PreviewLegacySlots).Methods("GET")
	admin.HandleFunc("/venues/{id}/slots/{date}", r.adminHandler.SetDateSlots).Methods("PUT")
	admin.HandleFunc("/venues/{id}/slots/{date}/generate", r.adminHandler.GenerateDateSlots).Methods("POST")
	admin.HandleFunc("/venues/{id}/report.pdf", r.adminHandler.GetDailyReport).Methods("GET")
}
