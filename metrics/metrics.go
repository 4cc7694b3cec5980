// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_pro_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "arena_pro_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRequestsRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_pro_http_requests_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	// Bookings
	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_pro_bookings_created_total",
			Help: "Bookings created",
		},
	)

	BookingsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_pro_bookings_cancelled_total",
			Help: "Bookings cancelled",
		},
	)

	BookingConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_pro_booking_conflicts_total",
			Help: "Booking attempts rejected because the slot was taken or not offered",
		},
	)

	SquadJoins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_pro_squad_joins_total",
			Help: "Squad join attempts by outcome",
		},
		[]string{"status"},
	)

	// Slots
	SlotsResolved = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "arena_pro_slots_resolved",
			Help:    "Number of slots returned by an availability lookup",
			Buckets: []float64{0, 1, 4, 8, 12, 16, 20, 24},
		},
	)

	UnconfiguredDateLookups = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_pro_unconfigured_date_lookups_total",
			Help: "Availability lookups for dates with no curated slots",
		},
	)

	SlotsPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_pro_slots_pruned_dates_total",
			Help: "Past dates removed by the calendar janitor",
		},
	)

	// Notifications
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "arena_pro_notifications_sent_total",
			Help: "Push notifications by type and status",
		},
		[]string{"type", "status"},
	)

	// Live availability
	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "arena_pro_websocket_clients",
			Help: "Connected availability websocket clients",
		},
	)
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func RecordBookingCreated() {
	BookingsCreated.Inc()
}

func RecordBookingCancelled() {
	BookingsCancelled.Inc()
}

func RecordBookingConflict() {
	BookingConflicts.Inc()
}

// RecordSquadJoin records a join attempt; status is "ok" or the failure kind.
func RecordSquadJoin(status string) {
	SquadJoins.WithLabelValues(status).Inc()
}

// RecordSlotsResolved records an availability lookup result size.
func RecordSlotsResolved(count int, configured bool) {
	SlotsResolved.Observe(float64(count))
	if !configured {
		UnconfiguredDateLookups.Inc()
	}
}

func RecordSlotsPruned(dates int) {
	SlotsPruned.Add(float64(dates))
}

func RecordNotification(notificationType, status string) {
	NotificationsSent.WithLabelValues(notificationType, status).Inc()
}
