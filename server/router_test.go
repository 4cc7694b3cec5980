package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

// mockHandler answers every route with its own name.
type mockHandler struct{}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body + ":" + mux.Vars(r)["id"]))
	}
}

func (mockHandler) Ping(w http.ResponseWriter, r *http.Request) {
	reply("ping")(w, r)
}

func (mockHandler) GetVenuesNearby(w http.ResponseWriter, r *http.Request) {
	reply("nearby")(w, r)
}

func (mockHandler) GetPriceQuote(w http.ResponseWriter, r *http.Request) {
	reply("price")(w, r)
}

func (mockHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	reply("slots")(w, r)
}

func (mockHandler) GetPriceChart(w http.ResponseWriter, r *http.Request) {
	reply("chart")(w, r)
}

func (mockHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	reply("create")(w, r)
}

func (mockHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	reply("booking")(w, r)
}

func (mockHandler) GetSquadStatus(w http.ResponseWriter, r *http.Request) {
	reply("squad")(w, r)
}

func (mockHandler) JoinSquad(w http.ResponseWriter, r *http.Request) {
	reply("join")(w, r)
}

func (mockHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	reply("cancel")(w, r)
}

func (mockHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	reply("receipt")(w, r)
}

func (mockHandler) UpsertVenue(w http.ResponseWriter, r *http.Request) {
	reply("upsert")(w, r)
}

func (mockHandler) SetDateSlots(w http.ResponseWriter, r *http.Request) {
	reply("set-slots")(w, r)
}

func (mockHandler) GenerateDateSlots(w http.ResponseWriter, r *http.Request) {
	reply("generate")(w, r)
}

func (mockHandler) PreviewLegacySlots(w http.ResponseWriter, r *http.Request) {
	reply("legacy")(w, r)
}

func (mockHandler) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	reply("report")(w, r)
}

func denyAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Admin") != "yes" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	h := mockHandler{}
	router := mux.NewRouter()
	appRouter := NewRouter(h, h, h, reply("ws"), denyAll, router)
	appRouter.RegisterRoutes()

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		admin      bool
		statusCode int
		response   string
	}{
		{name: "Ping Route", method: "GET", path: "/ping", statusCode: http.StatusOK, response: "ping:"},
		{name: "Metrics", method: "GET", path: "/metrics", statusCode: http.StatusOK},
		{name: "Get Venues Nearby", method: "GET", path: "/v1/venues/nearby", statusCode: http.StatusOK, response: "nearby:"},
		{name: "Price", method: "GET", path: "/v1/venues/v1/price", statusCode: http.StatusOK, response: "price:v1"},
		{name: "Slots", method: "GET", path: "/v1/venues/v1/slots?date=2030-05-10", statusCode: http.StatusOK, response: "slots:v1"},
		{name: "Chart", method: "GET", path: "/v1/venues/v1/slots/chart", statusCode: http.StatusOK, response: "chart:v1"},
		{name: "Websocket", method: "GET", path: "/v1/venues/v1/ws", statusCode: http.StatusOK, response: "ws:v1"},
		{name: "Create Booking", method: "POST", path: "/v1/bookings", statusCode: http.StatusOK, response: "create:"},
		{name: "Get Booking", method: "GET", path: "/v1/bookings/b1", statusCode: http.StatusOK, response: "booking:b1"},
		{name: "Squad", method: "GET", path: "/v1/bookings/b1/squad", statusCode: http.StatusOK, response: "squad:b1"},
		{name: "Join", method: "POST", path: "/v1/bookings/b1/squad/join", statusCode: http.StatusOK, response: "join:b1"},
		{name: "Cancel", method: "POST", path: "/v1/bookings/b1/cancel", statusCode: http.StatusOK, response: "cancel:b1"},
		{name: "Receipt", method: "GET", path: "/v1/bookings/b1/receipt.pdf", statusCode: http.StatusOK, response: "receipt:b1"},
		{name: "Admin Upsert", method: "PUT", path: "/v1/admin/venues/v1", admin: true, statusCode: http.StatusOK, response: "upsert:v1"},
		{name: "Admin Set Slots", method: "PUT", path: "/v1/admin/venues/v1/slots/2030-05-10", admin: true, statusCode: http.StatusOK, response: "set-slots:v1"},
		{name: "Admin Generate", method: "POST", path: "/v1/admin/venues/v1/slots/2030-05-10/generate", admin: true, statusCode: http.StatusOK, response: "generate:v1"},
		{name: "Admin Legacy", method: "GET", path: "/v1/admin/venues/v1/slots/legacy-preview", admin: true, statusCode: http.StatusOK, response: "legacy:v1"},
		{name: "Admin Report", method: "GET", path: "/v1/admin/venues/v1/report.pdf", admin: true, statusCode: http.StatusOK, response: "report:v1"},
		{name: "Admin Without Token", method: "PUT", path: "/v1/admin/venues/v1", statusCode: http.StatusUnauthorized},
		{name: "Wrong Method", method: "DELETE", path: "/v1/bookings", statusCode: http.StatusMethodNotAllowed},
		{name: "Invalid Route", method: "GET", path: "/invalid", statusCode: http.StatusNotFound},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			if test.admin {
				req.Header.Set("X-Admin", "yes")
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}
