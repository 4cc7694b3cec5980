package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"arena-pro/metrics"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 5 * time.Second

// AvailabilityEvent tells subscribed clients to refetch a date's slots.
type AvailabilityEvent struct {
	Type    string `json:"type"`
	VenueID string `json:"venueId"`
	Date    string `json:"date"`
}

// Hub fans availability changes out to the websocket clients watching a venue.
type Hub struct {
	upgrader    websocket.Upgrader
	subscribers map[string]map[*websocket.Conn]struct{}
	mu          sync.Mutex

	// gorilla connections allow a single concurrent writer
	writeMu sync.Mutex
}

func NewHub(allowedOrigins []string) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
		subscribers: make(map[string]map[*websocket.Conn]struct{}),
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeWS handles GET /v1/venues/{id}/ws
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	venueID := mux.Vars(r)["id"]

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Hub] WebSocket upgrade failed for venue %s: %v", venueID, err)
		return
	}

	h.subscribe(venueID, conn)
	defer h.unsubscribe(venueID, conn)

	// Clients never send anything; reading only detects the disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) subscribe(venueID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscribers[venueID] == nil {
		h.subscribers[venueID] = make(map[*websocket.Conn]struct{})
	}
	h.subscribers[venueID][conn] = struct{}{}
	metrics.WebsocketClients.Inc()
}

func (h *Hub) unsubscribe(venueID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[venueID][conn]; !ok {
		return
	}
	delete(h.subscribers[venueID], conn)
	if len(h.subscribers[venueID]) == 0 {
		delete(h.subscribers, venueID)
	}
	conn.Close()
	metrics.WebsocketClients.Dec()
}

// BroadcastAvailability notifies every client watching venueID. Clients that
// cannot be written to are dropped.
func (h *Hub) BroadcastAvailability(venueID, date string) {
	payload, err := json.Marshal(AvailabilityEvent{Type: "availability_changed", VenueID: venueID, Date: date})
	if err != nil {
		log.Printf("[Hub] Failed to encode event: %v", err)
		return
	}

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.subscribers[venueID]))
	for c := range h.subscribers[venueID] {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	for _, c := range conns {
		c.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := c.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("[Hub] Dropping client of venue %s: %v", venueID, err)
			h.unsubscribe(venueID, c)
		}
	}
}

// Subscribers returns how many clients watch venueID.
func (h *Hub) Subscribers(venueID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers[venueID])
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for venueID, conns := range h.subscribers {
		for c := range conns {
			c.Close()
			metrics.WebsocketClients.Dec()
		}
		delete(h.subscribers, venueID)
	}
}
