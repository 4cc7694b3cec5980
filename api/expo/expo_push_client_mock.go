package expo

import (
	"context"
	"fmt"
	"sync"
)

// ExpoPushClientMock records pushes instead of sending them. Used outside prod.
type ExpoPushClientMock struct {
	mu   sync.Mutex
	sent []PushMessage
}

// NewExpoPushClientMock creates a new instance of ExpoPushClientMock
func NewExpoPushClientMock() *ExpoPushClientMock {
	return &ExpoPushClientMock{}
}

func (c *ExpoPushClientMock) SendPush(_ context.Context, messages ...PushMessage) ([]PushTicket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tickets := make([]PushTicket, 0, len(messages))
	for _, m := range messages {
		c.sent = append(c.sent, m)
		tickets = append(tickets, PushTicket{Status: "ok", ID: fmt.Sprintf("mock-%d", len(c.sent))})
	}
	return tickets, nil
}

// Sent returns a copy of everything pushed so far.
func (c *ExpoPushClientMock) Sent() []PushMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]PushMessage(nil), c.sent...)
}
