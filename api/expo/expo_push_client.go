package expo

import (
	"context"
	"fmt"
	"log"

	"arena-pro/api"
)

const pushSendEndpoint = "/push/send"

// ExpoPushClient embeds the common HTTPClient
type ExpoPushClient struct {
	*api.HTTPClient
	accessToken string
}

type pushResponse struct {
	Data   []PushTicket `json:"data"`
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// NewExpoPushClient creates a new instance of ExpoPushClient
func NewExpoPushClient(httpClient *api.HTTPClient) *ExpoPushClient {
	return &ExpoPushClient{HTTPClient: httpClient}
}

// SetAccessToken enables Expo's enhanced push security.
func (c *ExpoPushClient) SetAccessToken(token string) {
	c.accessToken = token
}

// SendPush delivers messages to Expo. Messages with tokens that are not Expo
// tokens are dropped before the request.
func (c *ExpoPushClient) SendPush(ctx context.Context, messages ...PushMessage) ([]PushTicket, error) {
	valid := make([]PushMessage, 0, len(messages))
	for _, m := range messages {
		if !IsExpoPushToken(m.To) {
			log.Printf("[ExpoPushClient] Skipping invalid push token %q", m.To)
			continue
		}
		valid = append(valid, m)
	}
	if len(valid) == 0 {
		return nil, nil
	}

	headers := map[string]string{}
	if c.accessToken != "" {
		headers["Authorization"] = "Bearer " + c.accessToken
	}

	var response pushResponse
	if err := c.Request(ctx, "POST", pushSendEndpoint, headers, valid, &response); err != nil {
		return nil, fmt.Errorf("expo push request failed: %w", err)
	}
	if len(response.Errors) > 0 {
		return nil, fmt.Errorf("expo push rejected: %s: %s", response.Errors[0].Code, response.Errors[0].Message)
	}

	for i, ticket := range response.Data {
		if ticket.Status != "ok" {
			log.Printf("[ExpoPushClient] Push %d failed: %s", i, ticket.Message)
		}
	}
	return response.Data, nil
}
