package expo

import (
	"context"
	"strings"
)

// PushMessage is one Expo push notification.
type PushMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title,omitempty"`
	Body  string            `json:"body"`
	Sound string            `json:"sound,omitempty"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushTicket is Expo's per-message receipt of a send request.
type PushTicket struct {
	Status  string                 `json:"status"`
	ID      string                 `json:"id,omitempty"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PushAPI defines the interface for sending push notifications to the mobile app
type PushAPI interface {
	SendPush(ctx context.Context, messages ...PushMessage) ([]PushTicket, error)
}

// IsExpoPushToken reports whether token looks like an Expo device token.
func IsExpoPushToken(token string) bool {
	return (strings.HasPrefix(token, "ExponentPushToken[") || strings.HasPrefix(token, "ExpoPushToken[")) &&
		strings.HasSuffix(token, "]")
}
