package expo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"arena-pro/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPush(t *testing.T) {
	var received []PushMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/push/send", r.URL.Path)
		assert.Equal(t, "Bearer expo-secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{{"status": "ok", "id": "ticket-1"}},
		})
	}))
	defer srv.Close()

	client := NewExpoPushClient(api.NewHTTPClient(srv.URL))
	client.SetAccessToken("expo-secret")

	tickets, err := client.SendPush(context.Background(),
		PushMessage{To: "ExponentPushToken[abc]", Title: "Squad", Body: "Ravi joined"},
		PushMessage{To: "not-a-token", Body: "dropped"},
	)

	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "ExponentPushToken[abc]", received[0].To)
	require.Len(t, tickets, 1)
	assert.Equal(t, "ticket-1", tickets[0].ID)
}

func TestSendPush_NoValidTokensSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewExpoPushClient(api.NewHTTPClient(srv.URL))
	tickets, err := client.SendPush(context.Background(), PushMessage{To: "", Body: "x"})

	require.NoError(t, err)
	assert.Nil(t, tickets)
	assert.False(t, called)
}

func TestSendPush_RequestErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": []map[string]string{{"code": "PUSH_TOO_MANY_EXPERIENCE_IDS", "message": "mixed projects"}},
		})
	}))
	defer srv.Close()

	client := NewExpoPushClient(api.NewHTTPClient(srv.URL))
	_, err := client.SendPush(context.Background(), PushMessage{To: "ExpoPushToken[x]", Body: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PUSH_TOO_MANY_EXPERIENCE_IDS")
}

func TestIsExpoPushToken(t *testing.T) {
	assert.True(t, IsExpoPushToken("ExponentPushToken[xxxx]"))
	assert.True(t, IsExpoPushToken("ExpoPushToken[yyyy]"))
	assert.False(t, IsExpoPushToken("ExponentPushToken[xxxx"))
	assert.False(t, IsExpoPushToken("fcm:abcdef"))
	assert.False(t, IsExpoPushToken(""))
}

func TestExpoPushClientMock_RecordsMessages(t *testing.T) {
	mock := NewExpoPushClientMock()

	tickets, err := mock.SendPush(context.Background(), PushMessage{To: "ExpoPushToken[a]", Body: "one"})

	require.NoError(t, err)
	assert.Equal(t, "ok", tickets[0].Status)
	assert.Len(t, mock.Sent(), 1)
	assert.Equal(t, "one", mock.Sent()[0].Body)
}
