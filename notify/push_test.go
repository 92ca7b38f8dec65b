package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushChannel_Send(t *testing.T) {
	var got pushPayload
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ch := NewPushChannel(srv.URL, "server-key")
	err := ch.Send(context.Background(), Notification{
		Channel:   "push",
		Recipient: "device-token-1",
		Message:   testMessage(),
	})

	require.NoError(t, err)
	assert.Equal(t, "key=server-key", gotAuth)
	assert.Equal(t, "device-token-1", got.To)
	assert.Equal(t, "Your pet has been found!", got.Notification.Title)
	assert.Equal(t, "pet-1", got.Data["pet_id"])
	assert.JSONEq(t, `{"lat":40.7,"lng":-74.0}`, got.Data["location"])
}

func TestPushChannel_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"InvalidRegistration"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	ch := NewPushChannel(srv.URL, "server-key")
	err := ch.Send(context.Background(), Notification{Recipient: "bad-token", Message: testMessage()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=400")
}

func TestPushChannel_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ch := NewPushChannel(srv.URL, "server-key")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ch.Send(ctx, Notification{Recipient: "device", Message: testMessage()})
	require.Error(t, err)
}
