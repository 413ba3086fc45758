package callback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/futig/realtor-bot/internal/config"
	"github.com/futig/realtor-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotifyBooking(t *testing.T) {
	var (
		body      map[string]any
		requestID string
		auth      string
		path      string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		requestID = r.Header.Get("X-Request-ID")
		auth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewConnector(config.WebhookConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:            srv.URL,
			Token:          "tok",
			RequestTimeout: 5 * time.Second,
		},
		Path: "/hooks/bookings",
	}, zap.NewNop())

	err := c.NotifyBooking(context.Background(), &entity.Booking{
		ID:        "b-1",
		FullName:  "Ігор",
		Phone:     "+380671234567",
		Intent:    entity.IntentView,
		ListingID: "10452",
	})
	require.NoError(t, err)

	assert.Equal(t, "/hooks/bookings", path)
	assert.Equal(t, "b-1", requestID)
	assert.Contains(t, auth, "tok")
	assert.Equal(t, "booking", body["event"])
	assert.NotEmpty(t, body["timestamp"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "10452", data["listing_id"])
	assert.Equal(t, "+380671234567", data["phone"])
}

func TestNotifyBookingServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewConnector(config.WebhookConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{Url: srv.URL, RequestTimeout: time.Second},
	}, zap.NewNop())

	err := c.NotifyBooking(context.Background(), &entity.Booking{ID: "b-2"})
	assert.Error(t, err)
}
