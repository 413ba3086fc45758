package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDoRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/items", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "realtor-bot-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "x", body["q"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 12345678901}`))
	}))
	defer srv.Close()

	c := NewConnector(
		&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()},
		WithAuthToken("secret"),
		WithUserAgent("realtor-bot-test"),
		WithRequestLogging(),
	)

	var resp map[string]any
	err := c.DoRequest(context.Background(), http.MethodPost, "/api/items", map[string]string{"q": "x"}, &resp, WithNumbers())
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901"), resp["total"])
}

func TestDoRequestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad filters", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()})

	err := c.DoRequest(context.Background(), http.MethodGet, "/", nil, nil)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "bad filters")
	assert.False(t, IsRetryable(err))
}

func TestDoRequestEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewConnector(&ConnectorConfig{BaseURL: srv.URL, Logger: zap.NewNop()})

	var resp map[string]any
	require.NoError(t, c.DoRequest(context.Background(), http.MethodGet, "/", nil, &resp))
	assert.Nil(t, resp)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "network", err: &NetworkError{Err: errors.New("refused")}, want: true},
		{name: "server error", err: &HTTPError{StatusCode: 502}, want: true},
		{name: "too many requests", err: &HTTPError{StatusCode: 429}, want: true},
		{name: "client error", err: &HTTPError{StatusCode: 404}, want: false},
		{name: "canceled", err: &NetworkError{Err: context.Canceled}, want: false},
		{name: "other", err: errors.New("decode response"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestRedactPayload(t *testing.T) {
	got := redactPayload([]byte(`{"key":"abc","limit":3}`))
	assert.JSONEq(t, `{"key":"***","limit":3}`, string(got))

	raw := []byte(`[1,2]`)
	assert.Equal(t, raw, redactPayload(raw))

	plain := []byte(`{"limit":3}`)
	assert.Equal(t, plain, redactPayload(plain))
}
