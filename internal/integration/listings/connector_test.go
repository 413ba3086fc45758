package listings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/futig/realtor-bot/internal/config"
	"github.com/futig/realtor-bot/internal/entity"
	pkgRetry "github.com/futig/realtor-bot/internal/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(url string) config.ListingsConnectorConfig {
	return config.ListingsConnectorConfig{
		HTTPClientConfig: config.HTTPClientConfig{
			Url:            url,
			RequestTimeout: 5 * time.Second,
		},
		APIKey:   "secret",
		Endpoint: "/api/get_apartments",
		Section:  "secondary",
		Retry:    pkgRetry.RetryConfig{Attempts: 2, Delay: time.Millisecond, MaxDelay: time.Millisecond},
	}
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return body
}

func TestSearchModeA(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/get_apartments", r.URL.Path)
		body := decodeBody(t, r)
		assert.Equal(t, "secret", body["key"])
		assert.Equal(t, "secondary", body["section"])
		assert.Equal(t, float64(3), body["limit"])
		assert.Equal(t, []any{float64(116)}, body["microarea_id"])
		assert.Equal(t, []any{float64(2)}, body["rooms_in"])
		assert.Equal(t, float64(60000), body["price_max"])
		assert.NotContains(t, body, "district_id")

		_, _ = w.Write([]byte(`{
			"results": [
				{"id": 101, "title": "2к на Таїрова", "price": 58000, "rooms": 2, "area_total": "54.5",
				 "address": {"city": "Одеса", "street_type": "вул.", "street": "Академіка Глушка", "house": "12"},
				 "condition_id": "8"}
			],
			"total": 14
		}`))
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	page, err := c.Search(context.Background(), entity.Filters{MicroareaID: 116, RoomsIn: 2, PriceMax: 60000}, 3, 0)
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, 14, page.Total)
	assert.True(t, page.HasMore())

	item := page.Items[0]
	assert.Equal(t, "101", item.ID)
	assert.Equal(t, "2к на Таїрова", item.Title)
	assert.Equal(t, float64(58000), item.Price)
	assert.Equal(t, 2, item.Rooms)
	assert.Equal(t, 54.5, item.Area)
	assert.Equal(t, "Одеса, вул. Академіка Глушка, 12", item.Address)
	assert.Equal(t, 8, item.Condition)
}

func TestSearchFallsBackToModeB(t *testing.T) {
	tests := []struct {
		name      string
		modeA     func(w http.ResponseWriter)
		wantCalls int32
	}{
		{
			name: "empty result",
			modeA: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte(`{"results": [], "total": 0}`))
			},
			wantCalls: 2,
		},
		{
			name: "bad request",
			modeA: func(w http.ResponseWriter) {
				http.Error(w, "unknown field rooms_in", http.StatusBadRequest)
			},
			wantCalls: 2,
		},
		{
			name: "server error retried",
			modeA: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				body := decodeBody(t, r)
				if _, ok := body["rooms_in"]; ok {
					tt.modeA(w)
					return
				}
				assert.Equal(t, float64(5), body["district"])
				assert.Equal(t, float64(2), body["rooms"])
				_, _ = w.Write([]byte(`{"items": [{"id": "a1", "name": "Квартира", "prices": {"value": 45000}}], "count": 1}`))
			}))
			defer srv.Close()

			c := NewConnector(testConfig(srv.URL), zap.NewNop())
			page, err := c.Search(context.Background(), entity.Filters{DistrictID: 5, RoomsIn: 2}, 3, 3)
			require.NoError(t, err)

			require.Len(t, page.Items, 1)
			assert.Equal(t, "a1", page.Items[0].ID)
			assert.Equal(t, "Квартира", page.Items[0].Title)
			assert.Equal(t, float64(45000), page.Items[0].Price)
			assert.Equal(t, 1, page.Total)
			assert.Equal(t, 3, page.Offset)
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestSearchUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewConnector(testConfig(srv.URL), zap.NewNop())
	_, err := c.Search(context.Background(), entity.Filters{RoomsIn: 1}, 3, 0)
	assert.ErrorIs(t, err, entity.ErrListingsUnavailable)
}

func TestUnpackFallbacks(t *testing.T) {
	page := unpack(map[string]any{
		"items": []any{
			map[string]any{"id": json.Number("7"), "headline": "Будинок", "location": "Фонтан", "condition": json.Number("9")},
			"garbage",
		},
	})

	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, "7", page.Items[0].ID)
	assert.Equal(t, "Будинок", page.Items[0].Title)
	assert.Equal(t, "Фонтан", page.Items[0].Address)
	assert.Equal(t, 9, page.Items[0].Condition)
}

func TestMockConnectorPaging(t *testing.T) {
	m := NewMockConnector(zap.NewNop())

	first, err := m.Search(context.Background(), entity.Filters{RoomsIn: 2, PriceMax: 50000}, 3, 0)
	require.NoError(t, err)
	require.Len(t, first.Items, 3)
	assert.True(t, first.HasMore())
	for _, it := range first.Items {
		assert.Equal(t, 2, it.Rooms)
		assert.LessOrEqual(t, it.Price, float64(50000))
	}

	last, err := m.Search(context.Background(), entity.Filters{}, 3, 6)
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.False(t, last.HasMore())
}
