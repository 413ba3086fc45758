package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	bookingsapi "github.com/futig/realtor-bot/internal/api/bookings"
	parsingapi "github.com/futig/realtor-bot/internal/api/parsing"
	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeParsing struct {
	lastMerge *entity.MergeRequest
}

func (f *fakeParsing) Extract(_ context.Context, req *entity.ExtractRequest) *entity.ExtractResponse {
	return &entity.ExtractResponse{
		Answers:  entity.Answers{entity.KeyRoomsIn: 2},
		Location: &entity.Location{MicroareaID: 116, DistrictText: "Таїрова"},
	}
}

func (f *fakeParsing) Merge(_ context.Context, req *entity.MergeRequest) *entity.MergeResponse {
	f.lastMerge = req
	return &entity.MergeResponse{
		Answers: req.Answers,
		Filters: entity.Filters{PriceMax: 54000},
		Missing: []string{"type"},
		Summary: "до $54 000",
	}
}

type fakeBookings struct {
	format entity.ExportFormat
	since  time.Time
	limit  int
}

func (f *fakeBookings) Export(_ context.Context, format entity.ExportFormat, since time.Time, limit int) (*entity.ExportFile, error) {
	f.format, f.since, f.limit = format, since, limit
	return &entity.ExportFile{
		Filename:    "bookings.md",
		ContentType: "text/markdown; charset=utf-8",
		Data:        []byte("# Заявки"),
		Rows:        0,
	}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeParsing, *fakeBookings) {
	t.Helper()
	p := &fakeParsing{}
	b := &fakeBookings{}
	router := SetupRouter(
		parsingapi.NewHandler(p, validator.New()),
		bookingsapi.NewHandler(b),
		zap.NewNop(),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, p, b
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
}

func TestSwaggerYAML(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/docs/swagger.yaml")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "/api/v1/extract")
}

func TestExtractEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/extract", "application/json", strings.NewReader(`{"text":"2к на Таїрова"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body entity.ExtractResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(2), body.Answers[entity.KeyRoomsIn])
	require.NotNil(t, body.Location)
	assert.Equal(t, 116, body.Location.MicroareaID)
}

func TestExtractValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty text", body: `{"text":"  "}`},
		{name: "malformed json", body: `{"text":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/v1/extract", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body entity.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "Bad Request", body.Error)
		})
	}
}

func TestMergeEndpoint(t *testing.T) {
	srv, p, _ := newTestServer(t)

	payload := `{"answers":{"rooms_in":2,"microarea_id":116},"utterance":"дешевше","prior_filters":{"price_max":60000}}`
	resp, err := http.Post(srv.URL+"/api/v1/merge", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, p.lastMerge)
	assert.Equal(t, json.Number("2"), p.lastMerge.Answers[entity.KeyRoomsIn])
	require.NotNil(t, p.lastMerge.PriorFilters)
	assert.Equal(t, 60000, p.lastMerge.PriorFilters.PriceMax)

	var body entity.MergeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"type"}, body.Missing)
	assert.Equal(t, 54000, body.Filters.PriceMax)
}

func TestExportEndpoint(t *testing.T) {
	srv, _, b := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/bookings/export?format=md&since=2026-10-01&limit=50")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/markdown; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="bookings.md"`)
	assert.Equal(t, entity.FormatMarkdown, b.format)
	assert.Equal(t, 50, b.limit)
	assert.Equal(t, 2026, b.since.Year())
}

func TestExportEndpointBadParams(t *testing.T) {
	srv, _, _ := newTestServer(t)

	for _, query := range []string{"format=xlsx", "since=yesterday", "limit=-1"} {
		t.Run(query, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/api/v1/bookings/export?" + query)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
