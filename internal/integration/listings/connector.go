package listings

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/futig/realtor-bot/internal/config"
	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/integration/common"
	pkghttp "github.com/futig/realtor-bot/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Connector struct {
	config    config.ListingsConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.ListingsConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Search fetches one page of listings. The backend has two request dialects:
// list-valued "*_id"/"rooms_in" fields (mode A) and singular
// "district"/"microarea"/"rooms" fields (mode B). Mode A goes first; mode B
// is tried when A fails or comes back empty.
func (c *Connector) Search(ctx context.Context, filters entity.Filters, limit, offset int) (*entity.ListingPage, error) {
	page, errA := c.post(ctx, c.payloadModeA(filters, limit, offset))
	if errA == nil && len(page.Items) > 0 {
		ctxzap.Info(ctx, "listings fetched",
			zap.String("mode", "A"),
			zap.Int("items", len(page.Items)),
			zap.Int("total", page.Total),
		)
		page.Offset = offset
		return page, nil
	}
	if errA != nil {
		if errors.Is(errA, context.Canceled) || errors.Is(errA, context.DeadlineExceeded) {
			return nil, errA
		}
		ctxzap.Warn(ctx, "listings mode A failed, trying mode B", zap.Error(errA))
	}

	pageB, errB := c.post(ctx, c.payloadModeB(filters, limit, offset))
	if errB != nil {
		ctxzap.Error(ctx, "listings request failed", zap.Error(errB))
		return nil, fmt.Errorf("%w: %w", entity.ErrListingsUnavailable, errB)
	}

	ctxzap.Info(ctx, "listings fetched",
		zap.String("mode", "B"),
		zap.Int("items", len(pageB.Items)),
		zap.Int("total", pageB.Total),
	)
	pageB.Offset = offset
	return pageB, nil
}

func (c *Connector) post(ctx context.Context, payload map[string]any) (*entity.ListingPage, error) {
	var resp map[string]any

	err := retry.Do(
		func() error {
			resp = nil
			return c.connector.DoRequest(ctx, http.MethodPost, c.config.Endpoint, payload, &resp, pkghttp.WithNumbers())
		},
		c.config.Retry.ToRetryOptions(ctx, pkghttp.IsRetryable)...,
	)
	if err != nil {
		return nil, err
	}

	return unpack(resp), nil
}

func (c *Connector) basePayload(limit, offset int) map[string]any {
	return map[string]any{
		"key":     c.config.APIKey,
		"limit":   limit,
		"offset":  offset,
		"section": c.config.Section,
	}
}

func (c *Connector) payloadModeA(f entity.Filters, limit, offset int) map[string]any {
	body := c.basePayload(limit, offset)
	if f.MicroareaID != 0 {
		body["microarea_id"] = []int{f.MicroareaID}
	}
	if f.DistrictID != 0 {
		body["district_id"] = []int{f.DistrictID}
	}
	if f.RoomsIn != 0 {
		body["rooms_in"] = []int{f.RoomsIn}
	}
	if f.PriceMax != 0 {
		body["price_max"] = f.PriceMax
	}
	return body
}

func (c *Connector) payloadModeB(f entity.Filters, limit, offset int) map[string]any {
	body := c.basePayload(limit, offset)
	if f.MicroareaID != 0 {
		body["microarea"] = f.MicroareaID
	}
	if f.DistrictID != 0 {
		body["district"] = f.DistrictID
	}
	if f.RoomsIn != 0 {
		body["rooms"] = f.RoomsIn
	}
	if f.PriceMax != 0 {
		body["price_max"] = f.PriceMax
	}
	return body
}

func unpack(data map[string]any) *entity.ListingPage {
	raw, _ := firstList(data, "results", "items")

	page := &entity.ListingPage{Items: make([]entity.Listing, 0, len(raw))}
	for _, it := range raw {
		obj, ok := it.(map[string]any)
		if !ok {
			continue
		}
		page.Items = append(page.Items, toListing(obj))
	}

	page.Total = firstNumber(data, "total", "count")
	if page.Total == 0 {
		page.Total = len(page.Items)
	}
	return page
}

func firstList(data map[string]any, keys ...string) ([]any, bool) {
	for _, k := range keys {
		if l, ok := data[k].([]any); ok && len(l) > 0 {
			return l, true
		}
	}
	return nil, false
}

func firstNumber(data map[string]any, keys ...string) int {
	for _, k := range keys {
		if n, ok := asInt(data[k]); ok && n != 0 {
			return n
		}
	}
	return 0
}

func firstString(data map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(data[k]); s != "" {
			return s
		}
	}
	return ""
}
