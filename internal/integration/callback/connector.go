package callback

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/realtor-bot/internal/config"
	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/integration/common"
	pkghttp "github.com/futig/realtor-bot/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector forwards recorded bookings to an external webhook, e.g. a
// spreadsheet or CRM bridge.
type Connector struct {
	config    config.WebhookConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.WebhookConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// NotifyBooking posts a booking event to the configured webhook
func (c *Connector) NotifyBooking(ctx context.Context, b *entity.Booking) error {
	return c.Send(ctx, b.ID, &entity.CallbackEvent{
		Event: entity.CallbackEventTypeBooking,
		Data:  b,
	})
}

func (c *Connector) Send(ctx context.Context, requestID string, event *entity.CallbackEvent) error {
	if event.Timestamp == "" {
		event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	ctxzap.Debug(ctx, "sending callback event",
		zap.String("event_type", string(event.Event)),
		zap.String("request_id", requestID),
		zap.String("timestamp", event.Timestamp),
	)

	opts := []pkghttp.RequestOpt{
		pkghttp.WithHeader("X-Request-ID", requestID),
	}

	err := c.connector.DoRequest(ctx, http.MethodPost, c.config.Path, event, nil, opts...)
	if err != nil {
		return fmt.Errorf("failed to send callback, event_type: %s, error: %w", string(event.Event), err)
	}

	ctxzap.Info(ctx, "callback sent successfully",
		zap.String("event_type", string(event.Event)),
		zap.String("request_id", requestID),
	)
	return nil
}
