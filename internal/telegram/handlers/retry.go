package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/avast/retry-go/v4"
	pkgRetry "github.com/futig/realtor-bot/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// isRetryableSend reports whether a failed Send is worth repeating. Telegram
// rejects malformed or forbidden messages the same way every time.
func isRetryableSend(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return tgErr.Code == http.StatusTooManyRequests || tgErr.Code >= http.StatusInternalServerError
	}
	return true
}

// sendWithRetry sends a message that must be delivered, e.g. the one carrying
// the contact keyboard.
func sendWithRetry(ctx context.Context, api API, msg tgbotapi.Chattable, cfg *pkgRetry.RetryConfig, chatID int64) error {
	attempt := 0
	err := retry.Do(
		func() error {
			attempt++
			_, err := api.Send(msg)
			return err
		},
		append(cfg.ToRetryOptions(ctx, isRetryableSend),
			retry.OnRetry(func(n uint, err error) {
				ctxzap.Warn(ctx, "failed to send message, retrying",
					zap.Error(err),
					zap.Uint("attempt", n+1),
					zap.Int64("chat_id", chatID),
				)
			}),
		)...,
	)
	if err != nil {
		ctxzap.Error(ctx, "failed to send message after all retries",
			zap.Error(err),
			zap.Int("attempts", attempt),
			zap.Int64("chat_id", chatID),
		)
		return err
	}

	if attempt > 1 {
		ctxzap.Info(ctx, "message sent after retry",
			zap.Int("attempt", attempt),
			zap.Int64("chat_id", chatID),
		)
	}
	return nil
}
