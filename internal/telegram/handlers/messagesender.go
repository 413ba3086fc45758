package handlers

import (
	"context"

	pkgRetry "github.com/futig/realtor-bot/internal/pkg/retry"
	"github.com/futig/realtor-bot/internal/telegram/keyboard"
	"github.com/futig/realtor-bot/internal/telegram/render"
	"github.com/futig/realtor-bot/internal/usecase/conversation"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// MessageSender provides centralized message sending functionality
type MessageSender struct {
	api      API
	keyboard *keyboard.Builder
	retry    *pkgRetry.RetryConfig
	logger   *zap.Logger
}

// NewMessageSender creates a new MessageSender
func NewMessageSender(api API, kb *keyboard.Builder, retryCfg *pkgRetry.RetryConfig, logger *zap.Logger) *MessageSender {
	if retryCfg == nil {
		retryCfg = pkgRetry.DefaultRetryConfig()
	}
	return &MessageSender{
		api:      api,
		keyboard: kb,
		retry:    retryCfg,
		logger:   logger,
	}
}

// Send sends a message to the specified chat
func (s *MessageSender) Send(chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	_, err := s.api.Send(msg)
	if err != nil {
		s.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return err
	}

	return nil
}

// SendTurn delivers a conversation turn: the texts, one message per listing,
// then the paging footer. The keyboard change rides on the first text.
func (s *MessageSender) SendTurn(ctx context.Context, chatID int64, res *conversation.TurnResult) error {
	if res == nil {
		return nil
	}

	markup := s.turnMarkup(res)
	for i, text := range res.Messages {
		msg := tgbotapi.NewMessage(chatID, text)
		if i == 0 && markup != nil {
			msg.ReplyMarkup = markup
			// The keyboard message is retried, the rest are sent once.
			if err := sendWithRetry(ctx, s.api, msg, s.retry, chatID); err != nil {
				return err
			}
			continue
		}
		if _, err := s.api.Send(msg); err != nil {
			return err
		}
	}

	for _, it := range res.Listings {
		msg := tgbotapi.NewMessage(chatID, render.ListingCaption(it))
		msg.DisableWebPagePreview = true
		if _, err := s.api.Send(msg); err != nil {
			return err
		}
	}

	if res.Footer != "" {
		if _, err := s.api.Send(tgbotapi.NewMessage(chatID, res.Footer)); err != nil {
			return err
		}
	}

	return nil
}

func (s *MessageSender) turnMarkup(res *conversation.TurnResult) interface{} {
	switch {
	case res.RequestContact:
		return s.keyboard.ContactKeyboard()
	case res.RemoveKeyboard:
		return s.keyboard.RemoveKeyboard()
	default:
		return nil
	}
}
