package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/realtor-bot/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// TextHandler feeds free-text messages into the conversation
type TextHandler struct {
	BaseHandler
	api          API
	conversation ConversationUsecase
	logger       *zap.Logger
}

// NewTextHandler creates a new text handler
func NewTextHandler(api API, sender *MessageSender, conversation ConversationUsecase, logger *zap.Logger) *TextHandler {
	return &TextHandler{
		BaseHandler: BaseHandler{
			kind:          HandlerKindText,
			messageSender: sender,
		},
		api:          api,
		conversation: conversation,
		logger:       logger,
	}
}

// Handle implements Handler
func (h *TextHandler) Handle(ctx context.Context, msg *Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return h.messageSender.Send(msg.ChatID, render.MsgUnsupported, nil)
	}

	// Searches hit the listings backend and can take a while.
	typing := NewTypingNotifier(h.api, msg.ChatID, h.logger)
	typing.Start(ctx)
	res, err := h.conversation.HandleText(ctx, msg.User, text, msg.ReplyTo)
	typing.Stop()
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	if err := h.messageSender.SendTurn(ctx, msg.ChatID, res); err != nil {
		return fmt.Errorf("send turn: %w", err)
	}

	ctxzap.Debug(ctx, "text handled",
		zap.Int("messages", len(res.Messages)),
		zap.Int("listings", len(res.Listings)),
	)
	return nil
}
