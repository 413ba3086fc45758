package handlers

import (
	"context"
	"fmt"

	"github.com/futig/realtor-bot/internal/pkg/validator"
	"go.uber.org/zap"
)

// ContactHandler receives the phone number shared through the contact keyboard
type ContactHandler struct {
	BaseHandler
	api          API
	conversation ConversationUsecase
	logger       *zap.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(api API, sender *MessageSender, conversation ConversationUsecase, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		BaseHandler: BaseHandler{
			kind:          HandlerKindContact,
			messageSender: sender,
		},
		api:          api,
		conversation: conversation,
		logger:       logger,
	}
}

// Handle implements Handler
func (h *ContactHandler) Handle(ctx context.Context, msg *Message) error {
	phone, err := validator.NormalizePhone(msg.Phone)
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	typing := NewTypingNotifier(h.api, msg.ChatID, h.logger)
	typing.Start(ctx)
	res, err := h.conversation.ShareContact(ctx, msg.User, phone)
	typing.Stop()
	if err != nil {
		h.HandleError(ctx, msg.ChatID, err)
		return nil
	}

	if err := h.messageSender.SendTurn(ctx, msg.ChatID, res); err != nil {
		return fmt.Errorf("send turn: %w", err)
	}
	return nil
}
