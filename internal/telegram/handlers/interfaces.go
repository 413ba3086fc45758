package handlers

import (
	"context"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/usecase/conversation"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ConversationUsecase is the subset of the conversation flow driven by chat updates
type ConversationUsecase interface {
	Start(ctx context.Context, user entity.User) (*conversation.TurnResult, error)
	Cancel(ctx context.Context, user entity.User) (*conversation.TurnResult, error)
	HandleText(ctx context.Context, user entity.User, text, replyTo string) (*conversation.TurnResult, error)
	ShareContact(ctx context.Context, user entity.User, phone string) (*conversation.TurnResult, error)
}

// API is the part of tgbotapi.BotAPI the handlers talk to
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}
