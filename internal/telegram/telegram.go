package telegram

import (
	"context"
	"fmt"

	"github.com/futig/realtor-bot/internal/config"
	pkgRetry "github.com/futig/realtor-bot/internal/pkg/retry"
	"github.com/futig/realtor-bot/internal/telegram/bot"
	"github.com/futig/realtor-bot/internal/telegram/handlers"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	conversationUC handlers.ConversationUsecase,
	retryCfg *pkgRetry.RetryConfig,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, conversationUC, retryCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, logger *zap.Logger) {
	api := b.GetAPI()
	sender := b.GetSender()
	conversationUC := b.GetConversationUsecase()

	b.RegisterHandler(handlers.NewTextHandler(api, sender, conversationUC, logger))
	b.RegisterHandler(handlers.NewContactHandler(api, sender, conversationUC, logger))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 2),
	)
}
