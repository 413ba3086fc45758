package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/realtor-bot/internal/config"
	"github.com/futig/realtor-bot/internal/entity"
	pkgRetry "github.com/futig/realtor-bot/internal/pkg/retry"
	"github.com/futig/realtor-bot/internal/telegram/handlers"
	"github.com/futig/realtor-bot/internal/telegram/keyboard"
	"github.com/futig/realtor-bot/internal/telegram/middleware"
	"github.com/futig/realtor-bot/internal/telegram/render"
	"github.com/futig/realtor-bot/internal/usecase/conversation"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api            *tgbotapi.BotAPI
	cfg            *config.TelegramConfig
	handlers       map[string]handlers.Handler
	conversationUC handlers.ConversationUsecase
	sender         *handlers.MessageSender
	keyboard       *keyboard.Builder
	logger         *zap.Logger
	loggingMW      *middleware.LoggingMiddleware
	recoveryMW     *middleware.RecoveryMiddleware
	rateLimitMW    *middleware.RateLimiterMiddleware
	updatesChan    tgbotapi.UpdatesChannel
	stopChan       chan struct{}
	wg             sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	conversationUC handlers.ConversationUsecase,
	retryCfg *pkgRetry.RetryConfig,
	logger *zap.Logger,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	kb := keyboard.NewBuilder()
	bot := &Bot{
		api:            api,
		cfg:            cfg,
		conversationUC: conversationUC,
		sender:         handlers.NewMessageSender(api, kb, retryCfg, logger),
		keyboard:       kb,
		logger:         logger,
		handlers:       make(map[string]handlers.Handler),
		stopChan:       make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()
	b.rateLimitMW.Stop()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	handle := middleware.Chain(
		func(u tgbotapi.Update) { b.handleUpdate(ctx, u) },
		b.rateLimitMW,
		b.loggingMW,
		b.recoveryMW,
	)

	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				handle(u)
			}(update)
		}
	}
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.From == nil || message.Chat == nil {
		return
	}

	ctx = ctxzap.ToContext(ctx, b.logger.With(
		zap.Int64("user_id", message.From.ID),
		zap.Int64("chat_id", message.Chat.ID),
	))

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	b.handleMessage(ctx, message)
}

// handleMessage routes contacts and text to their handlers
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	msg := normalize(message)

	kind := handlers.HandlerKindText
	if message.Contact != nil {
		// Only the sender's own number counts, not a forwarded card.
		if message.Contact.UserID != 0 && message.Contact.UserID != message.From.ID {
			b.sendMessage(message.Chat.ID, render.MsgShareContactFirst, b.keyboard.ContactKeyboard())
			return
		}
		kind = handlers.HandlerKindContact
	}

	handler, exists := b.handlers[kind]
	if !exists {
		ctxzap.Warn(ctx, "no handler for message kind", zap.String("kind", kind))
		b.sendError(message.Chat.ID, render.ErrGeneric)
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("kind", kind),
		)
		b.sendError(message.Chat.ID, render.ErrGeneric)
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received", zap.String("command", command))

	switch command {
	case "start":
		b.runTurn(ctx, message, b.conversationUC.Start)
	case "cancel":
		b.runTurn(ctx, message, b.conversationUC.Cancel)
	case "help":
		b.sendMessage(message.Chat.ID, render.MsgHelp, nil)
	default:
		b.sendError(message.Chat.ID, render.MsgUnknownCommand)
	}
}

func (b *Bot) runTurn(
	ctx context.Context,
	message *tgbotapi.Message,
	turn func(context.Context, entity.User) (*conversation.TurnResult, error),
) {
	res, err := turn(ctx, userFrom(message))
	if err != nil {
		ctxzap.Error(ctx, "command failed",
			zap.Error(err),
			zap.String("command", message.Command()),
		)
		b.sendError(message.Chat.ID, render.ClassifyError(err))
		return
	}

	if err := b.sender.SendTurn(ctx, message.Chat.ID, res); err != nil {
		ctxzap.Error(ctx, "failed to send command reply", zap.Error(err))
	}
}

// sendMessage sends a message to chat
func (b *Bot) sendMessage(chatID int64, text string, replyMarkup interface{}) {
	if err := b.sender.Send(chatID, text, replyMarkup); err != nil {
		b.logger.Error("failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// sendError sends an error message
func (b *Bot) sendError(chatID int64, text string) {
	b.sendMessage(chatID, text, nil)
}

// RegisterHandler registers a handler for a message kind
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	kind := handler.GetKind()

	if !handlers.IsValidKind(kind) {
		b.logger.Fatal("invalid handler kind",
			zap.String("kind", kind),
		)
	}

	b.handlers[kind] = handler
	b.logger.Info("handler registered",
		zap.String("kind", kind),
	)
}

// GetAPI returns the bot API instance (for handlers)
func (b *Bot) GetAPI() *tgbotapi.BotAPI {
	return b.api
}

// GetSender returns the shared message sender (for handlers)
func (b *Bot) GetSender() *handlers.MessageSender {
	return b.sender
}

// GetConversationUsecase returns the conversation usecase (for handlers)
func (b *Bot) GetConversationUsecase() handlers.ConversationUsecase {
	return b.conversationUC
}
