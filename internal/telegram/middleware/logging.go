package middleware

import (
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// LoggingMiddleware logs all incoming updates
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Handle logs the update
func (m *LoggingMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	start := time.Now()

	userID, chatID := origin(update)
	messageType := updateType(update)

	m.logger.Info("telegram update received",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.String("type", messageType),
		zap.Int("update_id", update.UpdateID),
	)

	next(update)

	m.logger.Info("telegram update processed",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
		zap.Duration("duration", time.Since(start)),
	)
}

func updateType(update tgbotapi.Update) string {
	msg := update.Message
	switch {
	case msg == nil:
		return "other"
	case msg.IsCommand():
		return "command"
	case msg.Contact != nil:
		return "contact"
	case msg.Text != "":
		return "text"
	default:
		return "other"
	}
}
