package middleware

import (
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const panicMessage = "❌ Сталася помилка. Спробуйте ще раз або натисніть /start"

// RecoveryMiddleware recovers from panics
type RecoveryMiddleware struct {
	logger *zap.Logger
	api    Sender
}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware(logger *zap.Logger, api Sender) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: logger,
		api:    api,
	}
}

// Handle recovers from panics
func (m *RecoveryMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		m.logger.Error("panic recovered in telegram handler",
			zap.Any("panic", r),
			zap.String("stack", string(debug.Stack())),
			zap.Int("update_id", update.UpdateID),
		)

		if _, chatID := origin(update); chatID != 0 {
			if _, err := m.api.Send(tgbotapi.NewMessage(chatID, panicMessage)); err != nil {
				m.logger.Error("failed to send error message",
					zap.Error(err),
					zap.Int64("chat_id", chatID),
				)
			}
		}
	}()

	next(update)
}
