package handlers

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// typingInterval stays under the 5s Telegram keeps a chat action alive.
const typingInterval = 4 * time.Second

// TypingNotifier shows "typing..." while a listings search is running
type TypingNotifier struct {
	api     API
	chatID  int64
	done    chan struct{}
	logger  *zap.Logger
	started bool
}

// NewTypingNotifier creates a new typing indicator
func NewTypingNotifier(api API, chatID int64, logger *zap.Logger) *TypingNotifier {
	return &TypingNotifier{
		api:    api,
		chatID: chatID,
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Start sends a typing action now and then every typingInterval until Stop
// or ctx ends.
func (t *TypingNotifier) Start(ctx context.Context) {
	if t.started {
		return
	}
	t.started = true

	t.send("failed to send initial typing action")

	go func() {
		ticker := time.NewTicker(typingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				t.send("failed to send typing action")
			case <-t.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops sending typing indicators
func (t *TypingNotifier) Stop() {
	if !t.started {
		return
	}

	close(t.done)
	t.started = false
}

func (t *TypingNotifier) send(failure string) {
	action := tgbotapi.NewChatAction(t.chatID, tgbotapi.ChatTyping)
	if _, err := t.api.Request(action); err != nil {
		t.logger.Warn(failure,
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
		)
	}
}
