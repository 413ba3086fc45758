package middleware

import (
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	cleanupInterval   = 10 * time.Minute
	inactiveThreshold = time.Hour
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	tokens        float64
	lastRefill    time.Time
	warningsSent  int
	lastWarningAt time.Time
	mu            sync.Mutex
}

// RateLimiterMiddleware implements token bucket rate limiting per user
type RateLimiterMiddleware struct {
	limits          map[int64]*userLimit
	mu              sync.Mutex
	maxTokens       float64 // bucket size, the allowed burst
	refillRate      float64 // tokens added per second
	warningInterval time.Duration
	logger          *zap.Logger
	api             Sender
	now             func() time.Time
	stop            chan struct{}
	stopOnce        sync.Once
}

// NewRateLimiterMiddleware creates a new rate limiter middleware
func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	api Sender,
) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		limits:          make(map[int64]*userLimit),
		maxTokens:       float64(burstSize),
		refillRate:      float64(requestsPerMinute) / 60.0,
		warningInterval: 30 * time.Second,
		logger:          logger,
		api:             api,
		now:             time.Now,
		stop:            make(chan struct{}),
	}

	go rl.cleanupInactiveUsers()

	return rl
}

// Stop ends the cleanup goroutine
func (rl *RateLimiterMiddleware) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID := origin(update)
	if userID == 0 {
		next(update)
		return
	}

	if !rl.allowRequest(userID, chatID) {
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		return
	}

	next(update)
}

// allowRequest checks if request is allowed under rate limit
func (rl *RateLimiterMiddleware) allowRequest(userID, chatID int64) bool {
	now := rl.now()

	rl.mu.Lock()
	limit, exists := rl.limits[userID]
	if !exists {
		limit = &userLimit{
			tokens:     rl.maxTokens,
			lastRefill: now,
		}
		rl.limits[userID] = limit
	}
	rl.mu.Unlock()

	limit.mu.Lock()
	defer limit.mu.Unlock()

	elapsed := now.Sub(limit.lastRefill).Seconds()
	limit.tokens += elapsed * rl.refillRate
	if limit.tokens > rl.maxTokens {
		limit.tokens = rl.maxTokens
	}
	limit.lastRefill = now

	if limit.tokens >= 1.0 {
		limit.tokens -= 1.0
		limit.warningsSent = 0
		return true
	}

	if now.Sub(limit.lastWarningAt) > rl.warningInterval {
		limit.warningsSent++
		limit.lastWarningAt = now

		rl.sendRateLimitWarning(chatID, limit.warningsSent)
	}

	return false
}

func warningText(warningCount int) string {
	switch {
	case warningCount <= 1:
		return "⚠️ Забагато повідомлень. Зачекайте, будь ласка, трохи."
	case warningCount == 2:
		return "⚠️ Перевищено ліміт запитів. Зачекайте ~30 секунд."
	default:
		return "🛑 Ви надсилаєте повідомлення надто часто. Зачекайте хвилину."
	}
}

// sendRateLimitWarning sends a warning message to the user
func (rl *RateLimiterMiddleware) sendRateLimitWarning(chatID int64, warningCount int) {
	if chatID == 0 {
		return
	}
	msg := tgbotapi.NewMessage(chatID, warningText(warningCount))
	if _, err := rl.api.Send(msg); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

func (rl *RateLimiterMiddleware) cleanupInactiveUsers() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictInactive()
		}
	}
}

func (rl *RateLimiterMiddleware) evictInactive() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for userID, limit := range rl.limits {
		limit.mu.Lock()
		if now.Sub(limit.lastRefill) > inactiveThreshold {
			delete(rl.limits, userID)
			rl.logger.Debug("cleaned up inactive user from rate limiter",
				zap.Int64("user_id", userID),
			)
		}
		limit.mu.Unlock()
	}
}
