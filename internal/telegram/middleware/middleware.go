package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of tgbotapi.BotAPI the middleware replies through
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Middleware wraps update handling
type Middleware interface {
	Handle(update tgbotapi.Update, next func(tgbotapi.Update))
}

// Chain applies middlewares in order, the first one outermost
func Chain(handler func(tgbotapi.Update), mws ...Middleware) func(tgbotapi.Update) {
	for i := len(mws) - 1; i >= 0; i-- {
		mw, next := mws[i], handler
		handler = func(u tgbotapi.Update) {
			mw.Handle(u, next)
		}
	}
	return handler
}

// origin extracts the user and chat an update came from; zero when unknown.
func origin(update tgbotapi.Update) (userID, chatID int64) {
	if update.Message != nil {
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
		if update.Message.Chat != nil {
			chatID = update.Message.Chat.ID
		}
	}
	return userID, chatID
}
