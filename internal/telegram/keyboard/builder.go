package keyboard

import (
	"github.com/futig/realtor-bot/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Builder creates reply keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// ContactKeyboard asks Telegram to share the user's phone number
func (b *Builder) ContactKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButtonContact(render.BtnShareContact),
		),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}

// RemoveKeyboard hides any reply keyboard left on screen
func (b *Builder) RemoveKeyboard() tgbotapi.ReplyKeyboardRemove {
	return tgbotapi.NewRemoveKeyboard(true)
}
