package bot

import (
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/telegram/handlers"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// normalize converts a Telegram message into the handlers' Message
func normalize(message *tgbotapi.Message) *handlers.Message {
	msg := &handlers.Message{
		ChatID:    message.Chat.ID,
		MessageID: message.MessageID,
		User:      userFrom(message),
		Text:      message.Text,
	}
	if msg.Text == "" {
		msg.Text = message.Caption
	}

	if reply := message.ReplyToMessage; reply != nil {
		msg.ReplyTo = reply.Text
		if msg.ReplyTo == "" {
			msg.ReplyTo = reply.Caption
		}
	}

	if message.Contact != nil {
		msg.Phone = message.Contact.PhoneNumber
	}

	return msg
}

func userFrom(message *tgbotapi.Message) entity.User {
	u := entity.User{}
	if message.From == nil {
		return u
	}
	u.TelegramUserID = message.From.ID
	u.Username = message.From.UserName
	u.FirstName = strings.TrimSpace(message.From.FirstName)
	u.LastName = strings.TrimSpace(message.From.LastName)
	return u
}
