package bot

import (
	"testing"

	"github.com/futig/realtor-bot/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	message := &tgbotapi.Message{
		MessageID: 11,
		From:      &tgbotapi.User{ID: 42, UserName: "olena", FirstName: " Olena ", LastName: "K"},
		Chat:      &tgbotapi.Chat{ID: 42},
		Text:      "хочу на перегляд",
		ReplyToMessage: &tgbotapi.Message{
			Caption: "🏠 Квартира\nID: 10452",
		},
	}

	msg := normalize(message)

	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, 11, msg.MessageID)
	assert.Equal(t, "хочу на перегляд", msg.Text)
	assert.Equal(t, "🏠 Квартира\nID: 10452", msg.ReplyTo)
	assert.Equal(t, entity.User{TelegramUserID: 42, Username: "olena", FirstName: "Olena", LastName: "K"}, msg.User)
	assert.Empty(t, msg.Phone)
}

func TestNormalizeContact(t *testing.T) {
	message := &tgbotapi.Message{
		From:    &tgbotapi.User{ID: 7},
		Chat:    &tgbotapi.Chat{ID: 7},
		Contact: &tgbotapi.Contact{PhoneNumber: "+380671234567", UserID: 7},
	}

	msg := normalize(message)
	assert.Equal(t, "+380671234567", msg.Phone)
	assert.Empty(t, msg.Text)
	assert.Empty(t, msg.ReplyTo)
}

func TestNormalizeCaptionFallback(t *testing.T) {
	message := &tgbotapi.Message{
		From:           &tgbotapi.User{ID: 7},
		Chat:           &tgbotapi.Chat{ID: 7},
		Caption:        "ось таке хочу",
		ReplyToMessage: &tgbotapi.Message{Text: "ID: 99"},
	}

	msg := normalize(message)
	assert.Equal(t, "ось таке хочу", msg.Text)
	assert.Equal(t, "ID: 99", msg.ReplyTo)
}
