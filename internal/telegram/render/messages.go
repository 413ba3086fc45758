package render

import (
	"context"
	"errors"
	"math"
	"net"
	"strconv"
	"strings"
	"syscall"

	"github.com/futig/realtor-bot/internal/entity"
)

const (
	MsgHelp = `🏠 Я допомагаю підібрати квартиру чи будинок.

/start - почати новий пошук
/help - показати цю довідку
/cancel - завершити поточний пошук

Як це працює:
1. Представтесь
2. Розкажіть, що шукаєте: район, кількість кімнат, ремонт, бюджет
3. Поділіться номером телефону
4. Отримайте варіанти. «Ще» покаже наступні

Щоб записатися на перегляд, відповідайте на повідомлення з варіантом.`

	MsgShareContactFirst = `📞 Щоб показати варіанти, поділіться, будь ласка, номером телефону.`
	MsgUnknownCommand    = `❌ Невідома команда. Натисніть /help`
	MsgUnsupported       = `✍️ Напишіть, будь ласка, текстом, що ви шукаєте.`
	MsgInvalidPhone      = `❌ Не вдалося прочитати номер. Спробуйте ще раз кнопкою нижче.`

	BtnShareContact = "📞 Поділитись контактом"

	// Errors
	ErrGeneric            = `❌ Сталася помилка. Спробуйте ще раз або натисніть /start`
	ErrSessionNotFound    = `❌ Пошук не знайдено. Почніть новий з /start`
	ErrNetworkIssue       = `❌ Проблема зі з'єднанням. Спробуйте трохи пізніше.`
	ErrServiceUnavailable = `❌ Сервіс підбору тимчасово недоступний. Спробуйте за кілька хвилин.`
	ErrTimeout            = `❌ Операція зайняла забагато часу. Спробуйте ще раз.`
	ErrQuotaExceeded      = `❌ Забагато запитів. Зачекайте трохи.`
)

// ListingCaption renders one listing as a chat message. The "ID:" line is
// what a reply to the message is matched against.
func ListingCaption(it entity.Listing) string {
	var lines []string

	title := strings.TrimSpace(it.Title)
	if title == "" {
		title = "Об'єкт"
	}
	lines = append(lines, "🏠 "+title)

	if it.Address != "" {
		lines = append(lines, "📍 "+it.Address)
	}
	if it.Price > 0 {
		lines = append(lines, "💵 "+formatPrice(it.Price, it.Currency))
	}

	var facts []string
	if it.Rooms > 0 {
		facts = append(facts, strconv.Itoa(it.Rooms)+"к")
	}
	if it.Area > 0 {
		facts = append(facts, strconv.FormatFloat(it.Area, 'f', -1, 64)+" м²")
	}
	if len(facts) > 0 {
		lines = append(lines, strings.Join(facts, " · "))
	}

	if it.URL != "" {
		lines = append(lines, it.URL)
	}
	if it.ID != "" {
		lines = append(lines, "ID: "+it.ID)
	}

	return strings.Join(lines, "\n")
}

func formatPrice(price float64, currency string) string {
	amount := groupThousands(int64(math.Round(price)))
	switch strings.ToUpper(strings.TrimSpace(currency)) {
	case "", "USD", "$":
		return "$" + amount
	case "EUR", "€":
		return "€" + amount
	case "UAH", "ГРН", "₴":
		return amount + " грн"
	default:
		return amount + " " + currency
	}
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ClassifyError maps an infrastructure error to a user-friendly message
func ClassifyError(err error) string {
	if err == nil {
		return ErrGeneric
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		if errors.Is(err, syscall.ECONNREFUSED) {
			return ErrServiceUnavailable
		}
		return ErrNetworkIssue
	}

	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "connection refused"), strings.Contains(errMsg, "unavailable"):
		return ErrServiceUnavailable
	case strings.Contains(errMsg, "timeout"):
		return ErrTimeout
	case strings.Contains(errMsg, "too many requests"):
		return ErrQuotaExceeded
	}

	return ErrGeneric
}
