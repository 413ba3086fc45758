package conversation

import (
	"fmt"
	"strings"
)

const (
	welcomeText        = "Вітаю вас у світі нерухомості без стресу! Я ШІ-РІЕЛТОР."
	defaultAskName     = "Як до вас можна звертатись?"
	welcomeAfterName   = "Дуже приємно познайомитись, %s. Щоб бути максимально корисним для вас, я задам декілька запитань."
	questionsHeader    = "Розкажіть, будь ласка, що саме шукаєте:"
	readyForContact    = "Усе запам'ятав. Готовий приступити до пошуку 👇 Поділіться, будь ласка, номером телефону."
	contactThanks      = "Дякую! Надсилаю варіанти 👇"
	filtersUpdated     = "Зрозумів, оновив підбір: %s 👇"
	filtersRefreshed   = "Оновив підбір за вашими побажаннями 👇"
	listingsFailed     = "Виникла помилка на стороні підбору. Можемо трохи розширити фільтри (район/бюджет) і спробувати ще раз?"
	noListings         = "Поки немає варіантів за цими параметрами. Можемо розширити район або бюджет, як зручніше?"
	moreListings       = "Є ще приблизно %d схожих об'єктів. Напишіть «Ще», пришлю наступні %d 😉"
	noMoreListings     = "Це всі варіанти за поточними параметрами. Можемо змінити район або бюджет."
	sessionClosed      = "Пошук завершено. Щоб почати знову, натисніть /start"
	nothingToCancel    = "Активного пошуку немає. Натисніть /start, щоб почати"
	viewRecorded       = "Дякую! Наш рієлтор зв'яжеться з вами у будні години (Пн–Пт 09:00–19:00)."
	contactRecorded    = "Передав контакт рієлтору. Він відповість у робочий час (Пн–Пт 09:00–19:00)."
	likeRecorded       = "Зафіксував, що вам сподобався об'єкт з ID %s.\nРієлтор врахує це при подальшому підборі 👍"
	likeNeedsID        = "Бачу, що вам сподобався варіант 😊\nЩоб я міг передати його рієлтору, напишіть, будь ласка, ID об'єкта (наприклад: ID 21364) або відповідайте «сподобалась» прямо на повідомлення з оголошенням."
	initialComment     = "Initial contact; request filters"
	viewComment        = "Viewing requested"
	likeComment        = "Liked listing"
	contactComment     = "Contact requested"
	viewTitlePrefix    = "Запит на перегляд · "
	likeTitlePrefix    = "Сподобався об'єкт · "
	contactTitlePrefix = "Запит на контакт · "
)

func bulleted(texts []string) string {
	lines := []string{questionsHeader}
	for _, t := range texts {
		if t != "" {
			lines = append(lines, "• "+t)
		}
	}
	return strings.Join(lines, "\n")
}

func greetByName(name string) string {
	return fmt.Sprintf(welcomeAfterName, name)
}
