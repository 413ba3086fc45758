package extract

import (
	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/pkg/textnorm"
)

var (
	apartmentStems = textnorm.NormalizeAll("квартир", "kvartir")
	houseStems     = textnorm.NormalizeAll("будинок", "будин", "дом", "house")

	answerApartmentStems = textnorm.NormalizeAll("квартир")
	answerHouseStems     = textnorm.NormalizeAll("будин", "котедж")
)

// PropertyType detects "apartment" or "house"; apartment vocabulary is checked first.
func PropertyType(text string) (string, bool) {
	t := textnorm.Normalize(text)
	switch {
	case t == "":
		return "", false
	case textnorm.ContainsAny(t, apartmentStems):
		return entity.TypeApartment, true
	case textnorm.ContainsAny(t, houseStems):
		return entity.TypeHouse, true
	default:
		return "", false
	}
}

// answerType reads a reply to the "what are you looking for" question and
// returns the Ukrainian display value.
func answerType(text string) (string, bool) {
	t := textnorm.Normalize(text)
	switch {
	case t == "":
		return "", false
	case textnorm.ContainsAny(t, answerApartmentStems):
		return "квартира", true
	case textnorm.ContainsAny(t, answerHouseStems):
		return "будинок", true
	default:
		return "", false
	}
}
