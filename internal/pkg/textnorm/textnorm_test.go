package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "only punctuation", in: "?!...", want: ""},
		{name: "lowercase and punctuation", in: "Шукаю 2-кімнатну, КВАРТИРУ!", want: "шукаю 2 кімнатну квартиру"},
		{name: "diacritics dropped", in: "Таїрова", want: "таірова"},
		{name: "short i folded", in: "Київський", want: "киівськии"},
		{name: "yo folded", in: "трёшка", want: "трешка"},
		{name: "apostrophe removed", in: "зв’язок", want: "зв язок"},
		{name: "whitespace collapsed", in: "  до \t 45к  ", want: "до 45к"},
		{name: "latin lookalike inside cyrillic word", in: "однокiмнатна", want: "однокімнатна"},
		{name: "pure latin word untouched", in: "Kvartira house", want: "kvartira house"},
		{name: "currency stripped", in: "$5000", want: "5000"},
		{name: "non breaking space", in: "120\u00a0000 грн", want: "120 000 грн"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeMoneyKeepsCurrency(t *testing.T) {
	assert.Equal(t, "$ 5к", NormalizeMoney("$ 5к"))
	assert.Equal(t, "до 80000€", NormalizeMoney("До 80000€"))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"Хочу на Таїрова, 2к!", "Євроремонт без меблів", "дача Ковалевського"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), in)
	}
}

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Після будівельників", want: "писля будивелникив"},
		{in: "  Дешевше!  ", want: "дешевше"},
		{in: "2-кімн.", want: "2 кимн"},
		{in: "пересыпь", want: "пересып"},
		{in: "Ґанок / подвір'я", want: "ганок подвир'я"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), tt.in)
	}
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("трохи дешевше", []string{"дорожч", "дешев"}))
	assert.False(t, ContainsAny("трохи дешевше", []string{"", "дорож"}))
}
