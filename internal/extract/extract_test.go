package extract

import (
	"testing"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLocations struct {
	loc       entity.Location
	found     bool
	district  int
	microarea int
}

func (f fakeLocations) Match(string) (entity.Location, bool) { return f.loc, f.found }
func (f fakeLocations) District(string) (int, bool) { return f.district, f.district != 0 }
func (f fakeLocations) Microarea(string) (int, bool) { return f.microarea, f.microarea != 0 }

func TestRooms(t *testing.T) {
	tests := []struct {
		text  string
		want  int
		found bool
	}{
		{text: "шукаю 2-кімнатну квартиру", want: 2, found: true},
		{text: "трешка в центрі", want: 3, found: true},
		{text: "однушка", want: 1, found: true},
		{text: "двухкомнатная", want: 2, found: true},
		{text: "3 комнаты", want: 3, found: true},
		{text: "хочу 1к", want: 1, found: true},
		{text: "4 кімнати", want: 4, found: true},
		{text: "трішка біля моря", want: 3, found: true},
		{text: "трішки дешевше", found: false},
		{text: "трішку дорожче", found: false},
		{text: "7 кімнат", found: false},
		{text: "квартира", found: false},
		{text: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Rooms(tt.text)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBudget(t *testing.T) {
	tests := []struct {
		text  string
		want  int
		found bool
	}{
		{text: "бюджет до 45к", want: 45000, found: true},
		{text: "готовий витратити 120 000 грн", want: 120000, found: true},
		{text: "$80000", want: 80000, found: true},
		{text: "до 60 тис", want: 60000, found: true},
		{text: "5 тисяч доларів", want: 5000, found: true},
		{text: "від 50000 до 70000 usd", want: 70000, found: true},
		{text: "2 150000", want: 150000, found: true},
		{text: "3 кімн 2 150000 грн", want: 150000, found: true},
		{text: "1 25000$", want: 25000, found: true},
		{text: "двушка 2 до 150 000 $", want: 150000, found: true},
		{text: "5к", found: false},
		{text: "2 кімнати", found: false},
		{text: "без цифр", found: false},
		{text: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Budget(tt.text)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCondition(t *testing.T) {
	tests := []struct {
		text  string
		want  entity.ConditionCode
		found bool
	}{
		{text: "з ремонтом", want: entity.ConditionRenovated, found: true},
		{text: "євроремонт", want: entity.ConditionRenovated, found: true},
		{text: "під ремонт", want: entity.ConditionNeedsRenovation, found: true},
		{text: "без ремонту", want: entity.ConditionFromDeveloper, found: true},
		{text: "від будівельників", want: entity.ConditionFromDeveloper, found: true},
		{text: "під оздоблення", want: entity.ConditionNeedsFinishing, found: true},
		{text: "капітальний ремонт", want: entity.ConditionCapital, found: true},
		{text: "зробимо ремонт самі", found: false},
		{text: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := Condition(tt.text)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestConditionLastCue(t *testing.T) {
	got, ok := ConditionLastCue("без ремонту, але хочу з ремонтом")
	require.True(t, ok)
	assert.Equal(t, entity.ConditionRenovated, got)

	got, ok = ConditionLastCue("з ремонтом, а можна і без ремонту")
	require.True(t, ok)
	assert.Equal(t, entity.ConditionFromDeveloper, got)

	got, ok = ConditionLastCue("чорнова")
	require.True(t, ok)
	assert.Equal(t, entity.ConditionFromDeveloper, got)

	_, ok = ConditionLastCue("просто квартира")
	assert.False(t, ok)
}

func TestPropertyType(t *testing.T) {
	got, ok := PropertyType("шукаю квартиру")
	require.True(t, ok)
	assert.Equal(t, entity.TypeApartment, got)

	got, ok = PropertyType("приватний будинок")
	require.True(t, ok)
	assert.Equal(t, entity.TypeHouse, got)

	got, ok = PropertyType("квартира або будинок")
	require.True(t, ok)
	assert.Equal(t, entity.TypeApartment, got)

	_, ok = PropertyType("щось")
	assert.False(t, ok)
}

func TestParseFreeText(t *testing.T) {
	e := NewExtractor(fakeLocations{
		loc:   entity.Location{MicroareaID: 116, DistrictText: "Таїрова"},
		found: true,
	})

	got := e.ParseFreeText("2-кімнатна квартира на Таїрова з ремонтом до 60к")

	assert.Equal(t, entity.Answers{
		entity.KeyType:         entity.TypeApartment,
		entity.KeyRoomsIn:      2,
		entity.KeyPriceMax:     60000,
		entity.KeyConditionIn:  int(entity.ConditionRenovated),
		entity.KeyMicroareaID:  116,
		entity.KeyDistrictText: "Таїрова",
	}, got)
}

func TestParseFreeTextEmpty(t *testing.T) {
	e := NewExtractor(fakeLocations{found: true, loc: entity.Location{DistrictID: 5}})
	assert.Empty(t, e.ParseFreeText(""))
}

func TestInterpretAnswer(t *testing.T) {
	e := NewExtractor(fakeLocations{district: 8, microarea: 103})

	v, ok := e.InterpretAnswer(entity.KeyRoomsIn, "дві, двушка")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = e.InterpretAnswer(entity.KeyBudget, "до 90 000 $")
	require.True(t, ok)
	assert.Equal(t, 90000, v)

	v, ok = e.InterpretAnswer(entity.KeyDistrictID, "Приморський")
	require.True(t, ok)
	assert.Equal(t, 8, v)

	v, ok = e.InterpretAnswer(entity.KeyMicroareaID, "Французький")
	require.True(t, ok)
	assert.Equal(t, 103, v)

	v, ok = e.InterpretAnswer(entity.KeyType, "котедж")
	require.True(t, ok)
	assert.Equal(t, "будинок", v)

	_, ok = e.InterpretAnswer("unknown", "що завгодно")
	assert.False(t, ok)

	_, ok = e.InterpretAnswer(entity.KeyConditionIn, "не знаю")
	assert.False(t, ok)
}
