// Package extract turns a single chat utterance into slot values.
//
// Every extractor is a total function: for any input, including the empty
// string, it returns a value and a found flag and never fails.
package extract

import (
	"github.com/futig/realtor-bot/internal/entity"
)

// LocationMatcher resolves free text to a place
type LocationMatcher interface {
	Match(text string) (entity.Location, bool)
	District(text string) (int, bool)
	Microarea(text string) (int, bool)
}

// Extractor combines the individual extractors with a location matcher.
type Extractor struct {
	locations LocationMatcher
}

// NewExtractor creates an Extractor.
func NewExtractor(locations LocationMatcher) *Extractor {
	return &Extractor{locations: locations}
}

// ParseFreeText runs every extractor and returns the found values keyed by
// answer key. Absent keys mean nothing was found.
func (e *Extractor) ParseFreeText(text string) entity.Answers {
	found := entity.Answers{}
	if text == "" {
		return found
	}

	if t, ok := PropertyType(text); ok {
		found[entity.KeyType] = t
	}
	if n, ok := Rooms(text); ok {
		found[entity.KeyRoomsIn] = n
	}
	if n, ok := Budget(text); ok {
		found[entity.KeyPriceMax] = n
	}
	if c, ok := Condition(text); ok {
		found[entity.KeyConditionIn] = int(c)
	}

	if loc, ok := e.locations.Match(text); ok {
		if loc.MicroareaID != 0 {
			found[entity.KeyMicroareaID] = loc.MicroareaID
		}
		if loc.DistrictID != 0 {
			found[entity.KeyDistrictID] = loc.DistrictID
		}
		if loc.DistrictText != "" {
			found[entity.KeyDistrictText] = loc.DistrictText
		}
	}

	return found
}

// InterpretAnswer parses text as the answer to the question that asked for key.
func (e *Extractor) InterpretAnswer(key, text string) (any, bool) {
	switch key {
	case entity.KeyRoomsIn, entity.KeyRooms:
		return wrap(Rooms(text))
	case entity.KeyBudget, entity.KeyPriceMax:
		return wrap(Budget(text))
	case entity.KeyConditionIn:
		c, ok := Condition(text)
		return int(c), ok
	case entity.KeyDistrictID:
		return wrap(e.locations.District(text))
	case entity.KeyMicroareaID:
		return wrap(e.locations.Microarea(text))
	case entity.KeyType:
		return wrapString(answerType(text))
	default:
		return nil, false
	}
}

func wrap(n int, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return n, true
}

func wrapString(s string, ok bool) (any, bool) {
	if !ok {
		return nil, false
	}
	return s, true
}
