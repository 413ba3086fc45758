package location

import (
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/lexicon"
	"github.com/futig/realtor-bot/internal/pkg/textnorm"
)

const minPrefixToken = 4

type prefixLabel struct {
	id       int
	prefixes []string
}

// PrefixMatcher is the cheaper matcher of the conversational merge layer.
// Every label token of four or more letters contributes its 4- and 5-letter
// prefixes; a label matches when one of them occurs in the folded text.
// Microareas are tried before districts, districts before streets.
type PrefixMatcher struct {
	microareas []prefixLabel
	districts  []prefixLabel
	streets    []prefixLabel
}

// NewPrefixMatcher builds the matcher; places may be nil.
func NewPrefixMatcher(lex *lexicon.Lexicon, places *lexicon.Places) *PrefixMatcher {
	m := &PrefixMatcher{}
	for _, e := range lex.Microareas() {
		m.microareas = appendLabel(m.microareas, e.ID, e.Label)
	}
	for _, e := range lex.Districts() {
		m.districts = appendLabel(m.districts, e.ID, e.Label)
	}
	if places != nil {
		for _, p := range places.Streets {
			m.streets = appendLabel(m.streets, p.ID, p.Name)
		}
	}
	return m
}

func appendLabel(dst []prefixLabel, id int, label string) []prefixLabel {
	var prefixes []string
	for _, tok := range strings.Fields(textnorm.Fold(label)) {
		r := []rune(tok)
		if len(r) < minPrefixToken {
			continue
		}
		prefixes = append(prefixes, string(r[:minPrefixToken]))
		if len(r) > minPrefixToken {
			prefixes = append(prefixes, string(r[:minPrefixToken+1]))
		}
	}
	if len(prefixes) == 0 {
		return dst
	}
	return append(dst, prefixLabel{id: id, prefixes: prefixes})
}

// Match returns the first label whose prefix occurs in the folded text.
func (m *PrefixMatcher) Match(text string) (entity.Location, bool) {
	folded := textnorm.Fold(text)
	if folded == "" {
		return entity.Location{}, false
	}

	if id, ok := firstPrefixHit(m.microareas, folded); ok {
		return entity.Location{MicroareaID: id}, true
	}
	if id, ok := firstPrefixHit(m.districts, folded); ok {
		return entity.Location{DistrictID: id}, true
	}
	if id, ok := firstPrefixHit(m.streets, folded); ok {
		return entity.Location{StreetID: id}, true
	}

	return entity.Location{}, false
}

func firstPrefixHit(labels []prefixLabel, folded string) (int, bool) {
	for _, l := range labels {
		for _, p := range l.prefixes {
			if strings.Contains(folded, p) {
				return l.id, true
			}
		}
	}
	return 0, false
}
