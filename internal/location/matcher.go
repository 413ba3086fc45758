// Package location resolves free text to Odesa district and microarea ids.
package location

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/lexicon"
	"github.com/futig/realtor-bot/internal/pkg/textnorm"
)

type landmark struct {
	re    *regexp.Regexp
	label string
}

// last-resort landmarks for well-known places, checked in order
var landmarks = []landmark{
	{re: regexp.MustCompile(`та[иі]ров`), label: "Таїрова"},
	{re: regexp.MustCompile(`центр`), label: "Центр"},
	{re: regexp.MustCompile(`фонтан`), label: "Фонтан"},
}

// Matcher is the primary fuzzy location matcher used by the slot extractors.
// It is safe for concurrent use.
type Matcher struct {
	lex      *lexicon.Lexicon
	keywords lexicon.Keywords
}

// NewMatcher creates a matcher over lex and an optional keyword dictionary.
func NewMatcher(lex *lexicon.Lexicon, keywords lexicon.Keywords) *Matcher {
	return &Matcher{
		lex:      lex,
		keywords: keywords,
	}
}

// Match tries microareas, then districts, then the keyword dictionary, then
// the hardcoded landmarks. The first layer that matches wins.
func (m *Matcher) Match(text string) (entity.Location, bool) {
	t := textnorm.Normalize(text)
	if t == "" {
		return entity.Location{}, false
	}
	tokens := textnorm.Tokens(t)

	if e, ok := bestEntry(m.lex.Microareas(), t, tokens); ok {
		return entity.Location{MicroareaID: e.ID, DistrictText: e.Label}, true
	}

	if e, ok := bestEntry(m.lex.Districts(), t, tokens); ok {
		return entity.Location{DistrictID: e.ID, DistrictText: e.Label}, true
	}

	if label, ok := m.keywords.Longest(t); ok {
		return entity.Location{DistrictText: label}, true
	}

	for _, p := range landmarks {
		if p.re.MatchString(t) {
			return entity.Location{DistrictText: p.label}, true
		}
	}

	return entity.Location{}, false
}

// bestEntry returns the entry with the longest matching variant; on equal
// length the entry with the lower id wins.
func bestEntry(entries []lexicon.Entry, text string, tokens []string) (lexicon.Entry, bool) {
	var (
		best    lexicon.Entry
		bestLen int
	)
	for _, e := range entries {
		for _, v := range e.Variants {
			if !fuzzyContains(text, tokens, v) {
				continue
			}
			if n := utf8.RuneCountInString(v); n > bestLen {
				best, bestLen = e, n
			}
		}
	}
	return best, bestLen > 0
}

func fuzzyContains(text string, tokens []string, variant string) bool {
	if strings.Contains(text, variant) {
		return true
	}
	for _, tok := range tokens {
		if WithinOneEdit(tok, variant) {
			return true
		}
	}
	return false
}

// District matches the district lexicon only.
func (m *Matcher) District(text string) (int, bool) {
	t := textnorm.Normalize(text)
	if t == "" {
		return 0, false
	}
	e, ok := bestEntry(m.lex.Districts(), t, textnorm.Tokens(t))
	return e.ID, ok
}

// Microarea matches the microarea lexicon only.
func (m *Matcher) Microarea(text string) (int, bool) {
	t := textnorm.Normalize(text)
	if t == "" {
		return 0, false
	}
	e, ok := bestEntry(m.lex.Microareas(), t, textnorm.Tokens(t))
	return e.ID, ok
}
