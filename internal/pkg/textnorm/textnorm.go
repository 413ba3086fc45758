// Package textnorm canonicalizes Ukrainian/Russian chat text before matching.
//
// Two normalizers live here. Normalize is used by the slot extractors and the
// fuzzy location matcher; Fold is the coarser folding used by the conversational
// merge layer, which collapses Ukrainian letters onto their Russian look-alikes.
// Keyword tables must be passed through the same function as the text they are
// matched against.
//
// All functions are pure and safe for concurrent use.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("’", "'", "`", "'", "ʼ", "'")

// cyrillicVariants maps letters of one Cyrillic alphabet onto the counterpart the lexicons use.
var cyrillicVariants = map[rune]rune{
	'ё': 'е',
	'ї': 'і',
	'ґ': 'г',
}

// latinLookalikes is applied only inside tokens that already contain Cyrillic letters.
var latinLookalikes = map[rune]rune{
	'a': 'а', 'c': 'с', 'e': 'е', 'i': 'і', 'k': 'к',
	'o': 'о', 'p': 'р', 'x': 'х', 'y': 'у',
}

// Normalize lowercases text, decomposes it (NFKD), drops diacritics, unifies
// apostrophes and look-alike letters, replaces everything except digits, Latin
// and Cyrillic letters with spaces and collapses whitespace.
func Normalize(text string) string {
	return normalize(text, "")
}

// NormalizeMoney is Normalize that keeps currency glyphs.
func NormalizeMoney(text string) string {
	return normalize(text, "$€₴")
}

func normalize(text, keep string) string {
	if text == "" {
		return ""
	}

	s := norm.NFKD.String(strings.ToLower(text))
	s = apostrophes.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if v, ok := cyrillicVariants[r]; ok {
			r = v
		}
		switch {
		case isKept(r), strings.ContainsRune(keep, r):
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	tokens := strings.Fields(b.String())
	for i, tok := range tokens {
		tokens[i] = fixMixedScript(tok)
	}
	return strings.Join(tokens, " ")
}

func isKept(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'а' && r <= 'я':
		return true
	case r == 'є', r == 'і':
		return true
	}
	return false
}

func isCyrillic(r rune) bool {
	return (r >= 'а' && r <= 'я') || r == 'є' || r == 'і'
}

// fixMixedScript replaces Latin look-alikes in tokens such as "однокiмнатна"
// (Latin i) so they match the Cyrillic lexicons.
func fixMixedScript(tok string) string {
	hasCyr, hasLat := false, false
	for _, r := range tok {
		switch {
		case isCyrillic(r):
			hasCyr = true
		case r >= 'a' && r <= 'z':
			hasLat = true
		}
	}
	if !hasCyr || !hasLat {
		return tok
	}
	return strings.Map(func(r rune) rune {
		if v, ok := latinLookalikes[r]; ok {
			return v
		}
		return r
	}, tok)
}

// Tokens splits a normalized string into words.
func Tokens(text string) []string {
	return strings.Fields(text)
}

var (
	foldReplacer = strings.NewReplacer(
		"ё", "е",
		"ї", "и",
		"і", "и",
		"є", "е",
		"ґ", "г",
		"ъ", "",
		"ь", "",
	)
	foldPunct = regexp.MustCompile(`[.,;:!?()\[\]\-_/\\]+`)
)

// Fold is the merge-layer normalizer: lowercase, Ukrainian letters folded onto
// Russian ones, soft and hard signs dropped, punctuation turned into spaces.
func Fold(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = foldReplacer.Replace(s)
	s = foldPunct.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// FoldAll applies Fold to every keyword.
func FoldAll(words ...string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = Fold(w)
	}
	return out
}

// NormalizeAll applies Normalize to every keyword.
func NormalizeAll(words ...string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = Normalize(w)
	}
	return out
}

// ContainsAny reports whether text contains any of the substrings.
func ContainsAny(text string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(text, sub) {
			return true
		}
	}
	return false
}
