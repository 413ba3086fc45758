package lexicon

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/futig/realtor-bot/internal/pkg/textnorm"
)

type keyword struct {
	key   string
	label string
}

// Keywords is an external keyword -> location label dictionary.
// The zero value is an empty dictionary.
type Keywords struct {
	// ordered by key length descending, then key ascending
	entries []keyword
}

// NewKeywords builds a dictionary from raw pairs; keys are normalized.
func NewKeywords(pairs map[string]string) Keywords {
	entries := make([]keyword, 0, len(pairs))
	seen := make(map[string]struct{}, len(pairs))
	for k, v := range pairs {
		nk := textnorm.Normalize(k)
		label := strings.TrimSpace(v)
		if nk == "" || label == "" {
			continue
		}
		if _, dup := seen[nk]; dup {
			continue
		}
		seen[nk] = struct{}{}
		entries = append(entries, keyword{key: nk, label: label})
	}
	sort.Slice(entries, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(entries[i].key), utf8.RuneCountInString(entries[j].key)
		if li != lj {
			return li > lj
		}
		return entries[i].key < entries[j].key
	})
	return Keywords{entries: entries}
}

// LoadKeywords reads a flat JSON object of keyword -> label.
func LoadKeywords(path string) (Keywords, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Keywords{}, fmt.Errorf("read keywords file: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return Keywords{}, fmt.Errorf("parse keywords JSON: %w", err)
	}

	return NewKeywords(raw), nil
}

// Len returns the number of keywords.
func (k Keywords) Len() int {
	return len(k.entries)
}

// Longest returns the label of the longest keyword contained in normText.
func (k Keywords) Longest(normText string) (string, bool) {
	if normText == "" {
		return "", false
	}
	for _, e := range k.entries {
		if strings.Contains(normText, e.key) {
			return e.label, true
		}
	}
	return "", false
}
