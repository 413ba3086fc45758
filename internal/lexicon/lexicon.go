// Package lexicon holds the Odesa location tables used by the matchers.
//
// A Lexicon is built once and never mutated afterwards, so it can be shared by
// any number of goroutines.
package lexicon

import (
	"sort"

	"github.com/futig/realtor-bot/internal/pkg/textnorm"
)

// Entry is one place in a namespace: a stable id, its display label and the
// lexical variants (synonyms, case forms) it is recognized by.
type Entry struct {
	ID       int
	Label    string
	Variants []string
}

// Lexicon is the immutable district and microarea store.
type Lexicon struct {
	districts     []Entry
	microareas    []Entry
	districtByID  map[int]string
	microareaByID map[int]string
}

// New builds a Lexicon. Variants are normalized and entries sorted by id.
// The input slices are not retained.
func New(districts, microareas []Entry) *Lexicon {
	l := &Lexicon{
		districts:     prepare(districts),
		microareas:    prepare(microareas),
		districtByID:  make(map[int]string, len(districts)),
		microareaByID: make(map[int]string, len(microareas)),
	}
	for _, e := range l.districts {
		l.districtByID[e.ID] = e.Label
	}
	for _, e := range l.microareas {
		l.microareaByID[e.ID] = e.Label
	}
	return l
}

func prepare(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		variants := make([]string, 0, len(e.Variants))
		seen := make(map[string]struct{}, len(e.Variants))
		for _, v := range e.Variants {
			n := textnorm.Normalize(v)
			if n == "" {
				continue
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			variants = append(variants, n)
		}
		out = append(out, Entry{ID: e.ID, Label: e.Label, Variants: variants})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Districts returns district entries ordered by id. The slice must not be modified.
func (l *Lexicon) Districts() []Entry {
	return l.districts
}

// Microareas returns microarea entries ordered by id. The slice must not be modified.
func (l *Lexicon) Microareas() []Entry {
	return l.microareas
}

// DistrictLabel returns the display label of a district id.
func (l *Lexicon) DistrictLabel(id int) (string, bool) {
	label, ok := l.districtByID[id]
	return label, ok
}

// MicroareaLabel returns the display label of a microarea id.
func (l *Lexicon) MicroareaLabel(id int) (string, bool) {
	label, ok := l.microareaByID[id]
	return label, ok
}
