package lexicon

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"
)

// Place is a named location reference from the places file
type Place struct {
	Name string
	ID   int
}

// Places holds district, microarea and street name tables loaded from the
// listings backend export. Names are lowercased and ordered longest first.
type Places struct {
	Districts  []Place
	Microareas []Place
	Streets    []Place
}

type placesFile struct {
	Districts  map[string]int `json:"district"`
	Microareas map[string]int `json:"microarea"`
	Streets    map[string]int `json:"street"`
}

// LoadPlaces reads {"district":{name:id},"microarea":{...},"street":{...}}.
func LoadPlaces(path string) (*Places, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read places file: %w", err)
	}

	var raw placesFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse places JSON: %w", err)
	}

	return NewPlaces(raw.Districts, raw.Microareas, raw.Streets), nil
}

// NewPlaces builds Places from name -> id maps.
func NewPlaces(districts, microareas, streets map[string]int) *Places {
	return &Places{
		Districts:  toPlaces(districts),
		Microareas: toPlaces(microareas),
		Streets:    toPlaces(streets),
	}
}

// Empty reports whether no table has entries.
func (p *Places) Empty() bool {
	return p == nil || len(p.Districts)+len(p.Microareas)+len(p.Streets) == 0
}

func toPlaces(m map[string]int) []Place {
	out := make([]Place, 0, len(m))
	for name, id := range m {
		n := strings.ToLower(strings.TrimSpace(name))
		if n == "" || id <= 0 {
			continue
		}
		out = append(out, Place{Name: n, ID: id})
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(out[i].Name), utf8.RuneCountInString(out[j].Name)
		if li != lj {
			return li > lj
		}
		return out[i].Name < out[j].Name
	})
	return out
}
