package location

import (
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/lexicon"
)

// Resolver maps an answer that starts with a known place name to its id,
// checking streets, then microareas, then districts.
type Resolver struct {
	places *lexicon.Places
}

// NewResolver creates a resolver; nil places resolve nothing.
func NewResolver(places *lexicon.Places) *Resolver {
	return &Resolver{places: places}
}

// Resolve returns the first place whose name prefixes the lowercased text.
func (r *Resolver) Resolve(text string) (entity.Location, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" || r.places.Empty() {
		return entity.Location{}, false
	}

	if id, ok := startsWith(r.places.Streets, t); ok {
		return entity.Location{StreetID: id}, true
	}
	if id, ok := startsWith(r.places.Microareas, t); ok {
		return entity.Location{MicroareaID: id}, true
	}
	if id, ok := startsWith(r.places.Districts, t); ok {
		return entity.Location{DistrictID: id}, true
	}

	return entity.Location{}, false
}

func startsWith(places []lexicon.Place, text string) (int, bool) {
	for _, p := range places {
		if strings.HasPrefix(text, p.Name) {
			return p.ID, true
		}
	}
	return 0, false
}
