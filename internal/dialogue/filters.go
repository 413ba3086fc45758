package dialogue

import (
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
)

// RequiredFilterKeys are the filter fields a listings query should carry.
var RequiredFilterKeys = []string{
	entity.KeyDistrictID,
	entity.KeyPriceMax,
	entity.KeyRoomsIn,
	entity.KeyAreaMin,
}

// DetectMissing returns the keys from ordered whose values are empty, keeping order.
func DetectMissing(answers entity.Answers, ordered []string) []string {
	missing := make([]string, 0, len(ordered))
	for _, k := range ordered {
		v := answers[k]
		if s, ok := v.(string); ok {
			v = strings.TrimSpace(s)
		}
		if entity.IsEmptyValue(v) {
			missing = append(missing, k)
		}
	}
	return missing
}

// MissingKeys lists the RequiredFilterKeys that f leaves unset.
func MissingKeys(f entity.Filters) []string {
	set := entity.Answers{}
	for k, v := range map[string]int{
		entity.KeyDistrictID: f.DistrictID,
		entity.KeyPriceMax:   f.PriceMax,
		entity.KeyRoomsIn:    f.RoomsIn,
		entity.KeyAreaMin:    f.AreaMin,
	} {
		if v != 0 {
			set[k] = v
		}
	}
	return DetectMissing(set, RequiredFilterKeys)
}

// FiltersFromAnswers derives the listings query from the answer state.
// Unparsable values are skipped.
func FiltersFromAnswers(a entity.Answers) entity.Filters {
	var f entity.Filters

	f.DistrictID = firstInt(a, entity.KeyDistrictID)
	f.MicroareaID = firstInt(a, entity.KeyMicroareaID)
	f.RoomsIn = firstInt(a, entity.KeyRoomsIn, entity.KeyRooms)
	f.PriceMax = firstInt(a, entity.KeyBudget, entity.KeyPriceMax)
	f.ConditionIn = firstInt(a, entity.KeyConditionIn)
	f.AreaMin = firstInt(a, entity.KeyAreaMin)

	switch t := strings.ToLower(strings.TrimSpace(a.String(entity.KeyType))); t {
	case entity.TypeHouse, entity.TypeApartment:
		f.Type = t
	}

	return f
}

// firstInt returns the integer of the first key holding a truthy value.
func firstInt(a entity.Answers, keys ...string) int {
	for _, k := range keys {
		if !isSet(a, k) {
			continue
		}
		n, ok := a.Int(k)
		if !ok {
			return 0
		}
		return n
	}
	return 0
}

// MergeFilters overlays the set fields of change onto base.
func MergeFilters(base, change entity.Filters) entity.Filters {
	out := base
	if change.DistrictID != 0 {
		out.DistrictID = change.DistrictID
	}
	if change.MicroareaID != 0 {
		out.MicroareaID = change.MicroareaID
	}
	if change.RoomsIn != 0 {
		out.RoomsIn = change.RoomsIn
	}
	if change.PriceMax != 0 {
		out.PriceMax = change.PriceMax
	}
	if change.ConditionIn != 0 {
		out.ConditionIn = change.ConditionIn
	}
	if change.AreaMin != 0 {
		out.AreaMin = change.AreaMin
	}
	if change.Type != "" {
		out.Type = change.Type
	}
	return out
}
