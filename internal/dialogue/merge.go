// Package dialogue folds chat turns into the answer state and decides which
// slots are still missing.
package dialogue

import (
	"encoding/json"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/extract"
	"github.com/futig/realtor-bot/internal/pkg/textnorm"
)

// FreeTextParser runs the single-shot slot extractors.
type FreeTextParser interface {
	ParseFreeText(text string) entity.Answers
	InterpretAnswer(key, text string) (any, bool)
}

// slotAnswerKeys are the answer keys a direct reply to a slot question is
// parsed as, tried in order.
var slotAnswerKeys = map[string][]string{
	SlotType:      {entity.KeyType},
	SlotDistrict:  {entity.KeyMicroareaID, entity.KeyDistrictID},
	SlotRooms:     {entity.KeyRoomsIn},
	SlotCondition: {entity.KeyConditionIn},
	SlotBudget:    {entity.KeyPriceMax},
}

// LocationDetector finds location ids in an utterance.
type LocationDetector interface {
	Match(text string) (entity.Location, bool)
}

const maxGuessWords = 6

var (
	shorthandBudgetRe = regexp.MustCompile(`(\d+)\s*(?:([kк])(?:$|[^\p{L}])|(тис|тыс))`)
	bareBudgetRe      = regexp.MustCompile(`\d(?:[\s\x{00a0}]*\d)+`)
	roomsExplicitRe   = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])([1-9])\s*(к|комн\p{L}*|кимн\p{L}*)(?:$|[^\p{L}\p{N}])`)

	cheaperCues = textnorm.FoldAll("дешев")
	pricierCues = textnorm.FoldAll("дорожч", "дороже", "подороже")

	roomWords = []struct {
		rooms int
		stems []string
	}{
		{rooms: 1, stems: textnorm.FoldAll("однокімнат", "однокомнат", "одн комнат", "одно кімнат")},
		{rooms: 2, stems: textnorm.FoldAll("двокімнат", "двухкомнат", "двух комнат", "две комнат", "двохкімнат")},
		{rooms: 3, stems: textnorm.FoldAll("трикімнат", "трьохкімнат", "трехкомнат", "три комнат")},
	}
	roomSlang = []struct {
		rooms int
		stems []string
	}{
		{rooms: 2, stems: textnorm.FoldAll("двушка", "двушк", "двойк", "двоечк")},
		{rooms: 3, stems: textnorm.FoldAll("трешка", "трьошк", "трешк", "трёшк")},
	}

	conditionTriggers = textnorm.FoldAll(
		"ремонт", "без ремонт", "без ремонта",
		"чернов", "чорнов",
		"під ремонт", "под ремонт",
		"після будівель", "после строител",
		"от строител", "від будівельник", "вид будівельник",
		"отделоч", "оздоблювальн",
		"евроремонт", "євроремонт",
	)

	houseFallback     = textnorm.FoldAll("дом", "будинок", "частный дом", "частн дом")
	apartmentFallback = textnorm.FoldAll("квартир", "апартам")
)

// Merger applies one utterance to the answer state.
type Merger struct {
	parser    FreeTextParser
	locations LocationDetector
}

// NewMerger creates a Merger. locations is the prefix matcher whose ids are
// applied last and overwrite earlier values.
func NewMerger(parser FreeTextParser, locations LocationDetector) *Merger {
	return &Merger{
		parser:    parser,
		locations: locations,
	}
}

// Merge returns a new answer state with the utterance folded in. existing is
// not modified. prior carries the filters of the previous listings query and
// may be nil.
//
// Values already set are only replaced by an explicit new value from the
// utterance, by a relative budget change, by prefix-matched location ids or
// by a condition cue.
func (m *Merger) Merge(existing entity.Answers, utterance string, prior *entity.Filters) entity.Answers {
	out := existing.Clone()
	folded := textnorm.Fold(utterance)

	m.applyFound(out, m.parser.ParseFreeText(utterance))

	if !isSet(out, entity.KeyDistrictText) {
		short := strings.TrimSpace(utterance)
		if n := len(strings.Fields(short)); n > 0 && n <= maxGuessWords {
			out[entity.KeyDistrictText] = short
			out[entity.KeyDistrictTextGuess] = true
		}
	}

	if !hasBudget(out) {
		if v, ok := budgetShorthand(folded, utterance); ok {
			out[entity.KeyBudget] = v
		}
	}

	if !hasBudget(out) && prior != nil && prior.PriceMax > 0 {
		if v, ok := relativeBudget(folded, prior.PriceMax); ok {
			out[entity.KeyBudget] = v
		}
	}

	if !isSet(out, entity.KeyRoomsIn) && !isSet(out, entity.KeyRooms) {
		if n, ok := roomsFallback(folded); ok {
			out[entity.KeyRoomsIn] = n
			if !isSet(out, entity.KeyRooms) {
				out[entity.KeyRooms] = n
			}
		}
	}

	if loc, ok := m.locations.Match(utterance); ok {
		if loc.MicroareaID != 0 {
			out[entity.KeyMicroareaID] = loc.MicroareaID
		}
		if loc.DistrictID != 0 {
			out[entity.KeyDistrictID] = loc.DistrictID
		}
		if loc.StreetID != 0 {
			out[entity.KeyStreetID] = loc.StreetID
		}
	}

	if textnorm.ContainsAny(folded, conditionTriggers) {
		if c, ok := extract.ConditionLastCue(utterance); ok {
			out[entity.KeyConditionIn] = int(c)
		}
	}

	if !isSet(out, entity.KeyType) {
		switch {
		case textnorm.ContainsAny(folded, houseFallback):
			out[entity.KeyType] = entity.TypeHouse
		case textnorm.ContainsAny(folded, apartmentFallback):
			out[entity.KeyType] = entity.TypeApartment
		}
	}

	return out
}

// MergeReply is Merge for an utterance that replies to the question about
// slot. When the free-text pass leaves the slot empty, the utterance is read
// as a direct answer to that question.
func (m *Merger) MergeReply(existing entity.Answers, slot, utterance string, prior *entity.Filters) entity.Answers {
	out := m.Merge(existing, utterance, prior)
	if anySet(out, CanonicalAliases[slot]) {
		return out
	}

	for _, key := range slotAnswerKeys[slot] {
		if v, ok := m.parser.InterpretAnswer(key, utterance); ok {
			m.applyFound(out, entity.Answers{key: v})
			break
		}
	}
	return out
}

func (m *Merger) applyFound(out, found entity.Answers) {
	keys := make([]string, 0, len(found))
	for k := range found {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := found[k]
		if !truthy(v) {
			continue
		}

		switch k {
		case entity.KeyPriceMax:
			if !isSet(out, entity.KeyBudget) {
				out[entity.KeyBudget] = v
			}
		case entity.KeyRoomsIn:
			if !isSet(out, entity.KeyRooms) {
				out[entity.KeyRooms] = v
			}
		case entity.KeyType:
			out[entity.KeyType] = classifyType(v)
			continue
		case entity.KeyDistrictText:
			delete(out, entity.KeyDistrictTextGuess)
		}

		out[k] = v
	}
}

func classifyType(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "буд"):
		return entity.TypeHouse
	case strings.Contains(lower, "кварт"):
		return entity.TypeApartment
	default:
		return v
	}
}

// budgetShorthand looks for "<n>к" or "<n> тис" in the folded text, then for
// a bare run of at least four digits in the raw text.
func budgetShorthand(folded, raw string) (int, bool) {
	for _, m := range shorthandBudgetRe.FindAllStringSubmatch(folded, -1) {
		if m[2] != "" && len(m[1]) == 1 && m[1] != "0" {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n > math.MaxInt/1000 {
			continue
		}
		return n * 1000, true
	}

	for _, run := range bareBudgetRe.FindAllString(raw, -1) {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, run)
		if len(digits) < 4 {
			continue
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		return n, true
	}

	return 0, false
}

// relativeBudget moves the previous ceiling by 10% when the utterance asks
// for something cheaper or pricier; the cue appearing last wins.
func relativeBudget(folded string, old int) (int, bool) {
	cheaper := lastIndexAny(folded, cheaperCues)
	pricier := lastIndexAny(folded, pricierCues)

	switch {
	case cheaper < 0 && pricier < 0:
		return 0, false
	case cheaper > pricier:
		return old * 9 / 10, true
	default:
		return old * 11 / 10, true
	}
}

func lastIndexAny(text string, subs []string) int {
	last := -1
	for _, s := range subs {
		if i := strings.LastIndex(text, s); i > last {
			last = i
		}
	}
	return last
}

func roomsFallback(folded string) (int, bool) {
	if m := roomsExplicitRe.FindStringSubmatch(folded); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}

	for _, w := range roomWords {
		if textnorm.ContainsAny(folded, w.stems) {
			return w.rooms, true
		}
	}

	for _, w := range roomSlang {
		if textnorm.ContainsAny(folded, w.stems) {
			return w.rooms, true
		}
	}

	return 0, false
}

func hasBudget(a entity.Answers) bool {
	return isSet(a, entity.KeyBudget) || isSet(a, entity.KeyPriceMax)
}

func isSet(a entity.Answers, key string) bool {
	return truthy(a[key])
}

// truthy treats zero numbers and false like an unanswered slot.
func truthy(v any) bool {
	switch t := v.(type) {
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case bool:
		return t
	default:
		return !entity.IsEmptyValue(v)
	}
}
