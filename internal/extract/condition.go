package extract

import (
	"regexp"
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/pkg/textnorm"
)

type conditionRung struct {
	code  entity.ConditionCode
	stems []string
	re    *regexp.Regexp
}

// first match wins; earlier rungs suppress later ones
var conditionLadder = []conditionRung{
	{
		code:  entity.ConditionRenovated,
		stems: textnorm.NormalizeAll("евроремонт", "євроремонт", "готовим ремонтом"),
		re:    regexp.MustCompile(`(?:^|\s)[зс]\s+ремонт`),
	},
	{
		code:  entity.ConditionNeedsRenovation,
		stems: textnorm.NormalizeAll("під ремонт", "под ремонт", "требує ремонт", "требует ремонт"),
	},
	{
		code: entity.ConditionFromDeveloper,
		stems: textnorm.NormalizeAll(
			"без ремонт",
			"от строител", "после строител",
			"от застройщик", "застройщика",
			"від будівельник", "вид будівельник", "від будивельник", "вид будивельник",
			"від забудовник", "вид забудовник",
			"після будівельник",
			"в новобудов", "в новостройк",
		),
	},
	{
		code:  entity.ConditionNeedsFinishing,
		stems: textnorm.NormalizeAll("під оздоб", "под отделоч"),
	},
	{
		code:  entity.ConditionCapital,
		stems: textnorm.NormalizeAll("капитальн", "капітальн", "хороший ремонт"),
	},
}

// Condition runs the single-shot priority ladder: renovated, needs
// renovation, from developer, needs finishing, capital renovation.
func Condition(text string) (entity.ConditionCode, bool) {
	t := textnorm.Normalize(text)
	if t == "" {
		return 0, false
	}

	for _, rung := range conditionLadder {
		if textnorm.ContainsAny(t, rung.stems) || (rung.re != nil && rung.re.MatchString(t)) {
			return rung.code, true
		}
	}

	return 0, false
}

var (
	positiveCues = textnorm.FoldAll(
		"з ремонтом", "с ремонтом",
		"новый ремонт", "новий ремонт", "свежий ремонт",
		"качественный ремонт", "отличный ремонт",
		"капремонт", "капитальный ремонт",
		"евроремонт", "євроремонт",
	)
	negativeCues = textnorm.FoldAll(
		"без ремонта", "без ремонту",
		"после строител", "після буд",
		"состояние от строителей", "сост от строителей", "от строителей",
		"чернов", "чорнов",
		"под ремонт",
	)
)

// ConditionLastCue is the conversational detector. Positive cues mean
// renovated, negative cues mean as-built; when both occur the cue that
// appears last in the text wins.
func ConditionLastCue(text string) (entity.ConditionCode, bool) {
	t := textnorm.Fold(text)
	if t == "" {
		return 0, false
	}

	pos := lastCue(t, positiveCues)
	neg := lastCue(t, negativeCues)

	switch {
	case pos < 0 && neg < 0:
		return 0, false
	case pos > neg:
		return entity.ConditionRenovated, true
	case neg > pos:
		return entity.ConditionFromDeveloper, true
	default:
		return 0, false
	}
}

// lastCue returns the greatest offset at which a cue starts a word, or -1.
func lastCue(text string, cues []string) int {
	last := -1
	for _, cue := range cues {
		if cue == "" {
			continue
		}
		rest := text
		for {
			i := strings.LastIndex(rest, cue)
			if i < 0 {
				break
			}
			if i == 0 || text[i-1] == ' ' {
				if i > last {
					last = i
				}
				break
			}
			rest = text[:i]
		}
	}
	return last
}
