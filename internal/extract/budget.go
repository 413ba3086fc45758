package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/futig/realtor-bot/internal/pkg/textnorm"
)

// groups: currency glyph, digits (thousand groups may be space separated
// and must end on a digit boundary), standalone thousands suffix, currency word
var budgetRe = regexp.MustCompile(
	`([$€₴]?)\s*(\d{1,3}(?:\s\d{3})+\b|\d+)` +
		`(?:\s*([kк]|тис\p{L}*|тыс\p{L}*)(?:$|[^\p{L}\p{N}]))?` +
		`\s*(usd|долар\p{L}*|дол|eur|євро|грн|uah|гривн\p{L}*|\$|€|₴)?`,
)

const minBudget = 10

// Budget extracts the largest price mentioned in text.
//
// "45к", "45 k" and "45 тис" mean thousands. A bare single digit with k and no currency
// marker ("5к") is skipped: it reads as a room-count shorthand just as well.
func Budget(text string) (int, bool) {
	t := textnorm.NormalizeMoney(text)
	if t == "" {
		return 0, false
	}

	best, found := 0, false
	for _, m := range budgetRe.FindAllStringSubmatch(t, -1) {
		v, ok := budgetCandidate(m[1], m[2], m[3], m[4])
		if !ok {
			continue
		}
		if !found || v > best {
			best, found = v, true
		}
	}

	return best, found
}

func budgetCandidate(glyph, digits, thousands, currency string) (int, bool) {
	num := strings.Join(strings.Fields(digits), "")
	hasMarker := glyph != "" || currency != ""
	shortK := thousands == "k" || thousands == "к"

	if shortK && !hasMarker && len(num) == 1 && num != "0" {
		return 0, false
	}

	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, false
	}
	if thousands != "" {
		if n > math.MaxInt/1000 {
			return 0, false
		}
		n *= 1000
	}
	if n < minBudget {
		return 0, false
	}

	return n, true
}
