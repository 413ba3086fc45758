package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/futig/realtor-bot/internal/pkg/textnorm"
)

type roomFamily struct {
	rooms int
	stems []string
}

// slang and formal stems per room count, tried in ascending order
var roomFamilies = []roomFamily{
	{rooms: 1, stems: textnorm.NormalizeAll("однуш", "однокімн", "однокомнат")},
	{rooms: 2, stems: textnorm.NormalizeAll("двуш", "двокімн", "двухкомнат")},
	{rooms: 3, stems: textnorm.NormalizeAll("трешк", "трішка", "тришк", "трикімнат", "трехкомнат")},
	{rooms: 4, stems: textnorm.NormalizeAll("четырехкомнат", "чотирикімн")},
}

var (
	roomsWord  = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])([1-4])\s*(?:кімн|комн)`)
	roomsShort = regexp.MustCompile(`(?:^|[^\p{L}\p{N}])([1-4])\s*к(?:$|[^\p{L}\p{N}])`)
)

// Rooms extracts a room count between 1 and 4.
func Rooms(text string) (int, bool) {
	t := textnorm.Normalize(text)
	if t == "" {
		return 0, false
	}

	for _, f := range roomFamilies {
		for _, stem := range f.stems {
			if strings.Contains(t, stem) {
				return f.rooms, true
			}
		}
	}

	for _, re := range []*regexp.Regexp{roomsWord, roomsShort} {
		if m := re.FindStringSubmatch(t); m != nil {
			n, err := strconv.Atoi(m[1])
			if err == nil {
				return n, true
			}
		}
	}

	return 0, false
}
