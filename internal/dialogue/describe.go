package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
)

// Labels resolves location ids to display names.
type Labels interface {
	DistrictLabel(id int) (string, bool)
	MicroareaLabel(id int) (string, bool)
}

const defaultSummary = "Підбір за фільтрами"

// DescribeFilters renders a one-line Ukrainian summary of the search, e.g.
// "Квартира · 2к · Таїрова · до $60 000 · з ремонтом".
func DescribeFilters(a entity.Answers, f entity.Filters, labels Labels) string {
	var parts []string

	if t := strings.TrimSpace(a.String(entity.KeyType)); t != "" {
		if t == entity.TypeHouse {
			parts = append(parts, "Будинок")
		} else {
			parts = append(parts, "Квартира")
		}
	}

	if r := firstInt(a, entity.KeyRoomsIn, entity.KeyRooms); r != 0 {
		parts = append(parts, strconv.Itoa(r)+"к")
	}

	var loc []string
	if name, ok := labels.MicroareaLabel(f.MicroareaID); ok && f.MicroareaID != 0 {
		loc = append(loc, name)
	}
	if name, ok := labels.DistrictLabel(f.DistrictID); ok && f.DistrictID != 0 {
		loc = append(loc, name)
	}
	if len(loc) > 0 {
		parts = append(parts, strings.Join(loc, ", "))
	}

	if f.PriceMax != 0 {
		parts = append(parts, "до $"+groupThousands(f.PriceMax))
	}

	if c := conditionPhrase(conditionOf(a, f)); c != "" {
		parts = append(parts, c)
	}

	if len(parts) == 0 {
		return defaultSummary
	}
	return strings.Join(parts, " · ")
}

// FiltersRecord is the structured filter column of a booking row: the filters
// plus resolved labels.
func FiltersRecord(a entity.Answers, f entity.Filters, labels Labels) map[string]any {
	out := map[string]any{}
	if f.DistrictID != 0 {
		out[entity.KeyDistrictID] = f.DistrictID
		if name, ok := labels.DistrictLabel(f.DistrictID); ok {
			out["district"] = name
		}
	}
	if f.MicroareaID != 0 {
		out[entity.KeyMicroareaID] = f.MicroareaID
		if name, ok := labels.MicroareaLabel(f.MicroareaID); ok {
			out["microarea"] = name
		}
	}
	if f.RoomsIn != 0 {
		out[entity.KeyRoomsIn] = f.RoomsIn
	}
	if f.PriceMax != 0 {
		out[entity.KeyPriceMax] = f.PriceMax
	}
	if f.AreaMin != 0 {
		out[entity.KeyAreaMin] = f.AreaMin
	}
	if a.Has(entity.KeyType) {
		if a.String(entity.KeyType) == entity.TypeHouse {
			out[entity.KeyType] = entity.TypeHouse
		} else {
			out[entity.KeyType] = entity.TypeApartment
		}
	}
	if c := conditionOf(a, f); c != 0 {
		out[entity.KeyConditionIn] = c
		if c == int(entity.ConditionRenovated) {
			out["condition"] = "з ремонтом"
		} else {
			out["condition"] = "без ремонту"
		}
	}
	return out
}

// DiffFilters describes what changed between two queries, e.g.
// "Таїрова, 2 кімнати, до 60 000$". It reports false when nothing worth
// mentioning changed.
func DiffFilters(old, updated entity.Filters, labels Labels) (string, bool) {
	var parts []string

	name := ""
	if updated.MicroareaID != 0 && updated.MicroareaID != old.MicroareaID {
		name, _ = labels.MicroareaLabel(updated.MicroareaID)
	}
	if name == "" && updated.DistrictID != 0 && updated.DistrictID != old.DistrictID {
		name, _ = labels.DistrictLabel(updated.DistrictID)
	}
	if name != "" {
		parts = append(parts, name)
	}

	if updated.RoomsIn != 0 && updated.RoomsIn != old.RoomsIn {
		parts = append(parts, roomsPhrase(updated.RoomsIn))
	}

	if updated.ConditionIn != old.ConditionIn {
		if c := conditionPhrase(updated.ConditionIn); c != "" {
			parts = append(parts, c)
		}
	}

	if updated.PriceMax != 0 && updated.PriceMax != old.PriceMax {
		parts = append(parts, fmt.Sprintf("до %s$", groupThousands(updated.PriceMax)))
	}

	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, ", "), true
}

func conditionOf(a entity.Answers, f entity.Filters) int {
	if c := firstInt(a, entity.KeyConditionIn); c != 0 {
		return c
	}
	return f.ConditionIn
}

func conditionPhrase(code int) string {
	switch entity.ConditionCode(code) {
	case entity.ConditionRenovated:
		return "з ремонтом"
	case entity.ConditionFromDeveloper, entity.ConditionNeedsRenovation:
		return "без ремонту"
	default:
		return ""
	}
}

func roomsPhrase(n int) string {
	switch {
	case n == 1:
		return "1 кімната"
	case n >= 2 && n <= 4:
		return fmt.Sprintf("%d кімнати", n)
	default:
		return fmt.Sprintf("%d кімнат", n)
	}
}

// groupThousands formats 120000 as "120 000".
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
