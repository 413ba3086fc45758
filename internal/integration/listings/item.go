package listings

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
)

var digitsRe = regexp.MustCompile(`\d+`)

// toListing maps one loosely typed backend item. Field names vary between
// backend versions, so every attribute has a list of fallbacks.
func toListing(item map[string]any) entity.Listing {
	l := entity.Listing{
		ID:          asString(item["id"]),
		Title:       firstString(item, "title", "name", "headline"),
		Address:     address(item),
		Description: longestString(item, "description", "description_full", "full_description", "short_description", "body", "text"),
		URL:         firstString(item, "url", "link"),
		Currency:    firstString(item, "currency"),
	}

	if p, ok := asFloat(item["price"]); ok && p > 0 {
		l.Price = p
	} else if prices, ok := item["prices"].(map[string]any); ok {
		if p, ok := asFloat(prices["value"]); ok {
			l.Price = p
		}
		if l.Currency == "" {
			l.Currency = asString(prices["currency"])
		}
	}

	l.Rooms = firstNumber(item, "rooms", "rooms_in", "roomCount")
	for _, k := range []string{"area_total", "area", "square"} {
		if a, ok := asFloat(item[k]); ok && a > 0 {
			l.Area = a
			break
		}
	}

	l.DistrictID = firstNumber(item, "district_id", "district")
	l.MicroareaID = firstNumber(item, "microarea_id", "microarea")
	l.Condition = condition(item)

	return l
}

func address(item map[string]any) string {
	for _, k := range []string{"address", "location", "addr"} {
		if s, ok := item[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	addr, ok := item["address"].(map[string]any)
	if !ok {
		return ""
	}

	street := strings.TrimSpace(asString(addr["street_type"]) + " " + asString(addr["street"]))
	house := firstString(addr, "house", "house_number")

	var parts []string
	for _, p := range []string{asString(addr["city"]), street, house} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// condition reads the numeric renovation category; string values such as
// "8" or "cond_8" are accepted.
func condition(item map[string]any) int {
	for _, k := range []string{"condition_in", "condition_id", "condition"} {
		switch v := item[k].(type) {
		case string:
			if m := digitsRe.FindString(v); m != "" {
				if n, err := strconv.Atoi(m); err == nil {
					return n
				}
			}
		default:
			if n, ok := asInt(v); ok && n != 0 {
				return n
			}
		}
	}
	return 0
}

func longestString(item map[string]any, keys ...string) string {
	best := ""
	for _, k := range keys {
		if s, ok := item[k].(string); ok {
			s = strings.TrimSpace(s)
			if len(s) > len(best) {
				best = s
			}
		}
	}
	return best
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return ""
	}
}

func asInt(v any) (int, bool) {
	f, ok := asFloat(v)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
