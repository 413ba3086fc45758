package entity

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Answer keys written by the extraction and merge layers
const (
	KeyName              = "name"
	KeyType              = "type"
	KeyRoomsIn           = "rooms_in"
	KeyRooms             = "rooms"
	KeyBudget            = "budget"
	KeyPriceMax          = "price_max"
	KeyConditionIn       = "condition_in"
	KeyDistrictID        = "district_id"
	KeyMicroareaID       = "microarea_id"
	KeyStreetID          = "street_id"
	KeyDistrictText      = "district_text"
	KeyDistrictTextGuess = "district_text_approx"
	KeyAreaMin           = "area_min"
)

// Property types produced by the extractors
const (
	TypeApartment = "apartment"
	TypeHouse     = "house"
)

// Answers is the evolving per-conversation slot state.
// Values are string, int or nil; after a JSON round trip numbers may come back as float64.
type Answers map[string]any

// Clone returns a shallow copy, never nil.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Has reports whether key holds a non-empty value.
func (a Answers) Has(key string) bool {
	v, ok := a[key]
	if !ok {
		return false
	}
	return !IsEmptyValue(v)
}

// Int returns the value of key as int when it is numeric or a digit string.
func (a Answers) Int(key string) (int, bool) {
	switch v := a[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// String returns the value of key formatted as text, "" when absent.
func (a Answers) String(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// IsEmptyValue mirrors the "unanswered" notion: nil, blank string, empty slice or map.
func IsEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
