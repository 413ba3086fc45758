package dialogue

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
)

// Canonical slot names
const (
	SlotName      = "name"
	SlotType      = "type"
	SlotDistrict  = "district"
	SlotRooms     = "rooms"
	SlotCondition = "condition"
	SlotBudget    = "budget"
)

// CanonicalAliases lists the raw answer keys that can satisfy each canonical slot.
var CanonicalAliases = map[string][]string{
	SlotName:      {"name"},
	SlotType:      {"type", "property_type", "object_type"},
	SlotDistrict:  {"district_id", "microarea_id", "district_text", "district", "location", "area", "district_area", "rayon"},
	SlotRooms:     {"rooms_in", "rooms", "room_count", "rooms_count"},
	SlotCondition: {"condition_in", "state", "condition", "repair", "remont"},
	SlotBudget:    {"budget", "price_max", "max_price", "budget_max", "price"},
}

// aliasGroup is the reverse index raw key -> canonical slot.
var aliasGroup = func() map[string]string {
	out := make(map[string]string)
	for slot, keys := range CanonicalAliases {
		for _, k := range keys {
			out[k] = slot
		}
	}
	return out
}()

// question text keywords, checked in this order
var questionCategories = []struct {
	slot     string
	keywords []string
}{
	{slot: SlotDistrict, keywords: []string{"район", "локац", "таїров", "центр", "фонтан", "аркаді", "мікрорайон"}},
	{slot: SlotRooms, keywords: []string{"кімнат", "комнат", "к-ть кімнат", "скільки кімнат"}},
	{slot: SlotCondition, keywords: []string{"ремонт", "стан", "оздоб", "отделоч"}},
	{slot: SlotBudget, keywords: []string{"бюджет", "ціна", "цiна", "price", "вартість", "скільки готові"}},
	{slot: SlotType, keywords: []string{"квартир", "будин", "тип", "що ви бажаєте придбати"}},
}

// Question is one entry of the question catalogue.
type Question struct {
	Key  string `json:"question_key"`
	Text string `json:"question_text"`
}

// DefaultQuestions is the catalogue used when no file is configured.
var DefaultQuestions = []Question{
	{Key: SlotName, Text: "Як до вас можна звертатись?"},
	{Key: SlotType, Text: "Що ви бажаєте придбати: квартиру чи будинок?"},
	{Key: SlotDistrict, Text: "У якому районі або мікрорайоні шукаєте?"},
	{Key: SlotRooms, Text: "Скільки кімнат потрібно?"},
	{Key: SlotCondition, Text: "Який стан ремонту вас цікавить?"},
	{Key: SlotBudget, Text: "Який ваш бюджет?"},
}

// LoadQuestions reads a JSON array of questions.
func LoadQuestions(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions file: %w", err)
	}

	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("failed to parse questions file: %w", err)
	}

	out := qs[:0]
	for _, q := range qs {
		q.Key = strings.TrimSpace(q.Key)
		if q.Key == "" {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("questions file %s: %w", path, entity.ErrMissingField)
	}

	return out, nil
}

// Checker decides which slots of the catalogue are still unanswered.
type Checker struct {
	order []string
	texts map[string]string
}

// NewChecker creates a Checker over the question catalogue.
func NewChecker(questions []Question) *Checker {
	c := &Checker{texts: make(map[string]string, len(questions))}
	for _, q := range questions {
		c.order = append(c.order, q.Key)
		c.texts[q.Key] = q.Text
	}
	return c
}

// QuestionKeys returns the catalogue keys without the name question.
func (c *Checker) QuestionKeys() []string {
	out := make([]string, 0, len(c.order))
	for _, k := range c.order {
		if k != SlotName {
			out = append(out, k)
		}
	}
	return out
}

// Text returns the question text for key.
func (c *Checker) Text(key string) string {
	return c.texts[key]
}

// Missing returns the required keys that are not answered, in declaration order.
func (c *Checker) Missing(answers entity.Answers, required []string) []string {
	missing := make([]string, 0, len(required))
	for _, k := range required {
		if !c.IsAnswered(k, answers) {
			missing = append(missing, k)
		}
	}
	return missing
}

// IsAnswered reports whether any alias of key holds a value. Keys outside
// the alias map fall back to the question text: the first keyword category
// it matches decides.
func (c *Checker) IsAnswered(key string, answers entity.Answers) bool {
	if len(answers) == 0 {
		return false
	}

	if aliases, known := knownAliases(key); known {
		return anySet(answers, aliases)
	}
	if answers.Has(key) {
		return true
	}

	text := strings.ToLower(c.texts[key])
	if text == "" {
		return false
	}
	for _, cat := range questionCategories {
		for _, w := range cat.keywords {
			if strings.Contains(text, w) {
				return anySet(answers, CanonicalAliases[cat.slot])
			}
		}
	}

	return false
}

func knownAliases(key string) ([]string, bool) {
	if keys, ok := CanonicalAliases[key]; ok {
		return keys, true
	}
	if slot, ok := aliasGroup[key]; ok {
		return CanonicalAliases[slot], true
	}
	return nil, false
}

func anySet(answers entity.Answers, keys []string) bool {
	for _, k := range keys {
		if answers.Has(k) {
			return true
		}
	}
	return false
}
