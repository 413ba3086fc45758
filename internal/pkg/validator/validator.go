package validator

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/futig/realtor-bot/internal/dialogue"
	"github.com/futig/realtor-bot/internal/entity"
)

const (
	// MaxUtteranceRunes bounds a single chat message sent for parsing.
	MaxUtteranceRunes = 4096
	MaxExportLimit    = 10000

	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// Validator validates API requests and chat input
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateExtract(req *entity.ExtractRequest) error {
	return validateUtterance("text", req.Text)
}

func (v *Validator) ValidateMerge(req *entity.MergeRequest) error {
	if err := validateUtterance("utterance", req.Utterance); err != nil {
		return err
	}
	if req.PriorFilters != nil && req.PriorFilters.PriceMax < 0 {
		return fmt.Errorf("%w: prior_filters.price_max must not be negative", entity.ErrInvalidParameter)
	}
	if req.Slot != "" {
		if _, ok := dialogue.CanonicalAliases[req.Slot]; !ok || req.Slot == dialogue.SlotName {
			return fmt.Errorf("%w: unknown slot %q", entity.ErrInvalidParameter, req.Slot)
		}
	}
	return nil
}

func validateUtterance(field, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: %s", entity.ErrMissingField, field)
	}
	if n := utf8.RuneCountInString(text); n > MaxUtteranceRunes {
		return fmt.Errorf("%w: %s is %d characters (max %d)", entity.ErrInvalidParameter, field, n, MaxUtteranceRunes)
	}
	return nil
}

// ParseExportFormat maps a query value to an export format; empty means markdown.
func ParseExportFormat(raw string) (entity.ExportFormat, error) {
	switch f := entity.ExportFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return entity.FormatMarkdown, nil
	case entity.FormatMarkdown, entity.FormatPDF, entity.FormatDOCX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: format %q (allowed: md, pdf, docx)", entity.ErrInvalidFormat, raw)
	}
}

// ParseSince accepts RFC 3339 timestamps or plain dates; empty means no bound.
func ParseSince(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: since %q", entity.ErrInvalidFormat, raw)
}

// NormalizePhone keeps digits and a leading plus. Telegram contacts arrive
// with or without the plus sign.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	digits := 0
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsDigit(r) && r < utf8.RuneSelf:
			b.WriteRune(r)
			digits++
		case r == ' ', r == '-', r == '(', r == ')', r == '+':
		default:
			return "", fmt.Errorf("%w: phone", entity.ErrInvalidFormat)
		}
	}

	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return "", fmt.Errorf("%w: phone must have %d-%d digits", entity.ErrInvalidFormat, minPhoneDigits, maxPhoneDigits)
	}
	return "+" + b.String(), nil
}
