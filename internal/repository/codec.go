package repository

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/futig/realtor-bot/internal/entity"
)

func encodeState(s *entity.Session) (answers, filters []byte, err error) {
	a := s.Answers
	if a == nil {
		a = entity.Answers{}
	}
	if answers, err = json.Marshal(a); err != nil {
		return nil, nil, fmt.Errorf("encode answers: %w", err)
	}
	if filters, err = json.Marshal(s.Filters); err != nil {
		return nil, nil, fmt.Errorf("encode filters: %w", err)
	}
	return answers, filters, nil
}

// decodeAnswers restores whole numbers as int so that a stored state
// compares equal to the one that was saved.
func decodeAnswers(raw []byte) (entity.Answers, error) {
	a := entity.Answers{}
	if len(raw) == 0 {
		return a, nil
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	for k, v := range a {
		if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < math.MaxInt32 {
			a[k] = int(f)
		}
	}
	return a, nil
}

func decodeFilters(raw []byte) (entity.Filters, error) {
	var f entity.Filters
	if len(raw) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return f, fmt.Errorf("decode filters: %w", err)
	}
	return f, nil
}
