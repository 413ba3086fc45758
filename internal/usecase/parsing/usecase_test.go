package parsing

import (
	"context"
	"testing"

	"github.com/futig/realtor-bot/internal/dialogue"
	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubParser struct{ found entity.Answers }

func (s stubParser) ParseFreeText(string) entity.Answers { return s.found.Clone() }

type stubLocations struct{ loc entity.Location }

func (s stubLocations) Match(string) (entity.Location, bool) { return s.loc, !s.loc.IsZero() }

type stubMerger struct {
	add   entity.Answers
	reply entity.Answers
}

func (s stubMerger) MergeReply(existing entity.Answers, _, utterance string, prior *entity.Filters) entity.Answers {
	out := s.Merge(existing, utterance, prior)
	for k, v := range s.reply {
		out[k] = v
	}
	return out
}

func (s stubMerger) Merge(existing entity.Answers, _ string, _ *entity.Filters) entity.Answers {
	out := existing.Clone()
	for k, v := range s.add {
		out[k] = v
	}
	return out
}

func newUsecase(found, add entity.Answers, loc entity.Location) *ParsingUsecase {
	return NewUsecase(
		stubParser{found: found},
		stubLocations{loc: loc},
		stubMerger{add: add},
		dialogue.NewChecker(dialogue.DefaultQuestions),
		lexicon.Default(),
	)
}

func TestExtract(t *testing.T) {
	uc := newUsecase(entity.Answers{entity.KeyRoomsIn: 2}, nil, entity.Location{MicroareaID: 116, DistrictText: "Таїрова"})

	resp := uc.Extract(context.Background(), &entity.ExtractRequest{Text: "2к на Таїрова"})
	assert.Equal(t, entity.Answers{entity.KeyRoomsIn: 2}, resp.Answers)
	require.NotNil(t, resp.Location)
	assert.Equal(t, 116, resp.Location.MicroareaID)

	resp = newUsecase(entity.Answers{}, nil, entity.Location{}).Extract(context.Background(), &entity.ExtractRequest{Text: "привіт"})
	assert.Nil(t, resp.Location)
}

func TestMerge(t *testing.T) {
	uc := newUsecase(nil, entity.Answers{entity.KeyBudget: 54000}, entity.Location{})

	resp := uc.Merge(context.Background(), &entity.MergeRequest{
		Answers:      entity.Answers{entity.KeyRoomsIn: 2, entity.KeyMicroareaID: 116},
		Utterance:    "дешевше",
		PriorFilters: &entity.Filters{MicroareaID: 116, RoomsIn: 2, PriceMax: 60000},
	})

	assert.Equal(t, 54000, resp.Filters.PriceMax)
	assert.Equal(t, []string{dialogue.SlotType, dialogue.SlotCondition}, resp.Missing)
	assert.Equal(t, []string{entity.KeyDistrictID, entity.KeyAreaMin}, resp.MissingFilters)
	assert.Equal(t, "до 54 000$", resp.Changes)
	assert.Equal(t, "2к · Таїрова · до $54 000", resp.Summary)
}

func TestMergeWithSlot(t *testing.T) {
	uc := NewUsecase(
		stubParser{},
		stubLocations{},
		stubMerger{reply: entity.Answers{entity.KeyType: entity.TypeHouse}},
		dialogue.NewChecker(dialogue.DefaultQuestions),
		lexicon.Default(),
	)
	state := entity.Answers{entity.KeyRoomsIn: 2}

	resp := uc.Merge(context.Background(), &entity.MergeRequest{Answers: state, Utterance: "котедж", Slot: dialogue.SlotType})
	assert.Equal(t, entity.TypeHouse, resp.Answers[entity.KeyType])
	assert.NotContains(t, resp.Missing, dialogue.SlotType)

	resp = uc.Merge(context.Background(), &entity.MergeRequest{Answers: state, Utterance: "котедж"})
	assert.Nil(t, resp.Answers[entity.KeyType])
	assert.Contains(t, resp.Missing, dialogue.SlotType)
}

func TestMergeNilAnswers(t *testing.T) {
	uc := newUsecase(nil, nil, entity.Location{})

	resp := uc.Merge(context.Background(), &entity.MergeRequest{Utterance: "привіт"})
	assert.NotNil(t, resp.Answers)
	assert.Empty(t, resp.Changes)
	assert.Len(t, resp.Missing, 5)
}
