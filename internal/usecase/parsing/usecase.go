package parsing

import (
	"context"

	"github.com/futig/realtor-bot/internal/dialogue"
	"github.com/futig/realtor-bot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type FreeTextParser interface {
	ParseFreeText(text string) entity.Answers
}

type LocationMatcher interface {
	Match(text string) (entity.Location, bool)
}

type AnswerMerger interface {
	Merge(existing entity.Answers, utterance string, prior *entity.Filters) entity.Answers
	MergeReply(existing entity.Answers, slot, utterance string, prior *entity.Filters) entity.Answers
}

// ParsingUsecase exposes the slot engine without a chat session: the caller
// owns the answer state.
type ParsingUsecase struct {
	parser    FreeTextParser
	locations LocationMatcher
	merger    AnswerMerger
	checker   *dialogue.Checker
	labels    dialogue.Labels
}

func NewUsecase(
	parser FreeTextParser,
	locations LocationMatcher,
	merger AnswerMerger,
	checker *dialogue.Checker,
	labels dialogue.Labels,
) *ParsingUsecase {
	return &ParsingUsecase{
		parser:    parser,
		locations: locations,
		merger:    merger,
		checker:   checker,
		labels:    labels,
	}
}

// Extract returns the slots found in one utterance.
func (uc *ParsingUsecase) Extract(ctx context.Context, req *entity.ExtractRequest) *entity.ExtractResponse {
	resp := &entity.ExtractResponse{Answers: uc.parser.ParseFreeText(req.Text)}
	if loc, ok := uc.locations.Match(req.Text); ok {
		resp.Location = &loc
	}

	ctxzap.Debug(ctx, "utterance parsed", zap.Int("slots", len(resp.Answers)))
	return resp
}

// Merge folds the utterance into the given state and reports what is still
// missing.
func (uc *ParsingUsecase) Merge(ctx context.Context, req *entity.MergeRequest) *entity.MergeResponse {
	answers := req.Answers
	if answers == nil {
		answers = entity.Answers{}
	}

	var merged entity.Answers
	if req.Slot != "" {
		merged = uc.merger.MergeReply(answers, req.Slot, req.Utterance, req.PriorFilters)
	} else {
		merged = uc.merger.Merge(answers, req.Utterance, req.PriorFilters)
	}
	filters := dialogue.FiltersFromAnswers(merged)

	resp := &entity.MergeResponse{
		Answers:        merged,
		Filters:        filters,
		Missing:        uc.checker.Missing(merged, uc.checker.QuestionKeys()),
		MissingFilters: dialogue.MissingKeys(filters),
		Summary:        dialogue.DescribeFilters(merged, filters, uc.labels),
	}
	if req.PriorFilters != nil {
		resp.Changes, _ = dialogue.DiffFilters(*req.PriorFilters, filters, uc.labels)
	}
	if resp.MissingFilters == nil {
		resp.MissingFilters = []string{}
	}

	ctxzap.Debug(ctx, "answers merged",
		zap.Int("slots", len(merged)),
		zap.Strings("missing", resp.Missing),
	)
	return resp
}
