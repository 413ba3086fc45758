package conversation

import (
	"context"

	"github.com/futig/realtor-bot/internal/entity"
)

type ListingsConnector interface {
	Search(ctx context.Context, filters entity.Filters, limit, offset int) (*entity.ListingPage, error)
}

type AnswerMerger interface {
	Merge(existing entity.Answers, utterance string, prior *entity.Filters) entity.Answers
	MergeReply(existing entity.Answers, slot, utterance string, prior *entity.Filters) entity.Answers
}

type PlaceResolver interface {
	Resolve(text string) (entity.Location, bool)
}
