package parsing

import (
	"context"

	"github.com/futig/realtor-bot/internal/entity"
)

type ParsingUsecase interface {
	Extract(ctx context.Context, req *entity.ExtractRequest) *entity.ExtractResponse
	Merge(ctx context.Context, req *entity.MergeRequest) *entity.MergeResponse
}
