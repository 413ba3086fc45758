package parsing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/pkg/logger"
	"github.com/futig/realtor-bot/internal/pkg/response"
	"github.com/futig/realtor-bot/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	usecase   ParsingUsecase
	validator *validator.Validator
}

func NewHandler(usecase ParsingUsecase, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Extract handles POST /api/v1/extract
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Extract")

	var req entity.ExtractRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateExtract(&req); err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := h.usecase.Extract(ctx, &req)
	response.Success(w, resp)
}

// Merge handles POST /api/v1/merge
func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Merge")

	var req entity.MergeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateMerge(&req); err != nil {
		handleError(ctx, w, err)
		return
	}

	resp := h.usecase.Merge(ctx, &req)

	ctxzap.Info(ctx, "merge completed",
		zap.Int("missing", len(resp.Missing)),
		zap.String("summary", resp.Summary),
	)
	response.Success(w, resp)
}

// decodeJSON keeps numbers exact so integer slots survive the round trip.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	return dec.Decode(dst)
}

func respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidFormat) || errors.Is(err, entity.ErrMissingField) {
		respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	} else {
		respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
