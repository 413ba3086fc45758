package bookings

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/pkg/logger"
	"github.com/futig/realtor-bot/internal/pkg/response"
	"github.com/futig/realtor-bot/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase BookingUsecase
}

func NewHandler(usecase BookingUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Export handles GET /api/v1/bookings/export?format=md|pdf|docx&since=&limit=
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportBookings")
	q := r.URL.Query()

	format, err := validator.ParseExportFormat(q.Get("format"))
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	since, err := validator.ParseSince(q.Get("since"))
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 || limit > validator.MaxExportLimit {
			h.handleError(ctx, w, fmt.Errorf("%w: limit must be between 0 and %d", entity.ErrInvalidParameter, validator.MaxExportLimit))
			return
		}
	}

	file, err := h.usecase.Export(ctx, format, since, limit)
	if err != nil {
		h.handleError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "sending export", zap.String("filename", file.Filename), zap.Int("rows", file.Rows))
	response.Attachment(w, file.ContentType, file.Filename, file.Data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	response.JSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidFormat) {
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
