package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/pkg/formatter"
	"github.com/futig/realtor-bot/internal/repository"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// BookingUsecase renders the bookings log for operators
type BookingUsecase struct {
	bookings   repository.BookingRepository
	formatters *formatter.Factory
	now        func() time.Time
}

func NewUsecase(bookings repository.BookingRepository, formatters *formatter.Factory) *BookingUsecase {
	return &BookingUsecase{
		bookings:   bookings,
		formatters: formatters,
		now:        time.Now,
	}
}

// Export renders bookings created at or after since, oldest first.
func (uc *BookingUsecase) Export(ctx context.Context, format entity.ExportFormat, since time.Time, limit int) (*entity.ExportFile, error) {
	f, err := uc.formatters.Create(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidFormat, err)
	}

	rows, err := uc.bookings.ListBookings(ctx, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	data, err := f.Format(rows)
	if err != nil {
		return nil, fmt.Errorf("format bookings: %w", err)
	}

	ctxzap.Info(ctx, "bookings exported",
		zap.String("format", string(format)),
		zap.Int("rows", len(rows)),
		zap.Int("bytes", len(data)),
	)

	return &entity.ExportFile{
		Filename:    "bookings-" + uc.now().UTC().Format("20060102-150405") + f.FileExtension(),
		ContentType: f.ContentType(),
		Data:        data,
		Rows:        len(rows),
	}, nil
}
