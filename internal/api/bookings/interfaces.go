package bookings

import (
	"context"
	"time"

	"github.com/futig/realtor-bot/internal/entity"
)

type BookingUsecase interface {
	Export(ctx context.Context, format entity.ExportFormat, since time.Time, limit int) (*entity.ExportFile, error)
}
