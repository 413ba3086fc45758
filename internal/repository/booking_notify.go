package repository

import (
	"context"
	"time"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// BookingNotifier is told about every stored booking
type BookingNotifier interface {
	NotifyBooking(ctx context.Context, b *entity.Booking) error
}

var _ BookingRepository = &NotifyingBookings{}

// NotifyingBookings forwards stored bookings to a notifier. A failed
// notification is logged; the row is already stored.
type NotifyingBookings struct {
	BookingRepository
	notifier BookingNotifier
}

func NewNotifyingBookings(inner BookingRepository, notifier BookingNotifier) *NotifyingBookings {
	return &NotifyingBookings{BookingRepository: inner, notifier: notifier}
}

func (r *NotifyingBookings) AddBooking(ctx context.Context, b *entity.Booking) error {
	if err := r.BookingRepository.AddBooking(ctx, b); err != nil {
		return err
	}

	if err := r.notifier.NotifyBooking(ctx, b); err != nil {
		ctxzap.Warn(ctx, "booking notification failed",
			zap.String("booking_id", b.ID),
			zap.Error(err),
		)
	}
	return nil
}

func (r *NotifyingBookings) ListBookings(ctx context.Context, since time.Time, limit int) ([]entity.Booking, error) {
	return r.BookingRepository.ListBookings(ctx, since, limit)
}
