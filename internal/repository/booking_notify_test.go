package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	got []entity.Booking
	err error
}

func (n *recordingNotifier) NotifyBooking(_ context.Context, b *entity.Booking) error {
	n.got = append(n.got, *b)
	return n.err
}

func TestNotifyingBookings(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	repo := NewNotifyingBookings(NewBookingMemory(), notifier)

	require.NoError(t, repo.AddBooking(ctx, &entity.Booking{FullName: "Олена", Intent: entity.IntentView}))

	require.Len(t, notifier.got, 1)
	assert.NotEmpty(t, notifier.got[0].ID)
	assert.Equal(t, "Олена", notifier.got[0].FullName)

	stored, err := repo.ListBookings(ctx, notifier.got[0].CreatedAt, 0)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestNotifyingBookingsNotifierFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewNotifyingBookings(NewBookingMemory(), &recordingNotifier{err: errors.New("webhook down")})

	require.NoError(t, repo.AddBooking(ctx, &entity.Booking{Intent: entity.IntentContact}))

	stored, err := repo.ListBookings(ctx, time.Time{}, 0)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

type failingBookings struct{ BookingRepository }

func (failingBookings) AddBooking(context.Context, *entity.Booking) error {
	return errors.New("disk full")
}

func TestNotifyingBookingsSkipsOnStoreError(t *testing.T) {
	notifier := &recordingNotifier{}
	repo := NewNotifyingBookings(failingBookings{}, notifier)

	require.Error(t, repo.AddBooking(context.Background(), &entity.Booking{}))
	assert.Empty(t, notifier.got)
}
