package repository

import (
	"context"
	"testing"
	"time"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionMemoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionMemory(time.Minute)

	_, err := repo.GetActiveSession(ctx, 42)
	require.ErrorIs(t, err, entity.ErrSessionNotFound)

	s := &entity.Session{
		TelegramUserID: 42,
		Status:         entity.SessionStatusActive,
		Stage:          entity.StageCollecting,
		Answers:        entity.Answers{entity.KeyRoomsIn: 2},
	}
	require.NoError(t, repo.CreateSession(ctx, s))
	require.NotEmpty(t, s.ID)

	// caller mutations must not leak into the store
	s.Answers[entity.KeyPriceMax] = 60000

	got, err := repo.GetActiveSession(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, entity.Answers{entity.KeyRoomsIn: 2}, got.Answers)

	got.Answers[entity.KeyPriceMax] = 60000
	got.Filters.PriceMax = 60000
	require.NoError(t, repo.UpdateSession(ctx, got))

	again, err := repo.GetActiveSession(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 60000, again.Filters.PriceMax)
	assert.Equal(t, 60000, again.Answers[entity.KeyPriceMax])

	require.NoError(t, repo.CloseSession(ctx, s.ID))
	_, err = repo.GetActiveSession(ctx, 42)
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
	assert.ErrorIs(t, repo.CloseSession(ctx, "missing"), entity.ErrSessionNotFound)
}

func TestSessionMemoryUpdateUnknown(t *testing.T) {
	repo := NewSessionMemory(time.Minute)
	err := repo.UpdateSession(context.Background(), &entity.Session{ID: "x", TelegramUserID: 1})
	assert.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestSessionMemoryUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionMemory(time.Minute)

	_, err := repo.GetUser(ctx, 7)
	require.ErrorIs(t, err, entity.ErrUserNotFound)
	assert.ErrorIs(t, repo.SetUserPhone(ctx, 7, "+380"), entity.ErrUserNotFound)

	require.NoError(t, repo.UpsertUser(ctx, entity.User{TelegramUserID: 7, FirstName: "Олена"}))
	require.NoError(t, repo.SetUserPhone(ctx, 7, "+380501112233"))

	// a profile refresh keeps the shared phone
	require.NoError(t, repo.UpsertUser(ctx, entity.User{TelegramUserID: 7, FirstName: "Олена", Username: "olena"}))

	u, err := repo.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "+380501112233", u.Phone)
	assert.Equal(t, "olena", u.Username)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestSessionMemoryMessages(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionMemory(time.Minute)

	require.NoError(t, repo.AddMessage(ctx, entity.SessionMessage{SessionID: "s1", Direction: entity.DirectionIn, Text: "привіт"}))
	require.NoError(t, repo.AddMessage(ctx, entity.SessionMessage{SessionID: "s1", Direction: entity.DirectionOut, Text: "вітаю"}))

	msgs := repo.Messages("s1")
	require.Len(t, msgs, 2)
	assert.Equal(t, "привіт", msgs[0].Text)
	assert.Equal(t, entity.DirectionOut, msgs[1].Direction)
	assert.NotEmpty(t, msgs[0].ID)
	assert.Nil(t, repo.Messages("s2"))
}

func TestBookingMemoryList(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingMemory()
	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for i, intent := range []entity.BookingIntent{entity.IntentContact, entity.IntentView, entity.IntentLike} {
		require.NoError(t, repo.AddBooking(ctx, &entity.Booking{
			CreatedAt: base.Add(time.Duration(2-i) * time.Hour),
			Intent:    intent,
		}))
	}

	all, err := repo.ListBookings(ctx, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entity.IntentLike, all[0].Intent)
	assert.Equal(t, entity.IntentContact, all[2].Intent)

	recent, err := repo.ListBookings(ctx, base.Add(time.Hour), 0)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	limited, err := repo.ListBookings(ctx, time.Time{}, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, entity.IntentLike, limited[0].Intent)
}

func TestCodecRoundTrip(t *testing.T) {
	s := &entity.Session{
		Answers: entity.Answers{
			entity.KeyRoomsIn:           2,
			entity.KeyDistrictText:      "таирова",
			entity.KeyDistrictTextGuess: true,
		},
		Filters: entity.Filters{MicroareaID: 116, PriceMax: 60000},
	}

	rawAnswers, rawFilters, err := encodeState(s)
	require.NoError(t, err)

	answers, err := decodeAnswers(rawAnswers)
	require.NoError(t, err)
	assert.Equal(t, s.Answers, answers)

	filters, err := decodeFilters(rawFilters)
	require.NoError(t, err)
	assert.Equal(t, s.Filters, filters)
}

func TestDecodeEmpty(t *testing.T) {
	a, err := decodeAnswers(nil)
	require.NoError(t, err)
	assert.Equal(t, entity.Answers{}, a)

	_, err = decodeAnswers([]byte("{"))
	assert.Error(t, err)

	f, err := decodeFilters(nil)
	require.NoError(t, err)
	assert.True(t, f.IsZero())
}
