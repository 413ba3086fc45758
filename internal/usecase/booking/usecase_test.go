package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/pkg/formatter"
	"github.com/futig/realtor-bot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportMarkdown(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewBookingMemory()
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.AddBooking(ctx, &entity.Booking{CreatedAt: base, FullName: "Олена", Intent: entity.IntentContact}))
	require.NoError(t, repo.AddBooking(ctx, &entity.Booking{CreatedAt: base.Add(48 * time.Hour), FullName: "Марко", Intent: entity.IntentLike}))

	uc := NewUsecase(repo, formatter.NewFactory())
	uc.now = func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC) }

	file, err := uc.Export(ctx, entity.FormatMarkdown, base.Add(24*time.Hour), 0)
	require.NoError(t, err)

	assert.Equal(t, "bookings-20261019-080000.md", file.Filename)
	assert.Equal(t, "text/markdown; charset=utf-8", file.ContentType)
	assert.Equal(t, 1, file.Rows)
	assert.True(t, strings.Contains(string(file.Data), "Марко"))
	assert.False(t, strings.Contains(string(file.Data), "Олена"))
}

func TestExportUnknownFormat(t *testing.T) {
	uc := NewUsecase(repository.NewBookingMemory(), formatter.NewFactory())

	_, err := uc.Export(context.Background(), "xlsx", time.Time{}, 0)
	assert.ErrorIs(t, err, entity.ErrInvalidFormat)
}
