package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []entity.Booking{
	{
		CreatedAt:      time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
		FullName:       "Олена",
		Phone:          "+380501112233",
		TgUsername:     "olena",
		TelegramUserID: 42,
		Intent:         entity.IntentView,
		ListingID:      "21364",
		ListingTitle:   "Запит на перегляд | Таїрова",
		FiltersHuman:   "Квартира · 2к · Таїрова",
	},
}

func TestFactoryCreate(t *testing.T) {
	f := NewFactory()

	tests := []struct {
		format entity.ExportFormat
		ext    string
	}{
		{format: entity.FormatMarkdown, ext: ".md"},
		{format: entity.FormatPDF, ext: ".pdf"},
		{format: entity.FormatDOCX, ext: ".docx"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			fm, err := f.Create(tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, fm.FileExtension())
			assert.NotEmpty(t, fm.ContentType())
		})
	}

	_, err := f.Create("xlsx")
	assert.Error(t, err)
}

func TestBookingRow(t *testing.T) {
	row := bookingRow(sample[0])
	require.Len(t, row, len(entity.BookingColumns))
	assert.Equal(t, "2026-10-01 09:30:00", row[0])
	assert.Equal(t, "view", row[4])
	assert.Equal(t, "42", row[9])
}

func TestMarkdownFormat(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sample)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "# "+baseTitle, lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "| timestamp | full_name |"))
	assert.Contains(t, lines[4], `Запит на перегляд \| Таїрова`)
	assert.True(t, strings.HasSuffix(lines[4], "| 42 |"))
}

func TestMarkdownFormatEmpty(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Заявок немає")
}

func TestPDFFormat(t *testing.T) {
	out, err := NewPDFFormatter().Format(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestFactoryPDFFontFallback(t *testing.T) {
	f, err := NewFactory(WithPDFFont("does/not/exist.ttf")).Create(entity.FormatPDF)
	require.NoError(t, err)

	pdf, ok := f.(*PDFFormatter)
	require.True(t, ok)
	assert.Equal(t, "does/not/exist.ttf", pdf.fontPath)
	assert.NotEqual(t, "does/not/exist.ttf", pdf.resolveFontPath())

	out, err := pdf.Format(nil)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
