package formatter

import (
	"fmt"
	"strconv"

	"github.com/futig/realtor-bot/internal/entity"
)

const (
	baseTitle       = "Заявки клієнтів"
	timestampLayout = "2006-01-02 15:04:05"
)

type Formatter interface {
	Format(bookings []entity.Booking) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct {
	pdfFontPath string
}

// Option configures a Factory
type Option func(*Factory)

// WithPDFFont points PDF exports at a UTF-8 TrueType font. Without one the
// bundled lookup paths are tried.
func WithPDFFont(path string) Option {
	return func(f *Factory) {
		f.pdfFontPath = path
	}
}

func NewFactory(opts ...Option) *Factory {
	f := &Factory{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		pdf := NewPDFFormatter()
		pdf.fontPath = f.pdfFontPath
		return pdf, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// bookingRow renders b in entity.BookingColumns order.
func bookingRow(b entity.Booking) []string {
	return []string{
		b.CreatedAt.UTC().Format(timestampLayout),
		b.FullName,
		b.Phone,
		b.TgUsername,
		string(b.Intent),
		b.ListingID,
		b.ListingTitle,
		b.FiltersHuman,
		b.Comment,
		strconv.FormatInt(b.TelegramUserID, 10),
	}
}
