package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/futig/realtor-bot/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(bookings []entity.Booking) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)

	if len(bookings) == 0 {
		buf.WriteString("_Заявок немає_\n")
		return buf.Bytes(), nil
	}

	writeMarkdownRow(&buf, entity.BookingColumns)
	sep := make([]string, len(entity.BookingColumns))
	for i := range sep {
		sep[i] = "---"
	}
	writeMarkdownRow(&buf, sep)

	for _, b := range bookings {
		writeMarkdownRow(&buf, bookingRow(b))
	}

	return buf.Bytes(), nil
}

func writeMarkdownRow(buf *bytes.Buffer, cells []string) {
	buf.WriteString("|")
	for _, c := range cells {
		buf.WriteString(" ")
		buf.WriteString(cellEscaper.Replace(c))
		buf.WriteString(" |")
	}
	buf.WriteString("\n")
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
