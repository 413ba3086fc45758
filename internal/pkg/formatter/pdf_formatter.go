package formatter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	// pdfFontName is the internal name used by gofpdf
	// for the UTF-8 capable font.
	pdfFontName = "DejaVuSans"

	// In Docker runtime fonts are copied to /app/ttf.
	pdfFontRuntimePath = "ttf/DejaVuSans.ttf"

	// Source-relative path, for runs from the repo root.
	pdfFontSourcePath = "internal/pkg/formatter/ttf/DejaVuSans.ttf"
)

type PDFFormatter struct {
	fontPath string
}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// resolveFontPath prefers the configured font, then the DejaVuSans font in
// runtime layout (next to the binary) or source layout.
func (mf *PDFFormatter) resolveFontPath() string {
	if mf.fontPath != "" {
		if _, err := os.Stat(mf.fontPath); err == nil {
			return mf.fontPath
		}
	}
	if _, err := os.Stat(pdfFontRuntimePath); err == nil {
		return pdfFontRuntimePath
	}
	if _, err := os.Stat(pdfFontSourcePath); err == nil {
		return pdfFontSourcePath
	}
	return ""
}

// Format lays out one block per booking: a bold heading followed by
// "column: value" lines. Without the bundled font Cyrillic text is not
// rendered correctly.
func (mf *PDFFormatter) Format(bookings []entity.Booking) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	fontName := "Arial"
	if fontPath := mf.resolveFontPath(); fontPath != "" {
		pdf.AddUTF8Font(pdfFontName, "", fontPath)
		pdf.AddUTF8Font(pdfFontName, "B", fontPath)
		fontName = pdfFontName
	}

	pdf.SetFont(fontName, "B", 18)
	pdf.Cell(0, 10, baseTitle)
	pdf.Ln(12)

	if len(bookings) == 0 {
		pdf.SetFont(fontName, "", 11)
		pdf.Cell(0, 8, "Заявок немає")
	}

	for i, b := range bookings {
		pdf.SetFont(fontName, "B", 12)
		pdf.Cell(0, 8, fmt.Sprintf("#%d · %s", i+1, b.Intent))
		pdf.Ln(8)

		pdf.SetFont(fontName, "", 10)
		_, lineHeight := pdf.GetFontSize()
		for j, v := range bookingRow(b) {
			if v == "" {
				continue
			}
			pdf.MultiCell(0, lineHeight*1.4, entity.BookingColumns[j]+": "+v, "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (mf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
