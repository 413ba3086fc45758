package formatter

import (
	"bytes"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (mf *DOCXFormatter) Format(bookings []entity.Booking) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(baseTitle)

	doc.AddParagraph()

	table := doc.AddTable()
	table.Properties().SetWidthPercent(100)

	header := table.AddRow()
	for _, col := range entity.BookingColumns {
		run := header.AddCell().AddParagraph().AddRun()
		run.Properties().SetBold(true)
		run.AddText(col)
	}

	for _, b := range bookings {
		row := table.AddRow()
		for _, v := range bookingRow(b) {
			row.AddCell().AddParagraph().AddRun().AddText(v)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (mf *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (mf *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
