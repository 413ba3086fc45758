package entity

import "time"

// BookingIntent is the reason a booking row was written
type BookingIntent string

const (
	IntentContact BookingIntent = "contact"
	IntentView    BookingIntent = "view"
	IntentLike    BookingIntent = "like"
	IntentCall    BookingIntent = "call"
)

// Booking is one row of the bookings log
type Booking struct {
	ID             string        `json:"id"`
	CreatedAt      time.Time     `json:"timestamp"`
	FullName       string        `json:"full_name"`
	Phone          string        `json:"phone"`
	TgUsername     string        `json:"tg_username"`
	TelegramUserID int64         `json:"telegram_user_id"`
	Intent         BookingIntent `json:"intent"`
	ListingID      string        `json:"listing_id,omitempty"`
	ListingTitle   string        `json:"listing_title,omitempty"`
	Filters        Filters       `json:"filters"`
	FiltersHuman   string        `json:"filters_human"`
	Comment        string        `json:"comment,omitempty"`
}

// BookingColumns is the export header order
var BookingColumns = []string{
	"timestamp",
	"full_name",
	"phone",
	"tg_username",
	"intent",
	"listing_id",
	"listing_title",
	"filters_human",
	"comment",
	"telegram_user_id",
}

// ExportFormat selects a bookings export formatter
type ExportFormat string

const (
	FormatMarkdown ExportFormat = "md"
	FormatDOCX     ExportFormat = "docx"
	FormatPDF      ExportFormat = "pdf"
)

// Listing is a single result item from the listings service
type Listing struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency,omitempty"`
	Rooms       int     `json:"rooms,omitempty"`
	Area        float64 `json:"area,omitempty"`
	Address     string  `json:"address,omitempty"`
	DistrictID  int     `json:"district_id,omitempty"`
	MicroareaID int     `json:"microarea_id,omitempty"`
	Condition   int     `json:"condition_in,omitempty"`
	Description string  `json:"description,omitempty"`
	URL         string  `json:"url,omitempty"`
}

// ListingPage is one page of listing results
type ListingPage struct {
	Items  []Listing `json:"items"`
	Total  int       `json:"total"`
	Offset int       `json:"offset"`
}

// HasMore reports whether another page exists after this one
func (p *ListingPage) HasMore() bool {
	return p.Offset+len(p.Items) < p.Total
}
