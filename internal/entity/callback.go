package entity

// CallbackEventType represents the type of callback event
type CallbackEventType string

const (
	CallbackEventTypeBooking CallbackEventType = "booking"
)

// CallbackEvent is posted to the booking webhook
type CallbackEvent struct {
	Event     CallbackEventType `json:"event"`
	Timestamp string            `json:"timestamp"` // ISO-8601 UTC
	Data      any               `json:"data"`
}
