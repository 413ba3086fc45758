package handlers

import (
	"context"

	"github.com/futig/realtor-bot/internal/entity"
)

// Handler kinds, one per incoming message shape
const (
	HandlerKindText    = "TEXT"
	HandlerKindContact = "CONTACT"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID    int64
	MessageID int
	User      entity.User
	Text      string
	// ReplyTo is the text or caption of the message being replied to.
	ReplyTo string
	Phone   string
}

// Handler defines the interface for kind-specific handlers
type Handler interface {
	// Handle processes a message of this kind
	Handle(ctx context.Context, msg *Message) error

	// GetKind returns the message kind this handler manages
	GetKind() string
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	kind          string
	messageSender *MessageSender
}

// GetKind implements Handler
func (h *BaseHandler) GetKind() string {
	return h.kind
}

var validKinds = map[string]bool{
	HandlerKindText:    true,
	HandlerKindContact: true,
}

// IsValidKind checks if a kind is valid for handler registration
func IsValidKind(kind string) bool {
	_, ok := validKinds[kind]
	return ok
}
