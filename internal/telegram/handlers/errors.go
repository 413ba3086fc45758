package handlers

import (
	"context"
	"errors"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/futig/realtor-bot/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity int

const (
	SeverityWarning ErrorSeverity = iota
	SeverityError
	SeverityCritical
)

// String returns string representation of error severity
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// HandlerError represents a structured error with user message and logging info
type HandlerError struct {
	Err         error
	UserMessage string
	LogMessage  string
	Severity    ErrorSeverity
	// AskContact re-sends the contact keyboard with the message.
	AskContact bool
}

// classifyHandlerError analyzes an error and returns a HandlerError with appropriate severity and messages
func classifyHandlerError(err error) *HandlerError {
	if err == nil {
		return &HandlerError{
			UserMessage: render.ErrGeneric,
			LogMessage:  "unknown error",
			Severity:    SeverityWarning,
		}
	}

	switch {
	case errors.Is(err, entity.ErrContactRequired):
		return &HandlerError{
			Err:         err,
			UserMessage: render.MsgShareContactFirst,
			LogMessage:  "contact required",
			Severity:    SeverityWarning,
			AskContact:  true,
		}
	case errors.Is(err, entity.ErrInvalidFormat):
		return &HandlerError{
			Err:         err,
			UserMessage: render.MsgInvalidPhone,
			LogMessage:  "invalid phone",
			Severity:    SeverityWarning,
			AskContact:  true,
		}
	case errors.Is(err, entity.ErrSessionNotFound), errors.Is(err, entity.ErrSessionNotActive):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrSessionNotFound,
			LogMessage:  "session not found",
			Severity:    SeverityWarning,
		}
	case errors.Is(err, entity.ErrListingsUnavailable):
		return &HandlerError{
			Err:         err,
			UserMessage: render.ErrServiceUnavailable,
			LogMessage:  "listings unavailable",
			Severity:    SeverityError,
		}
	}

	msg := render.ClassifyError(err)
	severity := SeverityError
	if msg == render.ErrGeneric {
		severity = SeverityCritical
	}
	return &HandlerError{
		Err:         err,
		UserMessage: msg,
		LogMessage:  "handler error",
		Severity:    severity,
	}
}

// HandleError provides centralized error handling for all handlers
// It logs the error with appropriate severity and sends a user-friendly message
func (h *BaseHandler) HandleError(ctx context.Context, chatID int64, err error) {
	if err == nil {
		return
	}

	handlerErr := classifyHandlerError(err)

	switch handlerErr.Severity {
	case SeverityCritical, SeverityError:
		ctxzap.Error(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.String("severity", handlerErr.Severity.String()),
			zap.Int64("chat_id", chatID),
		)
	case SeverityWarning:
		ctxzap.Warn(ctx, handlerErr.LogMessage,
			zap.Error(handlerErr.Err),
			zap.Int64("chat_id", chatID),
		)
	}

	if h.messageSender == nil {
		return
	}
	var markup interface{}
	if handlerErr.AskContact {
		markup = h.messageSender.keyboard.ContactKeyboard()
	}
	_ = h.messageSender.Send(chatID, handlerErr.UserMessage, markup)
}
