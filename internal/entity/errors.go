package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionNotActive = errors.New("session is not active")
	ErrUserNotFound     = errors.New("user not found")

	// Conversation errors
	ErrContactRequired = errors.New("contact is required before browsing")

	// Listings service errors
	ErrListingsUnavailable = errors.New("listings service unavailable")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
