package entity

import (
	"time"
)

// SessionStatus represents the lifecycle of a conversation
type SessionStatus string

const (
	SessionStatusActive SessionStatus = "active"
	SessionStatusClosed SessionStatus = "closed"
)

// SessionStage tracks where the bot is inside an active conversation
type SessionStage string

const (
	StageAskName    SessionStage = "ask_name"
	StageCollecting SessionStage = "collecting"
	StageAskContact SessionStage = "ask_contact"
	StageBrowsing   SessionStage = "browsing"
)

// MessageDirection marks a stored chat message as incoming or outgoing
type MessageDirection string

const (
	DirectionIn  MessageDirection = "in"
	DirectionOut MessageDirection = "out"
)

// User is a Telegram user known to the bot
type User struct {
	TelegramUserID int64     `json:"telegram_user_id"`
	Username       string    `json:"username,omitempty"`
	FirstName      string    `json:"first_name,omitempty"`
	LastName       string    `json:"last_name,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// FullName joins first and last name
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.LastName
	}
}

// Session is the per-user conversation state owned by the session store
type Session struct {
	ID              string        `json:"id"`
	TelegramUserID  int64         `json:"telegram_user_id"`
	Status          SessionStatus `json:"status"`
	Stage           SessionStage  `json:"stage"`
	Answers         Answers       `json:"answers"`
	Filters         Filters       `json:"filters"`
	PageOffset      int           `json:"page_offset"`
	Total           int           `json:"total"`
	ContactReceived bool          `json:"contact_received"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// SessionMessage is a stored chat line
type SessionMessage struct {
	ID        string           `json:"id"`
	SessionID string           `json:"session_id"`
	Direction MessageDirection `json:"direction"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"created_at"`
}
