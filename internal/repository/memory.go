package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	userPrefix     = "user:"
	sessionPrefix  = "session:"
	messagesPrefix = "messages:"
)

var _ SessionRepository = &SessionMemory{}

// SessionMemory keeps conversations in process memory. Entries expire
// after ttl without activity.
type SessionMemory struct {
	cache *cache.Cache
	ttl   time.Duration
	// serializes read-modify-write of message lists
	mu sync.Mutex
}

func NewSessionMemory(ttl time.Duration) *SessionMemory {
	return &SessionMemory{
		cache: cache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

func userKey(id int64) string    { return userPrefix + strconv.FormatInt(id, 10) }
func sessionKey(id int64) string { return sessionPrefix + strconv.FormatInt(id, 10) }

func (r *SessionMemory) UpsertUser(_ context.Context, user entity.User) error {
	if existing, ok := r.cache.Get(userKey(user.TelegramUserID)); ok {
		prev := existing.(entity.User)
		user.Phone = prev.Phone
		user.CreatedAt = prev.CreatedAt
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.cache.Set(userKey(user.TelegramUserID), user, r.ttl)
	return nil
}

func (r *SessionMemory) GetUser(_ context.Context, telegramUserID int64) (*entity.User, error) {
	v, ok := r.cache.Get(userKey(telegramUserID))
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	u := v.(entity.User)
	return &u, nil
}

func (r *SessionMemory) SetUserPhone(_ context.Context, telegramUserID int64, phone string) error {
	v, ok := r.cache.Get(userKey(telegramUserID))
	if !ok {
		return entity.ErrUserNotFound
	}
	u := v.(entity.User)
	u.Phone = phone
	r.cache.Set(userKey(telegramUserID), u, r.ttl)
	return nil
}

func (r *SessionMemory) GetActiveSession(_ context.Context, telegramUserID int64) (*entity.Session, error) {
	v, ok := r.cache.Get(sessionKey(telegramUserID))
	if !ok {
		return nil, entity.ErrSessionNotFound
	}
	s := v.(entity.Session)
	if s.Status != entity.SessionStatusActive {
		return nil, entity.ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (r *SessionMemory) CreateSession(_ context.Context, session *entity.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	r.cache.Set(sessionKey(session.TelegramUserID), *cloneSession(*session), r.ttl)
	return nil
}

func (r *SessionMemory) UpdateSession(_ context.Context, session *entity.Session) error {
	v, ok := r.cache.Get(sessionKey(session.TelegramUserID))
	if !ok || v.(entity.Session).ID != session.ID {
		return entity.ErrSessionNotFound
	}
	session.UpdatedAt = time.Now()
	r.cache.Set(sessionKey(session.TelegramUserID), *cloneSession(*session), r.ttl)
	return nil
}

func (r *SessionMemory) CloseSession(_ context.Context, id string) error {
	for key, item := range r.cache.Items() {
		s, ok := item.Object.(entity.Session)
		if !ok || s.ID != id {
			continue
		}
		s.Status = entity.SessionStatusClosed
		s.UpdatedAt = time.Now()
		r.cache.Set(key, s, r.ttl)
		return nil
	}
	return entity.ErrSessionNotFound
}

func (r *SessionMemory) AddMessage(_ context.Context, msg entity.SessionMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := messagesPrefix + msg.SessionID
	var msgs []entity.SessionMessage
	if v, ok := r.cache.Get(key); ok {
		msgs = v.([]entity.SessionMessage)
	}
	msgs = append(msgs[:len(msgs):len(msgs)], msg)
	r.cache.Set(key, msgs, r.ttl)
	return nil
}

// Messages returns the stored chat lines of a session, oldest first.
func (r *SessionMemory) Messages(sessionID string) []entity.SessionMessage {
	v, ok := r.cache.Get(messagesPrefix + sessionID)
	if !ok {
		return nil
	}
	return append([]entity.SessionMessage(nil), v.([]entity.SessionMessage)...)
}

func cloneSession(s entity.Session) *entity.Session {
	s.Answers = s.Answers.Clone()
	return &s
}

var _ BookingRepository = &BookingMemory{}

// BookingMemory keeps the bookings log in process memory. Rows never expire.
type BookingMemory struct {
	cache *cache.Cache
}

func NewBookingMemory() *BookingMemory {
	return &BookingMemory{cache: cache.New(cache.NoExpiration, 0)}
}

func (r *BookingMemory) AddBooking(_ context.Context, b *entity.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	r.cache.Set(b.ID, *b, cache.NoExpiration)
	return nil
}

func (r *BookingMemory) ListBookings(_ context.Context, since time.Time, limit int) ([]entity.Booking, error) {
	var out []entity.Booking
	for _, item := range r.cache.Items() {
		b := item.Object.(entity.Booking)
		if !b.CreatedAt.Before(since) {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
