package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository persists users, their conversations and chat lines
type SessionRepository interface {
	UpsertUser(ctx context.Context, user entity.User) error
	GetUser(ctx context.Context, telegramUserID int64) (*entity.User, error)
	SetUserPhone(ctx context.Context, telegramUserID int64, phone string) error
	GetActiveSession(ctx context.Context, telegramUserID int64) (*entity.Session, error)
	CreateSession(ctx context.Context, session *entity.Session) error
	UpdateSession(ctx context.Context, session *entity.Session) error
	CloseSession(ctx context.Context, id string) error
	AddMessage(ctx context.Context, msg entity.SessionMessage) error
}

var _ SessionRepository = &SessionPostgres{}

// SessionPostgres implements SessionRepository using PostgreSQL
type SessionPostgres struct {
	db *pgxpool.Pool
}

func NewSessionPostgres(db *pgxpool.Pool) *SessionPostgres {
	return &SessionPostgres{db: db}
}

func (r *SessionPostgres) UpsertUser(ctx context.Context, user entity.User) error {
	const q = `
		INSERT INTO users (telegram_user_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (telegram_user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name`

	if _, err := r.db.Exec(ctx, q, user.TelegramUserID, user.Username, user.FirstName, user.LastName); err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (r *SessionPostgres) GetUser(ctx context.Context, telegramUserID int64) (*entity.User, error) {
	const q = `
		SELECT telegram_user_id, username, first_name, last_name, phone, created_at
		FROM users WHERE telegram_user_id = $1`

	var u entity.User
	err := r.db.QueryRow(ctx, q, telegramUserID).Scan(
		&u.TelegramUserID, &u.Username, &u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *SessionPostgres) SetUserPhone(ctx context.Context, telegramUserID int64, phone string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET phone = $2 WHERE telegram_user_id = $1`, telegramUserID, phone)
	if err != nil {
		return fmt.Errorf("set user phone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrUserNotFound
	}
	return nil
}

func (r *SessionPostgres) GetActiveSession(ctx context.Context, telegramUserID int64) (*entity.Session, error) {
	const q = `
		SELECT id::text, telegram_user_id, status, stage, answers, filters,
		       page_offset, total, contact_received, created_at, updated_at
		FROM sessions
		WHERE telegram_user_id = $1 AND status = 'active'`

	row := r.db.QueryRow(ctx, q, telegramUserID)
	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return s, nil
}

// CreateSession closes the user's active session, if any, and inserts a new one.
func (r *SessionPostgres) CreateSession(ctx context.Context, session *entity.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	answers, filters, err := encodeState(session)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		`UPDATE sessions SET status = 'closed', updated_at = now()
		 WHERE telegram_user_id = $1 AND status = 'active'`,
		session.TelegramUserID,
	)
	if err != nil {
		return fmt.Errorf("close previous session: %w", err)
	}

	const q = `
		INSERT INTO sessions (id, telegram_user_id, status, stage, answers, filters,
		                      page_offset, total, contact_received)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err = tx.QueryRow(ctx, q,
		session.ID, session.TelegramUserID, string(session.Status), string(session.Stage),
		answers, filters, session.PageOffset, session.Total, session.ContactReceived,
	).Scan(&session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

func (r *SessionPostgres) UpdateSession(ctx context.Context, session *entity.Session) error {
	answers, filters, err := encodeState(session)
	if err != nil {
		return err
	}

	const q = `
		UPDATE sessions
		SET status = $2, stage = $3, answers = $4, filters = $5,
		    page_offset = $6, total = $7, contact_received = $8, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err = r.db.QueryRow(ctx, q,
		session.ID, string(session.Status), string(session.Stage), answers, filters,
		session.PageOffset, session.Total, session.ContactReceived,
	).Scan(&session.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.ErrSessionNotFound
		}
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

func (r *SessionPostgres) CloseSession(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sessions SET status = 'closed', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrSessionNotFound
	}
	return nil
}

func (r *SessionPostgres) AddMessage(ctx context.Context, msg entity.SessionMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO messages (id, session_id, direction, text, created_at) VALUES ($1, $2, $3, $4, $5)`,
		msg.ID, msg.SessionID, string(msg.Direction), msg.Text, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("add message: %w", err)
	}
	return nil
}

func scanSession(row pgx.Row) (*entity.Session, error) {
	var (
		s                      entity.Session
		status, stage          string
		answersRaw, filtersRaw []byte
	)

	err := row.Scan(
		&s.ID, &s.TelegramUserID, &status, &stage, &answersRaw, &filtersRaw,
		&s.PageOffset, &s.Total, &s.ContactReceived, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Status = entity.SessionStatus(status)
	s.Stage = entity.SessionStage(stage)

	if s.Answers, err = decodeAnswers(answersRaw); err != nil {
		return nil, err
	}
	if s.Filters, err = decodeFilters(filtersRaw); err != nil {
		return nil, err
	}

	return &s, nil
}
