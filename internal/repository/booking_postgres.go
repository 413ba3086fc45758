package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BookingRepository is the append-only bookings log
type BookingRepository interface {
	AddBooking(ctx context.Context, b *entity.Booking) error
	ListBookings(ctx context.Context, since time.Time, limit int) ([]entity.Booking, error)
}

var _ BookingRepository = &BookingPostgres{}

// BookingPostgres implements BookingRepository using PostgreSQL
type BookingPostgres struct {
	db *pgxpool.Pool
}

func NewBookingPostgres(db *pgxpool.Pool) *BookingPostgres {
	return &BookingPostgres{db: db}
}

func (r *BookingPostgres) AddBooking(ctx context.Context, b *entity.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	filters, err := json.Marshal(b.Filters)
	if err != nil {
		return fmt.Errorf("encode booking filters: %w", err)
	}

	const q = `
		INSERT INTO bookings (id, full_name, phone, tg_username, telegram_user_id, intent,
		                      listing_id, listing_title, filters, filters_human, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at`

	err = r.db.QueryRow(ctx, q,
		b.ID, b.FullName, b.Phone, b.TgUsername, b.TelegramUserID, string(b.Intent),
		b.ListingID, b.ListingTitle, filters, b.FiltersHuman, b.Comment,
	).Scan(&b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// ListBookings returns bookings created at or after since, oldest first.
func (r *BookingPostgres) ListBookings(ctx context.Context, since time.Time, limit int) ([]entity.Booking, error) {
	const q = `
		SELECT id::text, created_at, full_name, phone, tg_username, telegram_user_id, intent,
		       listing_id, listing_title, filters, filters_human, comment
		FROM bookings
		WHERE created_at >= $1
		ORDER BY created_at
		LIMIT $2`

	rows, err := r.db.Query(ctx, q, since, limit)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []entity.Booking
	for rows.Next() {
		var (
			b          entity.Booking
			intent     string
			filtersRaw []byte
		)
		if err := rows.Scan(
			&b.ID, &b.CreatedAt, &b.FullName, &b.Phone, &b.TgUsername, &b.TelegramUserID, &intent,
			&b.ListingID, &b.ListingTitle, &filtersRaw, &b.FiltersHuman, &b.Comment,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Intent = entity.BookingIntent(intent)
		if b.Filters, err = decodeFilters(filtersRaw); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return out, nil
}
