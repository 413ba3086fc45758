package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestListingCaption(t *testing.T) {
	it := entity.Listing{
		ID:       "10452",
		Title:    "2-кімнатна квартира",
		Address:  "Одеса, вул. Академіка Корольова, 5",
		Price:    58500,
		Currency: "USD",
		Rooms:    2,
		Area:     54.5,
		URL:      "https://example.com/10452",
	}

	want := "🏠 2-кімнатна квартира\n" +
		"📍 Одеса, вул. Академіка Корольова, 5\n" +
		"💵 $58 500\n" +
		"2к · 54.5 м²\n" +
		"https://example.com/10452\n" +
		"ID: 10452"
	assert.Equal(t, want, ListingCaption(it))
}

func TestListingCaptionMinimal(t *testing.T) {
	assert.Equal(t, "🏠 Об'єкт\nID: 7", ListingCaption(entity.Listing{ID: "7"}))
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price    float64
		currency string
		want     string
	}{
		{price: 1200000, currency: "", want: "$1 200 000"},
		{price: 999, currency: "usd", want: "$999"},
		{price: 45000, currency: "EUR", want: "€45 000"},
		{price: 2500000, currency: "UAH", want: "2 500 000 грн"},
		{price: 100, currency: "PLN", want: "100 PLN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPrice(tt.price, tt.currency))
		})
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ErrGeneric},
		{name: "deadline", err: fmt.Errorf("search: %w", context.DeadlineExceeded), want: ErrTimeout},
		{name: "net timeout", err: &net.DNSError{IsTimeout: true}, want: ErrTimeout},
		{name: "net error", err: &net.DNSError{Err: "no such host"}, want: ErrNetworkIssue},
		{name: "net timeout custom", err: timeoutErr{}, want: ErrTimeout},
		{name: "unavailable", err: entity.ErrListingsUnavailable, want: ErrServiceUnavailable},
		{name: "quota", err: errors.New("Too Many Requests: retry after 5"), want: ErrQuotaExceeded},
		{name: "other", err: errors.New("boom"), want: ErrGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}
