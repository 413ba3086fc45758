package listings

import (
	"context"
	"fmt"

	"github.com/futig/realtor-bot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const mockTotal = 7

// MockConnector serves a fixed catalogue shaped by the requested filters
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Search(ctx context.Context, filters entity.Filters, limit, offset int) (*entity.ListingPage, error) {
	ctxzap.Info(ctx, "[MOCK] searching listings",
		zap.Int("district_id", filters.DistrictID),
		zap.Int("microarea_id", filters.MicroareaID),
		zap.Int("rooms_in", filters.RoomsIn),
		zap.Int("price_max", filters.PriceMax),
		zap.Int("offset", offset),
	)

	page := &entity.ListingPage{Total: mockTotal, Offset: offset}
	for i := offset; i < offset+limit && i < mockTotal; i++ {
		rooms := filters.RoomsIn
		if rooms == 0 {
			rooms = 1 + i%3
		}
		price := 40000 + 5000*i
		if filters.PriceMax != 0 && price > filters.PriceMax {
			price = filters.PriceMax - 1000*(i+1)
		}

		page.Items = append(page.Items, entity.Listing{
			ID:          fmt.Sprintf("mock-%d", i+1),
			Title:       fmt.Sprintf("%d-кімнатна квартира", rooms),
			Price:       float64(price),
			Currency:    "USD",
			Rooms:       rooms,
			Area:        float64(30 + 15*rooms),
			Address:     fmt.Sprintf("Одеса, вул. Тестова, %d", i+1),
			DistrictID:  filters.DistrictID,
			MicroareaID: filters.MicroareaID,
			Condition:   filters.ConditionIn,
		})
	}

	return page, nil
}
