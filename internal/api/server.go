package api

import (
	"net/http"
	"time"

	bookingsapi "github.com/futig/realtor-bot/internal/api/bookings"
	"github.com/futig/realtor-bot/internal/api/docs"
	"github.com/futig/realtor-bot/internal/api/middleware"
	parsingapi "github.com/futig/realtor-bot/internal/api/parsing"
	"github.com/futig/realtor-bot/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(parsingHandler *parsingapi.Handler, bookingsHandler *bookingsapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	docs.RegisterRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		parsingapi.RegisterRoutes(r, parsingHandler)
		bookingsapi.RegisterRoutes(r, bookingsHandler)
	})

	return r
}
