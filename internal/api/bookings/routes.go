package bookings

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers bookings routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/export", h.Export)
	})
}
