package parsing

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers slot parsing routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/extract", h.Extract)
	r.Post("/merge", h.Merge)
}
