package review

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the review routes on the router
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Get("/", h.List)
	})
}
