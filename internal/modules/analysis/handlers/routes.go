package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all analysis routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/analysis", func(r chi.Router) {
		r.Post("/npv", h.HandleNPV)
		r.Post("/irr", h.HandleIRR)
		r.Get("/irr/defaults", h.HandleGetDefaults)
		r.Post("/cagr", h.HandleCAGR)
		r.Post("/cagr/monthly", h.HandleMonthlyCAGR)
		r.Post("/sma", h.HandleSMA)
		r.Post("/summary", h.HandleSummary)
	})
}
