package wire

import (
	"beauty-orders/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAnalytics(r chi.Router, analyticsHandler *adaptor.AnalyticsHandler, g guards) {
	r.Route("/api/analytics", func(r chi.Router) {
		r.Use(g.auth)

		r.Get("/dashboard", analyticsHandler.GetDashboard)
		r.Get("/revenue-by-day", analyticsHandler.GetRevenueByDay)
	})
}
