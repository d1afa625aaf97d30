package wire

import (
	"beauty-orders/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCustomer(r chi.Router, customerHandler *adaptor.CustomerHandler, g guards) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Use(g.auth)

		r.Get("/", customerHandler.GetCustomers)
		r.Post("/", customerHandler.CreateCustomer)
		r.Get("/stats/by-type", customerHandler.GetStatsByType)
		r.Get("/search/{term}", customerHandler.SearchCustomers)
		r.Get("/{id}", customerHandler.GetCustomerByID)
		r.Put("/{id}", customerHandler.UpdateCustomer)
		r.Get("/{id}/stats", customerHandler.GetCustomerStats)
		r.Get("/{id}/orders", customerHandler.GetCustomerOrders)

		// ==================== ADMIN ROUTES ====================
		r.With(g.admin).Delete("/{id}", customerHandler.DeleteCustomer)
	})
}
