package wire

import (
	"beauty-orders/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, g guards) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Use(g.auth)

		r.Get("/", orderHandler.GetOrders)
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/stats/by-status", orderHandler.GetStatsByStatus)
		r.Get("/customer/{customer_id}", orderHandler.GetOrdersByCustomer)
		r.Get("/{id}", orderHandler.GetOrderByID)
		r.Put("/{id}/status", orderHandler.UpdateOrderStatus)

		// ==================== ADMIN ROUTES ====================
		r.With(g.admin).Delete("/{id}", orderHandler.DeleteOrder)
	})
}
