package wire

import (
	"beauty-orders/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireProduct(r chi.Router, productHandler *adaptor.ProductHandler, g guards) {
	r.Route("/api/products", func(r chi.Router) {
		r.Use(g.auth)

		// ==================== READ ROUTES ====================
		r.Get("/", productHandler.GetProducts)
		r.Get("/search/{term}", productHandler.SearchProducts)
		r.Get("/low-stock", productHandler.GetLowStock)
		r.Get("/{id}", productHandler.GetProductByID)

		// ==================== ADMIN ROUTES ====================
		r.Group(func(r chi.Router) {
			r.Use(g.admin)

			r.Post("/", productHandler.CreateProduct)
			r.Post("/bulk-price-update", productHandler.BulkUpdatePrice)
			r.Put("/{id}", productHandler.UpdateProduct)
			r.Delete("/{id}", productHandler.DeleteProduct)
		})
	})
}
