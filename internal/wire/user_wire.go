package wire

import (
	"beauty-orders/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g guards) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/users", func(r chi.Router) {
		r.Use(g.auth)
		r.Use(g.admin)

		r.Get("/", userHandler.GetAllUsers)
		r.Put("/{id}", userHandler.UpdateUser)
	})
}
