package adaptor

import (
	"beauty-orders/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Product   *ProductHandler
	Customer  *CustomerHandler
	Order     *OrderHandler
	Analytics *AnalyticsHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		User:      NewUserHandler(service.User, log),
		Product:   NewProductHandler(service.Product, log),
		Customer:  NewCustomerHandler(service.Customer, log),
		Order:     NewOrderHandler(service.Order, log),
		Analytics: NewAnalyticsHandler(service.Analytics, log),
	}
}
