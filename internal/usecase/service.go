package usecase

import (
	"beauty-orders/internal/data/repository"
	"beauty-orders/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Product   ProductService
	Customer  CustomerService
	Order     OrderService
	Analytics AnalyticsService
}

func NewService(repo *repository.Repository, config *utils.Config, jwt *utils.JWTManager, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, jwt, log),
		User:      NewUserService(repo.User, log),
		Product:   NewProductService(repo, config, log),
		Customer:  NewCustomerService(repo, log),
		Order:     NewOrderService(repo, log),
		Analytics: NewAnalyticsService(repo, config, log),
	}
}
