package repository

import (
	"beauty-orders/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User      UserRepository
	Product   ProductRepository
	Customer  CustomerRepository
	Order     OrderRepository
	Analytics AnalyticsRepository
	Tx        database.TxManager
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		Product:   NewProductRepository(db, log),
		Customer:  NewCustomerRepository(db, log),
		Order:     NewOrderRepository(db, log),
		Analytics: NewAnalyticsRepository(db, log),
		Tx:        database.NewTxManager(db),
	}
}
