package response

import (
	"time"

	"beauty-orders/internal/data/entity"

	"github.com/shopspring/decimal"
)

type CustomerResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	CustomerType entity.CustomerType `json:"customer_type"`
	Email        string              `json:"email"`
	Phone        *string             `json:"phone"`
	Address      *string             `json:"address"`
	TaxID        *string             `json:"tax_id"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type CustomerProductStat struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

type CustomerStatsResponse struct {
	CustomerID   string                `json:"customer_id"`
	Name         string                `json:"name"`
	TotalOrders  int64                 `json:"total_orders"`
	TotalSpent   decimal.Decimal       `json:"total_spent"`
	AverageOrder decimal.Decimal       `json:"average_order"`
	TopProducts  []CustomerProductStat `json:"top_products"`
}

type CustomerTypeStat struct {
	CustomerType entity.CustomerType `json:"customer_type"`
	Count        int64               `json:"count"`
}

func CustomerToResponse(customer *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           customer.ID.String(),
		Name:         customer.Name,
		CustomerType: customer.CustomerType,
		Email:        customer.Email,
		Phone:        customer.Phone,
		Address:      customer.Address,
		TaxID:        customer.TaxID,
		CreatedAt:    customer.CreatedAt,
		UpdatedAt:    customer.UpdatedAt,
	}
}

func CustomersToResponse(customers []*entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = CustomerToResponse(c)
	}
	return out
}
