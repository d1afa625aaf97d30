package response

import (
	"github.com/shopspring/decimal"
)

type TopProductResponse struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	OrderCount    int64  `json:"order_count"`
	TotalQuantity int64  `json:"total_quantity"`
}

type DashboardResponse struct {
	OrdersToday    int64                `json:"orders_today"`
	TotalRevenue   decimal.Decimal      `json:"total_revenue"`
	TotalOrders    int64                `json:"total_orders"`
	TotalCustomers int64                `json:"total_customers"`
	TotalProducts  int64                `json:"total_products"`
	LowStockCount  int64                `json:"low_stock_count"`
	TopProducts    []TopProductResponse `json:"top_products"`
}

type DailyRevenueResponse struct {
	Date       string          `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int64           `json:"order_count"`
}
