package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate rows read by the analytics and stats queries.

type TopProduct struct {
	ProductID     uuid.UUID `db:"product_id"`
	Name          string    `db:"name"`
	OrderCount    int64     `db:"order_count"`
	TotalQuantity int64     `db:"total_quantity"`
}

type DailyRevenue struct {
	Date       time.Time       `db:"day"`
	Revenue    decimal.Decimal `db:"revenue"`
	OrderCount int64           `db:"order_count"`
}

type StatusSummary struct {
	Status       OrderStatus     `db:"status"`
	Count        int64           `db:"count"`
	TotalRevenue decimal.Decimal `db:"total_revenue"`
}

type CustomerTypeSummary struct {
	CustomerType CustomerType `db:"customer_type"`
	Count        int64        `db:"count"`
}

type CustomerOrderTotals struct {
	TotalOrders int64           `db:"total_orders"`
	TotalSpent  decimal.Decimal `db:"total_spent"`
}

type DashboardCounts struct {
	OrdersToday    int64           `db:"orders_today"`
	TotalRevenue   decimal.Decimal `db:"total_revenue"`
	TotalOrders    int64           `db:"total_orders"`
	TotalCustomers int64           `db:"total_customers"`
	TotalProducts  int64           `db:"total_products"`
	LowStockCount  int64           `db:"low_stock_count"`
}
