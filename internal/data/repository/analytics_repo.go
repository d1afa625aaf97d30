package repository

import (
	"context"
	"fmt"
	"time"

	"beauty-orders/internal/data/entity"
	"beauty-orders/pkg/database"

	"go.uber.org/zap"
)

// AnalyticsRepository holds the read-only aggregate queries behind the
// dashboard. Cancelled orders never count towards revenue.
type AnalyticsRepository interface {
	DashboardCounts(ctx context.Context, dayStart time.Time, lowStockThreshold int) (*entity.DashboardCounts, error)
	TopProducts(ctx context.Context, limit int) ([]entity.TopProduct, error)
	RevenueByDay(ctx context.Context, from time.Time) ([]entity.DailyRevenue, error)
}

type analyticsRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAnalyticsRepository(db database.PgxIface, log *zap.Logger) AnalyticsRepository {
	return &analyticsRepository{
		db:  db,
		log: log.With(zap.String("repository", "analytics")),
	}
}

func (r *analyticsRepository) DashboardCounts(ctx context.Context, dayStart time.Time, lowStockThreshold int) (*entity.DashboardCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM orders WHERE created_at >= $1),
			(SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> 'cancelled'),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM products WHERE stock_quantity < $2)
	`

	var c entity.DashboardCounts
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, dayStart, lowStockThreshold).Scan(
		&c.OrdersToday,
		&c.TotalRevenue,
		&c.TotalOrders,
		&c.TotalCustomers,
		&c.TotalProducts,
		&c.LowStockCount,
	)
	if err != nil {
		r.log.Error("Failed to load dashboard counts", zap.Error(err))
		return nil, fmt.Errorf("failed to load dashboard counts: %w", err)
	}

	return &c, nil
}

// TopProducts ranks products by the number of order lines they appear on.
func (r *analyticsRepository) TopProducts(ctx context.Context, limit int) ([]entity.TopProduct, error) {
	query := `
		SELECT p.id, p.name, COUNT(oi.id), COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status <> 'cancelled'
		GROUP BY p.id, p.name
		ORDER BY COUNT(oi.id) DESC, SUM(oi.quantity) DESC, p.name
		LIMIT $1
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to load top products", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}
	defer rows.Close()

	return scanTopProducts(rows)
}

// RevenueByDay returns one row per UTC day that has orders since from.
// Days without orders are absent.
func (r *analyticsRepository) RevenueByDay(ctx context.Context, from time.Time) ([]entity.DailyRevenue, error) {
	query := `
		SELECT (created_at AT TIME ZONE 'UTC')::date AS day,
		       COALESCE(SUM(total_amount), 0),
		       COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND status <> 'cancelled'
		GROUP BY day
		ORDER BY day
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, from)
	if err != nil {
		r.log.Error("Failed to load revenue by day", zap.Error(err), zap.Time("from", from))
		return nil, fmt.Errorf("failed to load revenue by day: %w", err)
	}
	defer rows.Close()

	days := make([]entity.DailyRevenue, 0)
	for rows.Next() {
		var d entity.DailyRevenue
		if err := rows.Scan(&d.Date, &d.Revenue, &d.OrderCount); err != nil {
			return nil, fmt.Errorf("failed to scan daily revenue: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}
