package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"beauty-orders/internal/data/entity"
	"beauty-orders/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type OrderRepository interface {
	// Create inserts the order and all of its items.
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindAll(ctx context.Context, limit, offset int, status *entity.OrderStatus) ([]*entity.Order, error)
	CountAll(ctx context.Context, status *entity.OrderStatus) (int64, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Aggregates
	StatsByStatus(ctx context.Context) ([]entity.StatusSummary, error)
	CustomerTotals(ctx context.Context, customerID uuid.UUID) (*entity.CustomerOrderTotals, error)
	CustomerTopProducts(ctx context.Context, customerID uuid.UUID, limit int) ([]entity.TopProduct, error)
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, customer_id, order_number, status, total_amount, created_at, updated_at`

func scanOrder(row scanner) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.OrderNumber,
		&o.Status,
		&o.TotalAmount,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	conn := database.Conn(ctx, r.db)

	query := `
		INSERT INTO orders (id, customer_id, order_number, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := conn.Exec(ctx, query,
		order.ID,
		order.CustomerID,
		order.OrderNumber,
		order.Status,
		order.TotalAmount,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber),
		)
		return fmt.Errorf("failed to create order: %w", mapPgError(err))
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, item := range order.Items {
		_, err := conn.Exec(ctx, itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
			item.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create order item",
				zap.Error(err),
				zap.String("order_id", order.ID.String()),
				zap.String("product_id", item.ProductID.String()),
			)
			return fmt.Errorf("failed to create order item: %w", mapPgError(err))
		}
	}

	r.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.Int("items", len(order.Items)),
	)

	return nil
}

func (r *orderRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Order, error) {
	order, err := scanOrder(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	if err := r.attachItems(ctx, []*entity.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *orderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.findOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query orders", zap.Error(err))
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*entity.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// attachItems loads the items of every order with a single query.
func (r *orderRepository) attachItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		o.Items = make([]*entity.OrderItem, 0)
		byID[o.ID] = o
		ids = append(ids, o.ID.String())
	}

	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, oi.subtotal,
		       oi.created_at, p.name
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1::uuid[])
		ORDER BY oi.created_at, oi.id
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to load order items", zap.Error(err), zap.Int("orders", len(orders)))
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Quantity,
			&item.UnitPrice,
			&item.Subtotal,
			&item.CreatedAt,
			&item.ProductName,
		)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, &item)
		}
	}

	return rows.Err()
}

func (r *orderRepository) FindAll(ctx context.Context, limit, offset int, status *entity.OrderStatus) ([]*entity.Order, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + orderColumns + ` FROM orders`)

	args := []any{}
	argCount := 1

	if status != nil {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE status = $%d", argCount))
		args = append(args, *status)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	return r.queryOrders(ctx, queryBuilder.String(), args...)
}

func (r *orderRepository) CountAll(ctx context.Context, status *entity.OrderStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM orders`
	args := []any{}

	if status != nil {
		query += " WHERE status = $1"
		args = append(args, *status)
	}

	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return total, nil
}

func (r *orderRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE customer_id = $1 ORDER BY created_at DESC, id`
	return r.queryOrders(ctx, query, customerID)
}

func (r *orderRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var total int64
	err := database.Conn(ctx, r.db).
		QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE customer_id = $1`, customerID).
		Scan(&total)
	if err != nil {
		r.log.Error("Failed to count customer orders",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("failed to count customer orders: %w", err)
	}

	return total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}

	return nil
}

// Delete removes the order; its items go with it through ON DELETE CASCADE.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete order",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}

	r.log.Info("Order deleted", zap.String("order_id", id.String()))
	return nil
}

func (r *orderRepository) StatsByStatus(ctx context.Context) ([]entity.StatusSummary, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		GROUP BY status
		ORDER BY status
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to aggregate orders by status", zap.Error(err))
		return nil, fmt.Errorf("failed to aggregate orders by status: %w", err)
	}
	defer rows.Close()

	stats := make([]entity.StatusSummary, 0)
	for rows.Next() {
		var s entity.StatusSummary
		if err := rows.Scan(&s.Status, &s.Count, &s.TotalRevenue); err != nil {
			return nil, fmt.Errorf("failed to scan status summary: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

func (r *orderRepository) CustomerTotals(ctx context.Context, customerID uuid.UUID) (*entity.CustomerOrderTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE customer_id = $1 AND status <> 'cancelled'
	`

	var totals entity.CustomerOrderTotals
	err := database.Conn(ctx, r.db).QueryRow(ctx, query, customerID).Scan(&totals.TotalOrders, &totals.TotalSpent)
	if err != nil {
		r.log.Error("Failed to aggregate customer orders",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("failed to aggregate customer orders: %w", err)
	}

	return &totals, nil
}

func (r *orderRepository) CustomerTopProducts(ctx context.Context, customerID uuid.UUID, limit int) ([]entity.TopProduct, error) {
	query := `
		SELECT p.id, p.name, COUNT(oi.id), COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.customer_id = $1 AND o.status <> 'cancelled'
		GROUP BY p.id, p.name
		ORDER BY SUM(oi.quantity) DESC, p.name
		LIMIT $2
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, customerID, limit)
	if err != nil {
		r.log.Error("Failed to find customer top products",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("failed to find customer top products: %w", err)
	}
	defer rows.Close()

	return scanTopProducts(rows)
}

func scanTopProducts(rows pgx.Rows) ([]entity.TopProduct, error) {
	products := make([]entity.TopProduct, 0)
	for rows.Next() {
		var tp entity.TopProduct
		if err := rows.Scan(&tp.ProductID, &tp.Name, &tp.OrderCount, &tp.TotalQuantity); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		products = append(products, tp)
	}
	return products, rows.Err()
}
