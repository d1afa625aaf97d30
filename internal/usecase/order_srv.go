package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"beauty-orders/internal/data/entity"
	"beauty-orders/internal/data/repository"
	"beauty-orders/internal/dto/request"
	"beauty-orders/internal/dto/response"
	"beauty-orders/pkg/metrics"
	"beauty-orders/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	GetOrders(ctx context.Context, req *request.PaginatedRequest, status *string) (*response.PaginatedResponse[response.OrderResponse], error)
	GetOrderByID(ctx context.Context, orderID string) (*response.OrderResponse, error)
	GetOrdersByCustomer(ctx context.Context, customerID string) ([]response.OrderResponse, error)
	UpdateOrderStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error)
	DeleteOrder(ctx context.Context, orderID string) error
	GetOrderStatsByStatus(ctx context.Context) ([]response.OrderStatusStat, error)
}

// orderNumberAttempts bounds how often CreateOrder draws a fresh order number
// after a unique violation.
const orderNumberAttempts = 3

type orderService struct {
	repo        *repository.Repository
	log         *zap.Logger
	now         func() time.Time
	orderNumber func(time.Time) string
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo:        repo,
		log:         log.With(zap.String("service", "order")),
		now:         time.Now,
		orderNumber: utils.GenerateOrderNumber,
	}
}

type orderLine struct {
	productID uuid.UUID
	quantity  int
}

// CreateOrder places an order atomically: every product row is locked, stock
// is checked and decremented, prices are snapshotted and the order with its
// items is inserted. Any failure rolls the whole order back.
func (s *orderService) CreateOrder(ctx context.Context, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	customerID, err := parseID("customer", req.CustomerID)
	if err != nil {
		return nil, err
	}

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	lines := make([]orderLine, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := parseID("product", item.ProductID)
		if err != nil {
			return nil, err
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
		lines = append(lines, orderLine{productID: productID, quantity: item.Quantity})
	}

	var order *entity.Order
	for attempt := 1; ; attempt++ {
		order, err = s.placeOrder(ctx, customerID, lines)
		if errors.Is(err, repository.ErrDuplicate) && attempt < orderNumberAttempts {
			s.log.Warn("Order number taken, retrying",
				zap.String("order_number", order.OrderNumber),
				zap.Int("attempt", attempt),
			)
			continue
		}
		break
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInsufficientStock) || errors.Is(err, ErrValidation) {
			s.log.Warn("Order rejected", zap.Error(err), zap.String("customer_id", req.CustomerID))
		} else {
			s.log.Error("Failed to create order", zap.Error(err), zap.String("customer_id", req.CustomerID))
		}
		return nil, err
	}

	total, _ := order.TotalAmount.Float64()
	metrics.RecordOrderCreated(total)

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(order.Items)),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// placeOrder runs one attempt of CreateOrder in its own transaction under a
// freshly drawn order number. The order is returned even on failure so the
// caller can log the number it tried.
func (s *orderService) placeOrder(ctx context.Context, customerID uuid.UUID, lines []orderLine) (*entity.Order, error) {
	now := s.now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		CustomerID:  customerID,
		OrderNumber: s.orderNumber(now),
		Status:      entity.OrderStatusPending,
		Items:       make([]*entity.OrderItem, 0, len(lines)),
	}

	err := s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		customer, err := s.repo.Customer.FindByID(ctx, customerID)
		if err != nil {
			return fmt.Errorf("find customer: %w", err)
		}
		if customer == nil {
			return fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
		}

		for _, line := range lines {
			product, err := s.repo.Product.FindByIDForUpdate(ctx, line.productID)
			if err != nil {
				return fmt.Errorf("find product: %w", err)
			}
			if product == nil {
				return fmt.Errorf("%w: product %s", ErrNotFound, line.productID)
			}

			if product.StockQuantity < line.quantity {
				return fmt.Errorf("%w for %s: requested %d, available %d",
					ErrInsufficientStock, product.Name, line.quantity, product.StockQuantity)
			}

			if err := s.repo.Product.DecrementStock(ctx, product.ID, line.quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) {
					return fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
				}
				return fmt.Errorf("decrement stock: %w", err)
			}

			item := entity.NewOrderItem(order.ID, product, line.quantity)
			item.ID = uuid.New()
			item.CreatedAt = now
			order.Items = append(order.Items, item)
		}

		order.RecalculateTotal()
		if order.TotalAmount.GreaterThan(entity.MaxAmount) {
			return fmt.Errorf("%w: order total exceeds %s", ErrValidation, entity.MaxAmount.StringFixed(2))
		}

		if err := s.repo.Order.Create(ctx, order); err != nil {
			if errors.Is(err, repository.ErrOutOfRange) {
				return fmt.Errorf("%w: order amount is out of range", ErrValidation)
			}
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	return order, err
}

func (s *orderService) GetOrders(ctx context.Context, req *request.PaginatedRequest, status *string) (*response.PaginatedResponse[response.OrderResponse], error) {
	req.Normalize()

	var statusFilter *entity.OrderStatus
	if status != nil && *status != "" {
		st := entity.OrderStatus(*status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, *status)
		}
		statusFilter = &st
	}

	orders, err := s.repo.Order.FindAll(ctx, req.Limit(), req.Offset(), statusFilter)
	if err != nil {
		s.log.Error("Failed to get orders", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("get orders: %w", err)
	}

	total, err := s.repo.Order.CountAll(ctx, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	return response.NewPaginatedResponse(response.OrdersToResponse(orders), req.Page, req.PerPage, total), nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*response.OrderResponse, error) {
	id, err := parseID("order", orderID)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.Order.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) GetOrdersByCustomer(ctx context.Context, customerID string) ([]response.OrderResponse, error) {
	id, err := parseID("customer", customerID)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
	}

	orders, err := s.repo.Order.FindByCustomerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer orders: %w", err)
	}

	return response.OrdersToResponse(orders), nil
}

// UpdateOrderStatus moves an order forward through its lifecycle. Cancelling
// puts the reserved stock back.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req *request.UpdateOrderStatusRequest) (*response.OrderResponse, error) {
	id, err := parseID("order", orderID)
	if err != nil {
		return nil, err
	}

	next := entity.OrderStatus(req.Status)
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, req.Status)
	}

	var order *entity.Order
	changed := false

	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		order, err = s.repo.Order.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}
		if order == nil {
			return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}

		if order.Status == next {
			return nil
		}
		if !order.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, next)
		}

		if next == entity.OrderStatusCancelled {
			if err := s.restoreStock(ctx, order); err != nil {
				return err
			}
		}

		if err := s.repo.Order.UpdateStatus(ctx, order.ID, next); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		order.Status = next
		order.UpdatedAt = s.now()
		changed = true
		return nil
	})
	if err != nil {
		s.log.Warn("Order status update failed",
			zap.Error(err),
			zap.String("order_id", orderID),
			zap.String("status", req.Status),
		)
		return nil, err
	}

	if changed {
		metrics.RecordOrderTransition(string(next))
		s.log.Info("Order status updated",
			zap.String("order_id", orderID),
			zap.String("status", string(next)),
		)
	}

	resp := response.OrderToResponse(order)
	return &resp, nil
}

// DeleteOrder removes pending or cancelled orders. Stock held by a pending
// order is released; a cancelled order already gave its stock back.
func (s *orderService) DeleteOrder(ctx context.Context, orderID string) error {
	id, err := parseID("order", orderID)
	if err != nil {
		return err
	}

	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		order, err := s.repo.Order.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("find order: %w", err)
		}
		if order == nil {
			return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
		}

		switch order.Status {
		case entity.OrderStatusPending:
			if err := s.restoreStock(ctx, order); err != nil {
				return err
			}
		case entity.OrderStatusCancelled:
		default:
			return fmt.Errorf("%w: only pending or cancelled orders can be deleted", ErrValidation)
		}

		if err := s.repo.Order.Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: order %s", ErrNotFound, orderID)
			}
			return fmt.Errorf("delete order: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Order delete failed", zap.Error(err), zap.String("order_id", orderID))
		return err
	}

	s.log.Info("Order deleted", zap.String("order_id", orderID))
	return nil
}

func (s *orderService) restoreStock(ctx context.Context, order *entity.Order) error {
	for _, item := range order.Items {
		if err := s.repo.Product.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("restore stock for %s: %w", item.ProductID, err)
		}
	}
	return nil
}

// GetOrderStatsByStatus reports every status, including those with no orders.
func (s *orderService) GetOrderStatsByStatus(ctx context.Context) ([]response.OrderStatusStat, error) {
	rows, err := s.repo.Order.StatsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("get order stats: %w", err)
	}

	byStatus := make(map[entity.OrderStatus]entity.StatusSummary, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row
	}

	stats := make([]response.OrderStatusStat, 0, len(entity.OrderStatuses))
	for _, status := range entity.OrderStatuses {
		row := byStatus[status]
		stats = append(stats, response.OrderStatusStat{
			Status:       status,
			Count:        row.Count,
			TotalRevenue: row.TotalRevenue,
		})
	}

	return stats, nil
}
