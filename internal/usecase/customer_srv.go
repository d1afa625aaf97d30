package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"beauty-orders/internal/data/entity"
	"beauty-orders/internal/data/repository"
	"beauty-orders/internal/dto/request"
	"beauty-orders/internal/dto/response"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const customerTopProducts = 5

type CustomerService interface {
	GetCustomers(ctx context.Context, req *request.PaginatedRequest, customerType *string) (*response.PaginatedResponse[response.CustomerResponse], error)
	GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error)
	CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, customerID string, req *request.CustomerUpdateRequest) (*response.CustomerResponse, error)
	DeleteCustomer(ctx context.Context, customerID string) error
	GetCustomerStats(ctx context.Context, customerID string) (*response.CustomerStatsResponse, error)
	GetCustomerOrders(ctx context.Context, customerID string) ([]response.OrderResponse, error)
	GetCustomerStatsByType(ctx context.Context) ([]response.CustomerTypeStat, error)
	SearchCustomers(ctx context.Context, term string) ([]response.CustomerResponse, error)
}

type customerService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewCustomerService(repo *repository.Repository, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		log:  log.With(zap.String("service", "customer")),
		now:  time.Now,
	}
}

func (s *customerService) GetCustomers(ctx context.Context, req *request.PaginatedRequest, customerType *string) (*response.PaginatedResponse[response.CustomerResponse], error) {
	req.Normalize()

	var typeFilter *entity.CustomerType
	if customerType != nil && *customerType != "" {
		ct := entity.CustomerType(*customerType)
		if !ct.IsValid() {
			return nil, fmt.Errorf("%w: unknown customer type %q", ErrValidation, *customerType)
		}
		typeFilter = &ct
	}

	customers, err := s.repo.Customer.FindAll(ctx, req.Limit(), req.Offset(), typeFilter)
	if err != nil {
		s.log.Error("Failed to get customers", zap.Error(err), zap.Int("page", req.Page))
		return nil, fmt.Errorf("get customers: %w", err)
	}

	total, err := s.repo.Customer.CountAll(ctx, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}

	return response.NewPaginatedResponse(response.CustomersToResponse(customers), req.Page, req.PerPage, total), nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*response.CustomerResponse, error) {
	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	email := strings.TrimSpace(req.Email)

	existing, err := s.repo.Customer.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s already registered", ErrValidation, email)
	}

	now := s.now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         strings.TrimSpace(req.Name),
		CustomerType: entity.CustomerType(req.CustomerType),
		Email:        email,
		Phone:        req.Phone,
		Address:      req.Address,
		TaxID:        req.TaxID,
	}

	if !customer.CustomerType.IsValid() {
		return nil, fmt.Errorf("%w: unknown customer type %q", ErrValidation, req.CustomerType)
	}

	if err := s.repo.Customer.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email %s already registered", ErrValidation, email)
		}
		s.log.Error("Failed to create customer", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create customer: %w", err)
	}

	s.log.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("customer_type", string(customer.CustomerType)),
	)

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req *request.CustomerUpdateRequest) (*response.CustomerResponse, error) {
	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.CustomerType != nil {
		ct := entity.CustomerType(*req.CustomerType)
		if !ct.IsValid() {
			return nil, fmt.Errorf("%w: unknown customer type %q", ErrValidation, *req.CustomerType)
		}
		customer.CustomerType = ct
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !strings.EqualFold(email, customer.Email) {
			other, err := s.repo.Customer.FindByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if other != nil && other.ID != customer.ID {
				return nil, fmt.Errorf("%w: email %s already registered", ErrValidation, email)
			}
		}
		customer.Email = email
	}
	if req.Phone != nil {
		customer.Phone = req.Phone
	}
	if req.Address != nil {
		customer.Address = req.Address
	}
	if req.TaxID != nil {
		customer.TaxID = req.TaxID
	}

	customer.UpdatedAt = s.now()
	if err := s.repo.Customer.Update(ctx, customer); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: email %s already registered", ErrValidation, customer.Email)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
		}
		s.log.Error("Failed to update customer", zap.Error(err), zap.String("customer_id", customerID))
		return nil, fmt.Errorf("update customer: %w", err)
	}

	s.log.Info("Customer updated", zap.String("customer_id", customerID))

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

// DeleteCustomer refuses to remove customers that still have orders.
func (s *customerService) DeleteCustomer(ctx context.Context, customerID string) error {
	id, err := parseID("customer", customerID)
	if err != nil {
		return err
	}

	orders, err := s.repo.Order.CountByCustomerID(ctx, id)
	if err != nil {
		return fmt.Errorf("count customer orders: %w", err)
	}
	if orders > 0 {
		return fmt.Errorf("%w: customer has %d orders", ErrValidation, orders)
	}

	if err := s.repo.Customer.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("%w: customer %s", ErrNotFound, customerID)
		case errors.Is(err, repository.ErrReferenced):
			return fmt.Errorf("%w: customer has orders", ErrValidation)
		}
		s.log.Error("Failed to delete customer", zap.Error(err), zap.String("customer_id", customerID))
		return fmt.Errorf("delete customer: %w", err)
	}

	s.log.Info("Customer deleted", zap.String("customer_id", customerID))
	return nil
}

// GetCustomerStats summarises non-cancelled orders of one customer.
func (s *customerService) GetCustomerStats(ctx context.Context, customerID string) (*response.CustomerStatsResponse, error) {
	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.Order.CustomerTotals(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("get customer totals: %w", err)
	}

	top, err := s.repo.Order.CustomerTopProducts(ctx, customer.ID, customerTopProducts)
	if err != nil {
		return nil, fmt.Errorf("get customer top products: %w", err)
	}

	average := decimal.Zero
	if totals.TotalOrders > 0 {
		average = totals.TotalSpent.Div(decimal.NewFromInt(totals.TotalOrders)).Round(2)
	}

	products := make([]response.CustomerProductStat, len(top))
	for i, p := range top {
		products[i] = response.CustomerProductStat{
			ProductID: p.ProductID.String(),
			Name:      p.Name,
			Quantity:  p.TotalQuantity,
		}
	}

	return &response.CustomerStatsResponse{
		CustomerID:   customer.ID.String(),
		Name:         customer.Name,
		TotalOrders:  totals.TotalOrders,
		TotalSpent:   totals.TotalSpent,
		AverageOrder: average,
		TopProducts:  products,
	}, nil
}

func (s *customerService) GetCustomerOrders(ctx context.Context, customerID string) ([]response.OrderResponse, error) {
	customer, err := s.findCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.repo.Order.FindByCustomerID(ctx, customer.ID)
	if err != nil {
		return nil, fmt.Errorf("get customer orders: %w", err)
	}
	return response.OrdersToResponse(orders), nil
}

func (s *customerService) GetCustomerStatsByType(ctx context.Context) ([]response.CustomerTypeStat, error) {
	rows, err := s.repo.Customer.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count customers by type: %w", err)
	}

	stats := make([]response.CustomerTypeStat, len(rows))
	for i, row := range rows {
		stats[i] = response.CustomerTypeStat{
			CustomerType: row.CustomerType,
			Count:        row.Count,
		}
	}
	return stats, nil
}

func (s *customerService) SearchCustomers(ctx context.Context, term string) ([]response.CustomerResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrValidation)
	}

	customers, err := s.repo.Customer.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}

	return response.CustomersToResponse(customers), nil
}

func (s *customerService) findCustomer(ctx context.Context, customerID string) (*entity.Customer, error) {
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
	return customer, nil
}
