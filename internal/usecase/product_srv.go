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
	"beauty-orders/pkg/metrics"
	"beauty-orders/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const searchLimit = 100

type ProductService interface {
	GetProducts(ctx context.Context, req *request.PaginatedRequest, category *string) (*response.PaginatedResponse[response.ProductResponse], error)
	GetProductByID(ctx context.Context, productID string) (*response.ProductResponse, error)
	CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) (*response.ProductResponse, error)
	DeleteProduct(ctx context.Context, productID string) error
	BulkUpdatePrice(ctx context.Context, req *request.BulkPriceUpdateRequest) (*response.BulkPriceUpdateResponse, error)
	SearchProducts(ctx context.Context, term string) ([]response.ProductResponse, error)
	GetLowStock(ctx context.Context, threshold int) ([]response.ProductResponse, error)
}

type productService struct {
	repo              *repository.Repository
	lowStockThreshold int
	log               *zap.Logger
	now               func() time.Time
}

func NewProductService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ProductService {
	return &productService{
		repo:              repo,
		lowStockThreshold: config.Inventory.LowStockThreshold,
		log:               log.With(zap.String("service", "product")),
		now:               time.Now,
	}
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s id", ErrValidation, kind)
	}
	return id, nil
}

func (s *productService) GetProducts(ctx context.Context, req *request.PaginatedRequest, category *string) (*response.PaginatedResponse[response.ProductResponse], error) {
	req.Normalize()

	products, err := s.repo.Product.FindAll(ctx, req.Limit(), req.Offset(), category)
	if err != nil {
		s.log.Error("Failed to get products",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
			zap.Stringp("category", category),
		)
		return nil, fmt.Errorf("get products: %w", err)
	}

	total, err := s.repo.Product.CountAll(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	return response.NewPaginatedResponse(response.ProductsToResponse(products), req.Page, req.PerPage, total), nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*response.ProductResponse, error) {
	id, err := parseID("product", productID)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) CreateProduct(ctx context.Context, req *request.ProductRequest) (*response.ProductResponse, error) {
	if req.CurrentPrice == nil || req.StockQuantity == nil {
		return nil, fmt.Errorf("%w: current_price and stock_quantity are required", ErrValidation)
	}

	sku := strings.TrimSpace(req.SKU)

	existing, err := s.repo.Product.FindBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("check sku: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: sku %s already exists", ErrValidation, sku)
	}

	now := s.now()
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:          strings.TrimSpace(req.Name),
		SKU:           sku,
		Description:   req.Description,
		Category:      req.Category,
		CurrentPrice:  req.CurrentPrice.Round(2),
		StockQuantity: *req.StockQuantity,
		Keywords:      req.Keywords,
	}

	if err := s.repo.Product.Create(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: sku %s already exists", ErrValidation, sku)
		case errors.Is(err, repository.ErrOutOfRange):
			return nil, fmt.Errorf("%w: current_price is out of range", ErrValidation)
		}
		s.log.Error("Failed to create product", zap.Error(err), zap.String("sku", sku))
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("Product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
	)

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) UpdateProduct(ctx context.Context, productID string, req *request.ProductUpdateRequest) (*response.ProductResponse, error) {
	id, err := parseID("product", productID)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
	}

	// Apply partial updates only for provided fields
	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if sku != product.SKU {
			other, err := s.repo.Product.FindBySKU(ctx, sku)
			if err != nil {
				return nil, fmt.Errorf("check sku: %w", err)
			}
			if other != nil && other.ID != product.ID {
				return nil, fmt.Errorf("%w: sku %s already exists", ErrValidation, sku)
			}
			product.SKU = sku
		}
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	if req.CurrentPrice != nil {
		product.CurrentPrice = req.CurrentPrice.Round(2)
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.Keywords != nil {
		product.Keywords = req.Keywords
	}

	product.UpdatedAt = s.now()
	if err := s.repo.Product.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: sku %s already exists", ErrValidation, product.SKU)
		case errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, productID)
		case errors.Is(err, repository.ErrOutOfRange):
			return nil, fmt.Errorf("%w: current_price is out of range", ErrValidation)
		}
		s.log.Error("Failed to update product", zap.Error(err), zap.String("product_id", productID))
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.log.Info("Product updated", zap.String("product_id", productID))

	resp := response.ProductToResponse(product)
	return &resp, nil
}

func (s *productService) DeleteProduct(ctx context.Context, productID string) error {
	id, err := parseID("product", productID)
	if err != nil {
		return err
	}

	if err := s.repo.Product.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("%w: product %s", ErrNotFound, productID)
		case errors.Is(err, repository.ErrReferenced):
			return fmt.Errorf("%w: product is referenced by existing orders", ErrValidation)
		}
		s.log.Error("Failed to delete product", zap.Error(err), zap.String("product_id", productID))
		return fmt.Errorf("delete product: %w", err)
	}

	s.log.Info("Product deleted", zap.String("product_id", productID))
	return nil
}

// BulkUpdatePrice reprices every product matching the keyword inside one
// transaction. The matching rows stay locked until the transaction commits.
func (s *productService) BulkUpdatePrice(ctx context.Context, req *request.BulkPriceUpdateRequest) (*response.BulkPriceUpdateResponse, error) {
	keyword := strings.TrimSpace(req.Keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: keyword is required", ErrValidation)
	}

	changeType, err := entity.ParsePriceChangeType(req.PriceChangeType)
	if err != nil {
		return nil, fmt.Errorf("%w: price_change_type must be percentage or fixed", ErrValidation)
	}

	change := entity.PriceChange{Type: changeType, Value: req.Value}
	if err := change.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	var only map[uuid.UUID]bool
	if len(req.ProductIDs) > 0 {
		only = make(map[uuid.UUID]bool, len(req.ProductIDs))
		for _, raw := range req.ProductIDs {
			id, err := parseID("product", raw)
			if err != nil {
				return nil, err
			}
			only[id] = true
		}
	}

	changed := make([]response.PriceChangeResponse, 0)
	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		products, err := s.repo.Product.FindByKeywordForUpdate(ctx, keyword)
		if err != nil {
			return fmt.Errorf("find products by keyword: %w", err)
		}

		for _, p := range products {
			if only != nil && !only[p.ID] {
				continue
			}

			newPrice := change.Apply(p.CurrentPrice)
			if newPrice.GreaterThan(entity.MaxAmount) {
				return fmt.Errorf("%w: new price of %s exceeds %s", ErrValidation, p.SKU, entity.MaxAmount.StringFixed(2))
			}
			if err := s.repo.Product.UpdatePrice(ctx, p.ID, newPrice); err != nil {
				if errors.Is(err, repository.ErrOutOfRange) {
					return fmt.Errorf("%w: new price of %s is out of range", ErrValidation, p.SKU)
				}
				return fmt.Errorf("update price of %s: %w", p.SKU, err)
			}

			changed = append(changed, response.PriceChangeResponse{
				ID:       p.ID.String(),
				Name:     p.Name,
				SKU:      p.SKU,
				OldPrice: p.CurrentPrice,
				NewPrice: newPrice,
			})
		}
		return nil
	})
	if errors.Is(err, ErrValidation) {
		s.log.Warn("Bulk price update rejected", zap.Error(err), zap.String("keyword", keyword))
		return nil, err
	}
	if err != nil {
		s.log.Error("Bulk price update failed",
			zap.Error(err),
			zap.String("keyword", keyword),
			zap.String("type", string(changeType)),
		)
		return nil, fmt.Errorf("bulk price update: %w", err)
	}

	metrics.RecordPriceUpdates(string(changeType), len(changed))

	s.log.Info("Bulk price update applied",
		zap.String("keyword", keyword),
		zap.String("type", string(changeType)),
		zap.String("value", change.Value.String()),
		zap.Int("updated", len(changed)),
	)

	return &response.BulkPriceUpdateResponse{
		Updated:         len(changed),
		Keyword:         keyword,
		PriceChangeType: string(changeType),
		Value:           change.Value,
		Products:        changed,
	}, nil
}

func (s *productService) SearchProducts(ctx context.Context, term string) ([]response.ProductResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is required", ErrValidation)
	}

	products, err := s.repo.Product.Search(ctx, term, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	s.log.Debug("Products searched", zap.String("term", term), zap.Int("count", len(products)))
	return response.ProductsToResponse(products), nil
}

// GetLowStock lists products below threshold, or below the configured
// threshold when threshold is not positive.
func (s *productService) GetLowStock(ctx context.Context, threshold int) ([]response.ProductResponse, error) {
	if threshold <= 0 {
		threshold = s.lowStockThreshold
	}

	products, err := s.repo.Product.FindLowStock(ctx, threshold, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("get low stock products: %w", err)
	}
	return response.ProductsToResponse(products), nil
}
