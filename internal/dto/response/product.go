package response

import (
	"time"

	"beauty-orders/internal/data/entity"

	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Description   *string         `json:"description"`
	Category      *string         `json:"category"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	StockQuantity int             `json:"stock_quantity"`
	Keywords      *string         `json:"keywords"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type PriceChangeResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	OldPrice decimal.Decimal `json:"old_price"`
	NewPrice decimal.Decimal `json:"new_price"`
}

type BulkPriceUpdateResponse struct {
	Updated         int                   `json:"updated"`
	Keyword         string                `json:"keyword"`
	PriceChangeType string                `json:"price_change_type"`
	Value           decimal.Decimal       `json:"value"`
	Products        []PriceChangeResponse `json:"products"`
}

func ProductToResponse(product *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID.String(),
		Name:          product.Name,
		SKU:           product.SKU,
		Description:   product.Description,
		Category:      product.Category,
		CurrentPrice:  product.CurrentPrice,
		StockQuantity: product.StockQuantity,
		Keywords:      product.Keywords,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}

func ProductsToResponse(products []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ProductToResponse(p)
	}
	return out
}
