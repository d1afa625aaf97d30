package request

import "github.com/shopspring/decimal"

type ProductRequest struct {
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	SKU           string           `json:"sku" validate:"required,min=1,max=100"`
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	CurrentPrice  *decimal.Decimal `json:"current_price" validate:"required,gte=0,lte=9999999999.99"`
	StockQuantity *int             `json:"stock_quantity" validate:"required,gte=0"`
	Keywords      *string          `json:"keywords,omitempty"`
}

type ProductUpdateRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	SKU           *string          `json:"sku,omitempty" validate:"omitempty,min=1,max=100"`
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty" validate:"omitempty,max=100"`
	CurrentPrice  *decimal.Decimal `json:"current_price,omitempty" validate:"omitempty,gte=0,lte=9999999999.99"`
	StockQuantity *int             `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
	Keywords      *string          `json:"keywords,omitempty"`
}

// BulkPriceUpdateRequest is built from the bulk-price-update query string.
type BulkPriceUpdateRequest struct {
	Keyword         string          `json:"keyword" validate:"required,min=1,max=100"`
	PriceChangeType string          `json:"price_change_type" validate:"required,oneof=percentage fixed"`
	Value           decimal.Decimal `json:"value"`
	ProductIDs      []string        `json:"product_ids,omitempty" validate:"omitempty,dive,uuid"`
}
