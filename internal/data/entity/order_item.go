package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItem struct {
	BaseSimple
	OrderID   uuid.UUID       `db:"order_id"`
	ProductID uuid.UUID       `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Subtotal  decimal.Decimal `db:"subtotal"`

	ProductName string `db:"-"`
}

// NewOrderItem snapshots the unit price and computes the subtotal.
func NewOrderItem(orderID uuid.UUID, product *Product, quantity int) *OrderItem {
	return &OrderItem{
		OrderID:     orderID,
		ProductID:   product.ID,
		Quantity:    quantity,
		UnitPrice:   product.CurrentPrice,
		Subtotal:    product.CurrentPrice.Mul(decimal.NewFromInt(int64(quantity))),
		ProductName: product.Name,
	}
}
