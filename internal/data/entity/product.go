package entity

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Product struct {
	Base
	Name          string          `db:"name"`
	SKU           string          `db:"sku"`
	Description   *string         `db:"description"`
	Category      *string         `db:"category"`
	CurrentPrice  decimal.Decimal `db:"current_price"`
	StockQuantity int             `db:"stock_quantity"`
	Keywords      *string         `db:"keywords"`
}

// PriceChangeType selects how a bulk price update treats its value.
type PriceChangeType string

const (
	PriceChangePercentage PriceChangeType = "percentage"
	PriceChangeFixed      PriceChangeType = "fixed"
)

func ParsePriceChangeType(s string) (PriceChangeType, error) {
	switch t := PriceChangeType(s); t {
	case PriceChangePercentage, PriceChangeFixed:
		return t, nil
	}
	return "", fmt.Errorf("unknown price change type %q", s)
}

var hundred = decimal.NewFromInt(100)

// MaxAmount is the largest value a NUMERIC(12,2) money column holds.
var MaxAmount = decimal.RequireFromString("9999999999.99")

// PriceChange is a validated bulk price adjustment.
type PriceChange struct {
	Type  PriceChangeType
	Value decimal.Decimal
}

func (c PriceChange) Validate() error {
	switch c.Type {
	case PriceChangePercentage:
		if c.Value.LessThanOrEqual(hundred.Neg()) {
			return fmt.Errorf("percentage must be greater than -100")
		}
	case PriceChangeFixed:
		if c.Value.IsNegative() {
			return fmt.Errorf("fixed price must not be negative")
		}
		if c.Value.GreaterThan(MaxAmount) {
			return fmt.Errorf("fixed price must not exceed %s", MaxAmount.StringFixed(2))
		}
	default:
		return fmt.Errorf("unknown price change type %q", c.Type)
	}
	return nil
}

// Apply returns the new price rounded to cents.
func (c PriceChange) Apply(price decimal.Decimal) decimal.Decimal {
	switch c.Type {
	case PriceChangePercentage:
		factor := decimal.NewFromInt(1).Add(c.Value.Div(hundred))
		return price.Mul(factor).Round(2)
	case PriceChangeFixed:
		return c.Value.Round(2)
	}
	return price
}
