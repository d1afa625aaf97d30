// Package seed loads a sample catalogue and customer list into an empty
// database.
package seed

import (
	"context"
	"fmt"
	"time"

	"beauty-orders/internal/data/entity"
	"beauty-orders/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type productSeed struct {
	name, sku, description, category, price, keywords string
	stock                                             int
}

var products = []productSeed{
	{"Professional Shampoo 500ml", "SHAMP-001", "Professional grade shampoo for all hair types", "Hair Care", "15.99", "shampoo hair professional loreal", 100},
	{"Hair Color Cream - Brown", "COLOR-001", "Permanent hair color cream", "Hair Color", "8.50", "color dye brown hair permanent", 50},
	{"Face Cream SPF50", "CREAM-001", "Daily moisturizing face cream with SPF50", "Skin Care", "22.00", "cream face spf skin moisturizer", 75},
	{"Conditioner 500ml", "COND-001", "Deep conditioning treatment", "Hair Care", "16.99", "conditioner hair treatment", 80},
	{"Hair Gel Strong Hold", "GEL-001", "Extra strong hold hair gel", "Hair Styling", "9.99", "gel styling hair hold", 60},
}

type customerSeed struct {
	name         string
	customerType entity.CustomerType
	email, phone string
	address      string
	taxID        string
}

var customers = []customerSeed{
	{"Grand Hotel Plaza", entity.CustomerTypeHotel, "contact@grandhotel.com", "+1234567890", "123 Main St, City Center", "TAX-HOTEL-001"},
	{"Elite Hair Salon", entity.CustomerTypeHairdresser, "info@elitehair.com", "+1234567891", "456 Beauty Ave, Shopping District", "TAX-SALON-001"},
	{"HealthPlus Pharmacy", entity.CustomerTypePharmacy, "orders@healthplus.com", "+1234567892", "789 Medical Blvd, Health Quarter", "TAX-PHARM-001"},
}

// Run inserts the sample data in one transaction. It does nothing when any
// product already exists.
func Run(ctx context.Context, repo *repository.Repository, log *zap.Logger) error {
	log = log.With(zap.String("component", "seed"))

	existing, err := repo.Product.CountAll(ctx, nil)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if existing > 0 {
		log.Info("Database already has data, skipping seed", zap.Int64("products", existing))
		return nil
	}

	now := time.Now()
	err = repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		for _, p := range products {
			product := &entity.Product{
				Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				Name:          p.name,
				SKU:           p.sku,
				Description:   ptr(p.description),
				Category:      ptr(p.category),
				CurrentPrice:  decimal.RequireFromString(p.price),
				StockQuantity: p.stock,
				Keywords:      ptr(p.keywords),
			}
			if err := repo.Product.Create(ctx, product); err != nil {
				return fmt.Errorf("seed product %s: %w", p.sku, err)
			}
		}

		for _, c := range customers {
			customer := &entity.Customer{
				Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
				Name:         c.name,
				CustomerType: c.customerType,
				Email:        c.email,
				Phone:        ptr(c.phone),
				Address:      ptr(c.address),
				TaxID:        ptr(c.taxID),
			}
			if err := repo.Customer.Create(ctx, customer); err != nil {
				return fmt.Errorf("seed customer %s: %w", c.email, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Database seeded",
		zap.Int("products", len(products)),
		zap.Int("customers", len(customers)),
	)
	return nil
}

func ptr(s string) *string { return &s }
