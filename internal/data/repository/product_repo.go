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
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductRepository interface {
	// CRUD Product
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindBySKU(ctx context.Context, sku string) (*entity.Product, error)
	FindAll(ctx context.Context, limit, offset int, category *string) ([]*entity.Product, error)
	CountAll(ctx context.Context, category *string) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Keyword matching on name, sku and keywords
	Search(ctx context.Context, term string, limit int) ([]*entity.Product, error)
	FindLowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error)

	// Row-locking reads and stock/price writes, meant to run inside a transaction
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindByKeywordForUpdate(ctx context.Context, keyword string) ([]*entity.Product, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type productRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewProductRepository(db database.PgxIface, log *zap.Logger) ProductRepository {
	return &productRepository{
		db:  db,
		log: log.With(zap.String("repository", "product")),
	}
}

const productColumns = `id, name, sku, description, category, current_price,
	stock_quantity, keywords, created_at, updated_at`

const productMatch = `(name ILIKE $1 OR sku ILIKE $1 OR COALESCE(keywords, '') ILIKE $1)`

func scanProduct(row scanner) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.SKU,
		&p.Description,
		&p.Category,
		&p.CurrentPrice,
		&p.StockQuantity,
		&p.Keywords,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) queryProducts(ctx context.Context, op string, query string, args ...any) ([]*entity.Product, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query products", zap.Error(err), zap.String("operation", op))
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}
	defer rows.Close()

	products := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err), zap.String("operation", op))
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err), zap.String("operation", op))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) findOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(database.Conn(ctx, r.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, sku, description, category, current_price,
		                      stock_quantity, keywords, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		product.ID,
		product.Name,
		product.SKU,
		product.Description,
		product.Category,
		product.CurrentPrice,
		product.StockQuantity,
		product.Keywords,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("sku", product.SKU),
		)
		return fmt.Errorf("failed to create product: %w", mapPgError(err))
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *productRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *productRepository) FindBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

func (r *productRepository) FindAll(ctx context.Context, limit, offset int, category *string) ([]*entity.Product, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + productColumns + ` FROM products`)

	args := []any{}
	argCount := 1

	if category != nil && *category != "" {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE category = $%d", argCount))
		args = append(args, *category)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name, id LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	products, err := r.queryProducts(ctx, "find products", queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}

	r.log.Debug("Products found",
		zap.Int("count", len(products)),
		zap.Int("limit", limit),
		zap.Int("offset", offset),
	)

	return products, nil
}

func (r *productRepository) CountAll(ctx context.Context, category *string) (int64, error) {
	query := `SELECT COUNT(*) FROM products`
	args := []any{}

	if category != nil && *category != "" {
		query += " WHERE category = $1"
		args = append(args, *category)
	}

	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return total, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, sku = $3, description = $4, category = $5, current_price = $6,
		    stock_quantity = $7, keywords = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		product.ID,
		product.Name,
		product.SKU,
		product.Description,
		product.Category,
		product.CurrentPrice,
		product.StockQuantity,
		product.Keywords,
		product.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("failed to update product: %w", mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return fmt.Errorf("failed to delete product: %w", mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	r.log.Info("Product deleted", zap.String("product_id", id.String()))
	return nil
}

func (r *productRepository) Search(ctx context.Context, term string, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + productMatch + `
		ORDER BY name, id LIMIT $2`

	return r.queryProducts(ctx, "search products", query, containsPattern(term), limit)
}

func (r *productRepository) FindLowStock(ctx context.Context, threshold, limit int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock_quantity < $1
		ORDER BY stock_quantity, name LIMIT $2`

	return r.queryProducts(ctx, "find low stock products", query, threshold, limit)
}

func (r *productRepository) FindByKeywordForUpdate(ctx context.Context, keyword string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + productMatch + `
		ORDER BY id FOR UPDATE`

	return r.queryProducts(ctx, "find products by keyword", query, containsPattern(keyword))
}

func (r *productRepository) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	query := `UPDATE products SET current_price = $2, updated_at = NOW() WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, price)
	if err != nil {
		r.log.Error("Failed to update product price",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.String("price", price.StringFixed(2)),
		)
		return fmt.Errorf("failed to update price: %w", mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	return nil
}

// DecrementStock removes quantity units, refusing to take stock below zero.
func (r *productRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = NOW()
		WHERE id = $1 AND stock_quantity >= $2
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, quantity)
	if err != nil {
		r.log.Error("Failed to decrement stock",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Int("quantity", quantity),
		)
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, ErrInsufficientStock)
	}

	return nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = NOW() WHERE id = $1`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query, id, quantity)
	if err != nil {
		r.log.Error("Failed to restore stock",
			zap.Error(err),
			zap.String("product_id", id.String()),
			zap.Int("quantity", quantity),
		)
		return fmt.Errorf("failed to restore stock: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	return nil
}
