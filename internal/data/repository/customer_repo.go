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

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	FindAll(ctx context.Context, limit, offset int, customerType *entity.CustomerType) ([]*entity.Customer, error)
	CountAll(ctx context.Context, customerType *entity.CustomerType) (int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error

	Search(ctx context.Context, term string, limit int) ([]*entity.Customer, error)
	CountByType(ctx context.Context) ([]entity.CustomerTypeSummary, error)
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `id, name, customer_type, email, phone, address, tax_id, created_at, updated_at`

func scanCustomer(row scanner) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.CustomerType,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.TaxID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customerRepository) queryCustomers(ctx context.Context, query string, args ...any) ([]*entity.Customer, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query customers", zap.Error(err))
		return nil, fmt.Errorf("failed to find customers: %w", err)
	}
	defer rows.Close()

	customers := make([]*entity.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, customer_type, email, phone, address, tax_id,
		                       created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.CustomerType,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.TaxID,
		customer.CreatedAt,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create customer",
			zap.Error(err),
			zap.String("email", customer.Email),
		)
		return fmt.Errorf("create customer %s: %w", customer.Email, mapPgError(err))
	}

	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by ID",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return c, nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE LOWER(email) = LOWER($1)`

	c, err := scanCustomer(database.Conn(ctx, r.db).QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	return c, nil
}

func (r *customerRepository) FindAll(ctx context.Context, limit, offset int, customerType *entity.CustomerType) ([]*entity.Customer, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + customerColumns + ` FROM customers`)

	args := []any{}
	argCount := 1

	if customerType != nil {
		queryBuilder.WriteString(fmt.Sprintf(" WHERE customer_type = $%d", argCount))
		args = append(args, *customerType)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name, id LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	return r.queryCustomers(ctx, queryBuilder.String(), args...)
}

func (r *customerRepository) CountAll(ctx context.Context, customerType *entity.CustomerType) (int64, error) {
	query := `SELECT COUNT(*) FROM customers`
	args := []any{}

	if customerType != nil {
		query += " WHERE customer_type = $1"
		args = append(args, *customerType)
	}

	var total int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count customers", zap.Error(err))
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}

	return total, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, customer_type = $3, email = $4, phone = $5, address = $6,
		    tax_id = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := database.Conn(ctx, r.db).Exec(ctx, query,
		customer.ID,
		customer.Name,
		customer.CustomerType,
		customer.Email,
		customer.Phone,
		customer.Address,
		customer.TaxID,
		customer.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", customer.ID.String()),
		)
		return fmt.Errorf("failed to update customer: %w", mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", customer.ID, ErrNotFound)
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete customer",
			zap.Error(err),
			zap.String("customer_id", id.String()),
		)
		return fmt.Errorf("failed to delete customer: %w", mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}

	r.log.Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}

func (r *customerRepository) Search(ctx context.Context, term string, limit int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE name ILIKE $1 OR email ILIKE $1 OR COALESCE(phone, '') ILIKE $1
		ORDER BY name, id LIMIT $2`

	return r.queryCustomers(ctx, query, containsPattern(term), limit)
}

func (r *customerRepository) CountByType(ctx context.Context) ([]entity.CustomerTypeSummary, error) {
	query := `SELECT customer_type, COUNT(*) FROM customers GROUP BY customer_type ORDER BY customer_type`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count customers by type", zap.Error(err))
		return nil, fmt.Errorf("failed to count customers by type: %w", err)
	}
	defer rows.Close()

	summaries := make([]entity.CustomerTypeSummary, 0)
	for rows.Next() {
		var s entity.CustomerTypeSummary
		if err := rows.Scan(&s.CustomerType, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan customer type summary: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
