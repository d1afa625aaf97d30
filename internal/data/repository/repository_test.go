package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"beauty-orders/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestProductDecrementStock(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("enough stock", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE products").
			WithArgs(id, 2).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := NewProductRepository(mock, zap.NewNop()).DecrementStock(ctx, id, 2)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guard rejects", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE products").
			WithArgs(id, 20).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := NewProductRepository(mock, zap.NewNop()).DecrementStock(ctx, id, 20)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductUpdatePriceNotFound(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()
	mock.ExpectExec("UPDATE products SET current_price").
		WithArgs(id, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := NewProductRepository(mock, zap.NewNop()).UpdatePrice(context.Background(), id, decimal.RequireFromString("9.99"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDeleteReferenced(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()
	mock.ExpectExec("DELETE FROM products").
		WithArgs(id).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

	err := NewProductRepository(mock, zap.NewNop()).Delete(context.Background(), id)
	assert.ErrorIs(t, err, ErrReferenced)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCountAllWithCategory(t *testing.T) {
	mock := newMock(t)
	category := "Hair Care"
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM products WHERE category = $1`)).
		WithArgs(category).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	total, err := NewProductRepository(mock, zap.NewNop()).CountAll(context.Background(), &category)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerDelete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM customers").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := NewCustomerRepository(mock, zap.NewNop()).Delete(ctx, id)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("has orders", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("DELETE FROM customers").
			WithArgs(id).
			WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation})

		err := NewCustomerRepository(mock, zap.NewNop()).Delete(ctx, id)
		assert.ErrorIs(t, err, ErrReferenced)
	})
}

func TestOrderUpdateStatus(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs(id, entity.OrderStatusShipped).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := NewOrderRepository(mock, zap.NewNop()).UpdateStatus(context.Background(), id, entity.OrderStatusShipped)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCountByCustomerID(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE customer_id = $1`)).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	total, err := NewOrderRepository(mock, zap.NewNop()).CountByCustomerID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicate(t *testing.T) {
	mock := newMock(t)
	anyArgs := make([]any, 7)
	for i := range anyArgs {
		anyArgs[i] = pgxmock.AnyArg()
	}
	mock.ExpectExec("INSERT INTO users").
		WithArgs(anyArgs...).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	user := &entity.User{Base: entity.Base{ID: uuid.New()}, Email: "a@b.co", Role: entity.RoleSales, IsActive: true}
	err := NewUserRepository(mock, zap.NewNop()).Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestProductUpdatePriceOutOfRange(t *testing.T) {
	mock := newMock(t)
	id := uuid.New()
	mock.ExpectExec("UPDATE products SET current_price").
		WithArgs(id, pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgNumericOutOfRange, Message: "numeric field overflow"})

	err := NewProductRepository(mock, zap.NewNop()).UpdatePrice(context.Background(), id, decimal.RequireFromString("12345678901.00"))
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapPgErrorPassesThrough(t *testing.T) {
	plain := errors.New("connection reset")
	assert.Same(t, plain, mapPgError(plain))

	other := &pgconn.PgError{Code: "40001"}
	assert.Equal(t, error(other), mapPgError(other))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%sham%", containsPattern("sham"))
	assert.Equal(t, `%50\% off%`, containsPattern("50% off"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\d%`, containsPattern(`c:\d`))
}
