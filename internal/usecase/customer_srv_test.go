package usecase

import (
	"testing"

	"beauty-orders/internal/data/entity"
	"beauty-orders/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCustomer(t *testing.T) {
	f := newFixture()
	shampoo := f.addProduct("Professional Shampoo", "SHAMP-001", "15.99", 7, "")
	buyer := f.addCustomer("Grand Hotel", "grand@example.com", entity.CustomerTypeHotel)
	idle := f.addCustomer("Corner Pharmacy", "corner@example.com", entity.CustomerTypePharmacy)
	f.addOrder(buyer.ID, entity.OrderStatusCancelled, line{shampoo, 1})
	svc := NewCustomerService(f.repo, f.log)

	assert.ErrorIs(t, svc.DeleteCustomer(t.Context(), buyer.ID.String()), ErrValidation)
	assert.Contains(t, f.store.customers, buyer.ID)

	require.NoError(t, svc.DeleteCustomer(t.Context(), idle.ID.String()))
	assert.NotContains(t, f.store.customers, idle.ID)

	assert.ErrorIs(t, svc.DeleteCustomer(t.Context(), uuid.NewString()), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteCustomer(t.Context(), "42"), ErrValidation)
}

func TestCreateCustomer(t *testing.T) {
	f := newFixture()
	f.addCustomer("Grand Hotel", "grand@example.com", entity.CustomerTypeHotel)
	svc := NewCustomerService(f.repo, f.log)

	_, err := svc.CreateCustomer(t.Context(), &request.CustomerRequest{
		Name:         "Another Hotel",
		CustomerType: "hotel",
		Email:        "GRAND@example.com",
	})
	assert.ErrorIs(t, err, ErrValidation)

	created, err := svc.CreateCustomer(t.Context(), &request.CustomerRequest{
		Name:         "Salon Bella",
		CustomerType: "hairdresser",
		Email:        "bella@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CustomerTypeHairdresser, created.CustomerType)
	assert.Len(t, f.store.customers, 2)
}

func TestUpdateCustomerEmailTaken(t *testing.T) {
	f := newFixture()
	f.addCustomer("Grand Hotel", "grand@example.com", entity.CustomerTypeHotel)
	bella := f.addCustomer("Salon Bella", "bella@example.com", entity.CustomerTypeHairdresser)
	svc := NewCustomerService(f.repo, f.log)

	taken := "grand@example.com"
	_, err := svc.UpdateCustomer(t.Context(), bella.ID.String(), &request.CustomerUpdateRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrValidation)

	phone := "+49 30 1234"
	updated, err := svc.UpdateCustomer(t.Context(), bella.ID.String(), &request.CustomerUpdateRequest{Phone: &phone})
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	assert.Equal(t, "bella@example.com", updated.Email)
}

func TestGetCustomerStats(t *testing.T) {
	f := newFixture()
	shampoo := f.addProduct("Professional Shampoo", "SHAMP-001", "15.99", 50, "")
	gel := f.addProduct("Hair Gel", "GEL-001", "10.00", 50, "")
	bella := f.addCustomer("Salon Bella", "bella@example.com", entity.CustomerTypeHairdresser)
	f.addOrder(bella.ID, entity.OrderStatusDelivered, line{shampoo, 2}, line{gel, 1})
	f.addOrder(bella.ID, entity.OrderStatusPending, line{gel, 1})
	f.addOrder(bella.ID, entity.OrderStatusCancelled, line{gel, 9})
	svc := NewCustomerService(f.repo, f.log)

	stats, err := svc.GetCustomerStats(t.Context(), bella.ID.String())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.TotalOrders)
	assert.Equal(t, "51.98", stats.TotalSpent.StringFixed(2))
	assert.Equal(t, "25.99", stats.AverageOrder.StringFixed(2))
	require.Len(t, stats.TopProducts, 2)
	assert.Equal(t, "Hair Gel", stats.TopProducts[0].Name)
	assert.Equal(t, int64(2), stats.TopProducts[0].Quantity)
}

func TestGetCustomerStatsWithoutOrders(t *testing.T) {
	f := newFixture()
	bella := f.addCustomer("Salon Bella", "bella@example.com", entity.CustomerTypeHairdresser)
	svc := NewCustomerService(f.repo, f.log)

	stats, err := svc.GetCustomerStats(t.Context(), bella.ID.String())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.AverageOrder.IsZero())
	assert.Empty(t, stats.TopProducts)

	_, err = svc.GetCustomerStats(t.Context(), uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCustomersByType(t *testing.T) {
	f := newFixture()
	f.addCustomer("Grand Hotel", "grand@example.com", entity.CustomerTypeHotel)
	f.addCustomer("Salon Bella", "bella@example.com", entity.CustomerTypeHairdresser)
	f.addCustomer("Salon Nord", "nord@example.com", entity.CustomerTypeHairdresser)
	svc := NewCustomerService(f.repo, f.log)

	kind := "hairdresser"
	got, err := svc.GetCustomers(t.Context(), &request.PaginatedRequest{Page: 1, PerPage: 1}, &kind)
	require.NoError(t, err)
	assert.Len(t, got.Data, 1)
	assert.Equal(t, int64(2), got.Pagination.Total)
	assert.Equal(t, 2, got.Pagination.TotalPages)

	unknown := "spa"
	_, err = svc.GetCustomers(t.Context(), &request.PaginatedRequest{Page: 1, PerPage: 10}, &unknown)
	assert.ErrorIs(t, err, ErrValidation)

	byType, err := svc.GetCustomerStatsByType(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []entity.CustomerType{"hairdresser", "hotel"},
		[]entity.CustomerType{byType[0].CustomerType, byType[1].CustomerType})
	assert.Equal(t, int64(2), byType[0].Count)
}

func TestSearchCustomers(t *testing.T) {
	f := newFixture()
	f.addCustomer("Grand Hotel", "grand@example.com", entity.CustomerTypeHotel)
	f.addCustomer("Salon Bella", "bella@example.com", entity.CustomerTypeHairdresser)
	svc := NewCustomerService(f.repo, f.log)

	found, err := svc.SearchCustomers(t.Context(), "BELLA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Salon Bella", found[0].Name)
}
