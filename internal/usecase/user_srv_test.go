package usecase

import (
	"testing"

	"beauty-orders/internal/data/entity"
	"beauty-orders/internal/dto/request"
	"beauty-orders/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUser(t *testing.T) {
	f := newFixture()
	admin := f.addUser("owner@example.com", "supersecret", entity.RoleAdmin, true)
	sales := f.addUser("sales@example.com", "supersecret", entity.RoleSales, true)
	svc := NewUserService(f.repo.User, f.log)
	ctx := utils.SetUserContext(t.Context(), admin.ID, string(entity.RoleAdmin))

	_, err := svc.UpdateUser(ctx, admin.ID.String(), &request.UpdateUserRequest{Role: ptr("sales")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateUser(ctx, admin.ID.String(), &request.UpdateUserRequest{IsActive: ptr(false)})
	assert.ErrorIs(t, err, ErrValidation)
	assert.True(t, f.store.users[admin.ID].IsActive)

	updated, err := svc.UpdateUser(ctx, sales.ID.String(), &request.UpdateUserRequest{
		Role:     ptr("admin"),
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, updated.Role)
	assert.False(t, updated.IsActive)
	assert.False(t, f.store.users[sales.ID].IsActive)

	_, err = svc.UpdateUser(ctx, uuid.NewString(), &request.UpdateUserRequest{IsActive: ptr(true)})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateUser(ctx, sales.ID.String(), &request.UpdateUserRequest{Role: ptr("owner")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetAllUsersPaginates(t *testing.T) {
	f := newFixture()
	f.addUser("a@example.com", "supersecret", entity.RoleAdmin, true)
	f.addUser("b@example.com", "supersecret", entity.RoleSales, true)
	f.addUser("c@example.com", "supersecret", entity.RoleSales, true)
	svc := NewUserService(f.repo.User, f.log)

	got, err := svc.GetAllUsers(t.Context(), &request.PaginatedRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "c@example.com", got.Data[0].Email)
	assert.Equal(t, int64(3), got.Pagination.Total)
	assert.Equal(t, 2, got.Pagination.TotalPages)
}
