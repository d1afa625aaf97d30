package usecase

import (
	"context"
	"testing"

	"beauty-orders/internal/data/entity"
	"beauty-orders/internal/dto/request"
	"beauty-orders/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(f *fixture) (AuthService, *utils.JWTManager) {
	jwt := utils.NewJWTManager(f.config.JWT, f.config.App.Name)
	return NewAuthService(f.repo, jwt, f.log), jwt
}

func ptr[T any](v T) *T { return &v }

func TestRegisterFirstUserBecomesAdmin(t *testing.T) {
	f := newFixture()
	svc, _ := newAuth(f)

	first, err := svc.Register(t.Context(), &request.RegisterRequest{
		Email:    " Owner@Example.com ",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, first.Role)
	assert.Equal(t, "owner@example.com", first.Email)
	assert.True(t, first.IsActive)

	second, err := svc.Register(t.Context(), &request.RegisterRequest{
		Email:    "sales@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSales, second.Role)

	stored := f.store.users[uuid.MustParse(second.ID)]
	assert.NotEqual(t, "supersecret", stored.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("supersecret", stored.PasswordHash))
}

func TestRegisterAdminNeedsAdminCaller(t *testing.T) {
	f := newFixture()
	admin := f.addUser("owner@example.com", "supersecret", entity.RoleAdmin, true)
	svc, _ := newAuth(f)

	req := &request.RegisterRequest{Email: "second@example.com", Password: "supersecret", Role: ptr("admin")}

	_, err := svc.Register(t.Context(), req)
	assert.ErrorIs(t, err, ErrForbidden)

	salesCtx := utils.SetUserContext(t.Context(), uuid.New(), string(entity.RoleSales))
	_, err = svc.Register(salesCtx, req)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Len(t, f.store.users, 1)

	adminCtx := utils.SetUserContext(t.Context(), admin.ID, string(entity.RoleAdmin))
	created, err := svc.Register(adminCtx, req)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, created.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	f.addUser("owner@example.com", "supersecret", entity.RoleAdmin, true)
	svc, _ := newAuth(f)

	_, err := svc.Register(t.Context(), &request.RegisterRequest{Email: "OWNER@example.com", Password: "supersecret"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	f := newFixture()
	active := f.addUser("sales@example.com", "supersecret", entity.RoleSales, true)
	f.addUser("gone@example.com", "supersecret", entity.RoleSales, false)
	svc, jwt := newAuth(f)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"wrong password", "sales@example.com", "not-it", ErrUnauthorized},
		{"unknown email", "nobody@example.com", "supersecret", ErrUnauthorized},
		{"deactivated", "gone@example.com", "supersecret", ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(t.Context(), &request.LoginRequest{Email: tt.email, Password: tt.password})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	resp, err := svc.Login(t.Context(), &request.LoginRequest{Email: "sales@example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, active.ID.String(), resp.User.ID)

	claims, err := jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(entity.RoleSales), claims.Role)
	assert.Equal(t, active.ID.String(), claims.Subject)
}

func TestMeAndLogout(t *testing.T) {
	f := newFixture()
	user := f.addUser("sales@example.com", "supersecret", entity.RoleSales, true)
	svc, _ := newAuth(f)

	_, err := svc.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, svc.Logout(context.Background()), ErrUnauthorized)

	ctx := utils.SetUserContext(t.Context(), user.ID, string(user.Role))
	me, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sales@example.com", me.Email)
	assert.NoError(t, svc.Logout(ctx))

	ghost := utils.SetUserContext(t.Context(), uuid.New(), "sales")
	_, err = svc.Me(ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}
