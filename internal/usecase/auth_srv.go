package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"beauty-orders/internal/data/entity"
	"beauty-orders/internal/data/repository"
	"beauty-orders/internal/dto/request"
	"beauty-orders/internal/dto/response"
	"beauty-orders/pkg/metrics"
	"beauty-orders/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Me(ctx context.Context) (*response.UserResponse, error)
	Logout(ctx context.Context) error
}

type authService struct {
	repo *repository.Repository
	jwt  *utils.JWTManager
	log  *zap.Logger
	now  func() time.Time
}

func NewAuthService(repo *repository.Repository, jwt *utils.JWTManager, log *zap.Logger) AuthService {
	return &authService{
		repo: repo,
		jwt:  jwt,
		log:  log.With(zap.String("service", "auth")),
		now:  time.Now,
	}
}

// Register creates a user. The first account on an empty database is always
// an admin; after that only an authenticated admin may create admins.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	role := entity.RoleSales
	if req.Role != nil {
		role = entity.UserRole(*req.Role)
		if !role.IsValid() {
			return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, *req.Role)
		}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
	}

	err = s.repo.Tx.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.repo.User.FindByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("%w: email already registered", ErrValidation)
		}

		total, err := s.repo.User.CountAll(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}

		switch {
		case total == 0:
			role = entity.RoleAdmin
		case role == entity.RoleAdmin:
			callerRole, _ := utils.GetRoleFromContext(ctx)
			if callerRole != string(entity.RoleAdmin) {
				return fmt.Errorf("%w: only admins can create admin users", ErrForbidden)
			}
		}
		user.Role = role

		if err := s.repo.User.Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("%w: email already registered", ErrValidation)
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Registration failed", zap.Error(err), zap.String("email", email))
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		metrics.RecordLogin(false)
		s.log.Warn("Invalid login attempt", zap.String("email", email))
		return nil, fmt.Errorf("%w: incorrect email or password", ErrUnauthorized)
	}

	if !user.IsActive {
		metrics.RecordLogin(false)
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("%w: account is deactivated", ErrForbidden)
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	metrics.RecordLogin(true)
	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	resp := response.AuthToResponse(user, token, expiresAt)
	return &resp, nil
}

func (s *authService) Me(ctx context.Context) (*response.UserResponse, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: no authenticated user", ErrUnauthorized)
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// Logout only records the event; tokens expire on their own.
func (s *authService) Logout(ctx context.Context) error {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: no authenticated user", ErrUnauthorized)
	}

	s.log.Info("User logged out", zap.String("user_id", userID.String()))
	return nil
}
