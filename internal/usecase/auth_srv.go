package usecase

import (
	"context"
	"fmt"
	"time"

	"kyc-service/internal/data/entity"
	"kyc-service/internal/data/repository"
	"kyc-service/internal/dto/request"
	"kyc-service/internal/dto/response"
	"kyc-service/pkg/apperrors"
	"kyc-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Refresh(ctx context.Context, req *request.RefreshRequest) (*response.TokenPairResponse, error)
}

type authService struct {
	repo   *repository.Repository
	tokens *utils.TokenManager
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, tokens *utils.TokenManager, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		log:    log,
	}
}

// Register is the only anonymous operation: it provisions the user and
// the profile matching its role in one transaction.
func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperrors.ValidationFields("validation failed", errs)
	}

	// 2. Hash password; plaintext is never persisted or logged
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Build user entity with explicit timestamps
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Phone:        req.Phone,
		Role:         entity.UserRole(req.Role),
		IsActive:     true,
	}

	// 4. Provision user + profile atomically
	if err := s.provision(ctx, user, req, now); err != nil {
		return nil, err
	}

	// 5. Issue token pair
	pair, err := s.issueTokens(user)
	if err != nil {
		s.log.Error("Failed to issue tokens after register",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	return &response.AuthResponse{
		UserID:           user.ID.String(),
		Email:            user.Email,
		Role:             user.Role,
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}

func (s *authService) provision(ctx context.Context, user *entity.User, req *request.RegisterRequest, now time.Time) error {
	switch user.Role {
	case entity.RoleCustomer:
		if req.Customer == nil {
			return apperrors.Validation("customer profile is required for role customer")
		}
		profile := &entity.Customer{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			UserID:        user.ID,
			Address:       req.Customer.Address,
			Phone:         req.Customer.Phone,
			IsVerified:    false,
			AccountStatus: entity.AccountStatusActive,
		}
		return s.repo.Provision.CreateCustomer(ctx, user, profile)

	case entity.RoleAdmin:
		if req.Admin == nil {
			return apperrors.Validation("admin profile is required for role admin")
		}
		profile := &entity.Admin{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			UserID:       user.ID,
			EmployeeID:   req.Admin.EmployeeID,
			Department:   req.Admin.Department,
			LastActivity: now,
		}
		return s.repo.Provision.CreateAdmin(ctx, user, profile)

	case entity.RoleAuditor:
		if req.Auditor == nil {
			return apperrors.Validation("auditor profile is required for role auditor")
		}
		profile := &entity.Auditor{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			UserID:      user.ID,
			AuditorID:   req.Auditor.AuditorID,
			AccessScope: req.Auditor.AccessScope,
		}
		return s.repo.Provision.CreateAuditor(ctx, user, profile)
	}

	return apperrors.Newf(apperrors.CodeValidation, "unknown role %q", user.Role)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperrors.ValidationFields("validation failed", errs)
	}

	// 2. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Same message for unknown email and bad password.
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, apperrors.Authorization("invalid credentials")
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, apperrors.Authorization("invalid credentials")
	}

	// 4. Check if user is active
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, apperrors.Authorization("account is deactivated")
	}

	// 5. Issue token pair
	pair, err := s.issueTokens(user)
	if err != nil {
		s.log.Error("Failed to issue tokens", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return &response.AuthResponse{
		UserID:           user.ID.String(),
		Email:            user.Email,
		Role:             user.Role,
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}, nil
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *authService) Refresh(ctx context.Context, req *request.RefreshRequest) (*response.TokenPairResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperrors.ValidationFields("validation failed", errs)
	}

	claims, err := s.tokens.ParseToken(req.RefreshToken)
	if err != nil {
		s.log.Warn("Invalid refresh token", zap.Error(err))
		return nil, apperrors.Authorization("invalid or expired refresh token")
	}
	if claims.TokenType != utils.TokenTypeRefresh {
		return nil, apperrors.Authorization("invalid or expired refresh token")
	}

	userID, err := claims.SubjectID()
	if err != nil {
		return nil, apperrors.Authorization("invalid or expired refresh token")
	}

	// The account must still exist and be active.
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user for refresh", zap.Error(err))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.Authorization("account is not active")
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		s.log.Error("Failed to issue tokens on refresh", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	return pair, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) issueTokens(user *entity.User) (*response.TokenPairResponse, error) {
	access, accessExp, err := s.tokens.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	refresh, refreshExp, err := s.tokens.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &response.TokenPairResponse{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}
