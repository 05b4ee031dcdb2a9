package usecase

import (
	"context"
	"fmt"

	"kyc-service/internal/data/repository"
	"kyc-service/internal/dto/request"
	"kyc-service/internal/dto/response"
	"kyc-service/internal/policy"
	"kyc-service/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, actor policy.Actor) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	DeleteUser(ctx context.Context, actor policy.Actor, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

func (us *userService) GetProfile(ctx context.Context, actor policy.Actor) (*response.UserResponse, error) {
	if !policy.Can(actor, policy.ActionRead, policy.Resource{Kind: policy.ResourceUser, OwnerID: actor.UserID()}) {
		return nil, apperrors.Authorization("not permitted")
	}

	user, err := us.userRepo.FindByID(ctx, actor.UserID())
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", actor.UserID().String()))
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if !policy.Can(actor, policy.ActionList, policy.Resource{Kind: policy.ResourceUser}) {
		return nil, apperrors.Authorization("not permitted")
	}

	// Set defaults
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get users: %w", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("count users: %w", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

// DeleteUser soft-deletes the user. Past verification decisions keep
// their attribution through the SET NULL foreign key; the records
// themselves are never removed.
func (us *userService) DeleteUser(ctx context.Context, actor policy.Actor, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return apperrors.Validation("invalid user ID")
	}

	if !policy.Can(actor, policy.ActionDelete, policy.Resource{Kind: policy.ResourceUser, OwnerID: id}) {
		return apperrors.Authorization("not permitted")
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to get user for delete", zap.Error(err), zap.String("id", userID))
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	if err := us.userRepo.Delete(ctx, id); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("id", userID))
		return err
	}

	us.log.Info("User deleted",
		zap.String("user_id", id.String()),
		zap.String("email", user.Email),
		zap.String("deleted_by", actor.UserID().String()),
	)
	return nil
}
