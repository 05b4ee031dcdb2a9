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

type AdminService interface {
	Get(ctx context.Context, actor policy.Actor, adminID string) (*response.AdminResponse, error)
	List(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AdminResponse], error)
}

type adminService struct {
	adminRepo repository.AdminRepository
	log       *zap.Logger
}

func NewAdminService(adminRepo repository.AdminRepository, log *zap.Logger) AdminService {
	return &adminService{
		adminRepo: adminRepo,
		log:       log,
	}
}

func (as *adminService) Get(ctx context.Context, actor policy.Actor, adminID string) (*response.AdminResponse, error) {
	id, err := uuid.Parse(adminID)
	if err != nil {
		return nil, apperrors.Validation("invalid admin ID")
	}

	admin, err := as.adminRepo.FindByID(ctx, id)
	if err != nil {
		as.log.Error("Failed to find admin", zap.Error(err), zap.String("admin_id", adminID))
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if admin == nil {
		return nil, apperrors.NotFound("admin not found")
	}

	if !policy.Can(actor, policy.ActionRead, policy.Resource{Kind: policy.ResourceAdmin, OwnerID: admin.UserID}) {
		return nil, apperrors.NotFound("admin not found")
	}

	resp := response.AdminToResponse(admin)
	return &resp, nil
}

func (as *adminService) List(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AdminResponse], error) {
	if !policy.Can(actor, policy.ActionList, policy.Resource{Kind: policy.ResourceAdmin}) {
		return nil, apperrors.Authorization("not permitted")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}

	admins, err := as.adminRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		as.log.Error("Failed to list admins", zap.Error(err))
		return nil, fmt.Errorf("list admins: %w", err)
	}

	total, err := as.adminRepo.CountAll(ctx)
	if err != nil {
		as.log.Error("Failed to count admins", zap.Error(err))
		return nil, fmt.Errorf("count admins: %w", err)
	}

	items := make([]response.AdminResponse, len(admins))
	for i, a := range admins {
		items[i] = response.AdminToResponse(a)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}
