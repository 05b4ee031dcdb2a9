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

type AuditorService interface {
	Get(ctx context.Context, actor policy.Actor, auditorID string) (*response.AuditorResponse, error)
	List(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AuditorResponse], error)
}

type auditorService struct {
	auditorRepo repository.AuditorRepository
	log         *zap.Logger
}

func NewAuditorService(auditorRepo repository.AuditorRepository, log *zap.Logger) AuditorService {
	return &auditorService{
		auditorRepo: auditorRepo,
		log:         log,
	}
}

func (as *auditorService) Get(ctx context.Context, actor policy.Actor, auditorID string) (*response.AuditorResponse, error) {
	id, err := uuid.Parse(auditorID)
	if err != nil {
		return nil, apperrors.Validation("invalid auditor ID")
	}

	auditor, err := as.auditorRepo.FindByID(ctx, id)
	if err != nil {
		as.log.Error("Failed to find auditor", zap.Error(err), zap.String("auditor_id", auditorID))
		return nil, fmt.Errorf("find auditor: %w", err)
	}
	if auditor == nil {
		return nil, apperrors.NotFound("auditor not found")
	}

	if !policy.Can(actor, policy.ActionRead, policy.Resource{Kind: policy.ResourceAuditor, OwnerID: auditor.UserID}) {
		return nil, apperrors.NotFound("auditor not found")
	}

	resp := response.AuditorToResponse(auditor)
	return &resp, nil
}

// List returns all auditors for admins; an auditor sees only their own
// profile.
func (as *auditorService) List(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AuditorResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}

	if policy.Can(actor, policy.ActionList, policy.Resource{Kind: policy.ResourceAuditor}) {
		auditors, err := as.auditorRepo.FindAll(ctx, req.Limit(), req.Offset())
		if err != nil {
			as.log.Error("Failed to list auditors", zap.Error(err))
			return nil, fmt.Errorf("list auditors: %w", err)
		}

		total, err := as.auditorRepo.CountAll(ctx)
		if err != nil {
			as.log.Error("Failed to count auditors", zap.Error(err))
			return nil, fmt.Errorf("count auditors: %w", err)
		}

		items := make([]response.AuditorResponse, len(auditors))
		for i, a := range auditors {
			items[i] = response.AuditorToResponse(a)
		}
		return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
	}

	if auditor, ok := actor.(*policy.AuditorActor); ok {
		items := []response.AuditorResponse{response.AuditorToResponse(auditor.Profile)}
		return response.NewPaginatedResponse(items, 1, req.PerPage, 1), nil
	}

	return nil, apperrors.Authorization("not permitted")
}
