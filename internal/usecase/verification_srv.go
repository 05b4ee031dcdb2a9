package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kyc-service/internal/data/entity"
	"kyc-service/internal/data/repository"
	"kyc-service/internal/dto/request"
	"kyc-service/internal/dto/response"
	"kyc-service/internal/policy"
	"kyc-service/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VerificationService runs the KYC decision workflow:
//
//	pending ──approve──▸ approved (terminal)
//	pending ──reject───▸ rejected (terminal)
//
// A customer re-submits after rejection by creating a fresh pending
// record; terminal records are kept unmodified for audit history.
type VerificationService interface {
	Submit(ctx context.Context, actor policy.Actor) (*response.VerificationResponse, error)
	Get(ctx context.Context, actor policy.Actor, verificationID string) (*response.VerificationResponse, error)
	List(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VerificationResponse], error)
	Approve(ctx context.Context, actor policy.Actor, verificationID string, req *request.ApproveVerificationRequest) (*response.VerificationResponse, error)
	Reject(ctx context.Context, actor policy.Actor, verificationID string, req *request.RejectVerificationRequest) (*response.VerificationResponse, error)
}

type verificationService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewVerificationService(repo *repository.Repository, log *zap.Logger) VerificationService {
	return &verificationService{
		repo: repo,
		log:  log,
	}
}

// Submit creates a new pending record for the acting customer.
// Preconditions: a KYC document reference must be attached, and no
// other pending record may exist for the same customer.
func (vs *verificationService) Submit(ctx context.Context, actor policy.Actor) (*response.VerificationResponse, error) {
	if !policy.Can(actor, policy.ActionSubmit, policy.Resource{Kind: policy.ResourceVerification, OwnerID: actor.UserID()}) {
		return nil, apperrors.Authorization("only customers can submit verification requests")
	}

	customer := actor.(*policy.CustomerActor)
	if !customer.Profile.HasKYCDocument() {
		return nil, apperrors.Validation("a KYC document must be uploaded before requesting verification")
	}

	v := &entity.Verification{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		CustomerID: customer.Profile.ID,
		Status:     entity.VerificationStatusPending,
	}

	// The at-most-one-pending invariant is enforced by the store; a
	// concurrent duplicate submission surfaces as ConflictError.
	if err := vs.repo.Verification.CreatePending(ctx, v); err != nil {
		return nil, err
	}

	vs.log.Info("Verification submitted",
		zap.String("verification_id", v.ID.String()),
		zap.String("customer_id", customer.Profile.ID.String()),
	)

	resp := response.VerificationToResponse(v)
	return &resp, nil
}

func (vs *verificationService) Get(ctx context.Context, actor policy.Actor, verificationID string) (*response.VerificationResponse, error) {
	id, err := uuid.Parse(verificationID)
	if err != nil {
		return nil, apperrors.Validation("invalid verification ID")
	}

	v, err := vs.repo.Verification.FindByID(ctx, id)
	if err != nil {
		vs.log.Error("Failed to find verification", zap.Error(err), zap.String("verification_id", verificationID))
		return nil, fmt.Errorf("find verification: %w", err)
	}
	if v == nil {
		return nil, apperrors.NotFound("verification not found")
	}

	if !vs.canRead(actor, v) {
		// Conflated with not-found so customers cannot probe for other
		// customers' records.
		return nil, apperrors.NotFound("verification not found")
	}

	resp := response.VerificationToResponse(v)
	return &resp, nil
}

// canRead resolves record-level visibility: customers only see their
// own records, admins and auditors see all.
func (vs *verificationService) canRead(actor policy.Actor, v *entity.Verification) bool {
	if customer, ok := actor.(*policy.CustomerActor); ok {
		if v.CustomerID != customer.Profile.ID {
			return false
		}
		return policy.Can(actor, policy.ActionRead, policy.Resource{Kind: policy.ResourceVerification, OwnerID: actor.UserID()})
	}
	return policy.Can(actor, policy.ActionRead, policy.Resource{Kind: policy.ResourceVerification})
}

func (vs *verificationService) List(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.VerificationResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}

	if policy.Can(actor, policy.ActionList, policy.Resource{Kind: policy.ResourceVerification}) {
		verifications, err := vs.repo.Verification.FindAll(ctx, req.Limit(), req.Offset())
		if err != nil {
			vs.log.Error("Failed to list verifications", zap.Error(err))
			return nil, fmt.Errorf("list verifications: %w", err)
		}

		total, err := vs.repo.Verification.CountAll(ctx)
		if err != nil {
			vs.log.Error("Failed to count verifications", zap.Error(err))
			return nil, fmt.Errorf("count verifications: %w", err)
		}

		// An auditor pulling the ledger is an audit action.
		if auditor, ok := actor.(*policy.AuditorActor); ok {
			if err := vs.repo.Auditor.TouchAudit(ctx, auditor.Profile.ID, time.Now()); err != nil {
				vs.log.Warn("Failed to record audit timestamp",
					zap.Error(err),
					zap.String("auditor_id", auditor.Profile.ID.String()),
				)
			}
		}

		items := make([]response.VerificationResponse, len(verifications))
		for i, v := range verifications {
			items[i] = response.VerificationToResponse(v)
		}
		return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
	}

	// Customers list their own submission history.
	if customer, ok := actor.(*policy.CustomerActor); ok {
		verifications, err := vs.repo.Verification.FindByCustomerID(ctx, customer.Profile.ID, req.Limit(), req.Offset())
		if err != nil {
			vs.log.Error("Failed to list own verifications", zap.Error(err))
			return nil, fmt.Errorf("list verifications: %w", err)
		}

		items := make([]response.VerificationResponse, len(verifications))
		for i, v := range verifications {
			items[i] = response.VerificationToResponse(v)
		}
		return response.NewPaginatedResponse(items, req.Page, req.PerPage, int64(len(items))), nil
	}

	return nil, apperrors.Authorization("not permitted")
}

// Approve transitions pending → approved. The decision timestamp, the
// admin's verified_count, and the customer's verified projection are
// all written in one transaction; of two concurrent approvals exactly
// one succeeds and the loser observes InvalidStateError.
func (vs *verificationService) Approve(ctx context.Context, actor policy.Actor, verificationID string, req *request.ApproveVerificationRequest) (*response.VerificationResponse, error) {
	admin, err := vs.requireDecider(actor)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(verificationID)
	if err != nil {
		return nil, apperrors.Validation("invalid verification ID")
	}

	var remarks *string
	if req != nil && strings.TrimSpace(req.Remarks) != "" {
		trimmed := strings.TrimSpace(req.Remarks)
		remarks = &trimmed
	}

	decidedAt := time.Now()
	if err := vs.repo.Verification.Approve(ctx, id, admin.Profile.ID, remarks, decidedAt); err != nil {
		return nil, err
	}

	vs.log.Info("Verification approved",
		zap.String("verification_id", id.String()),
		zap.String("admin_id", admin.Profile.ID.String()),
	)

	return vs.reload(ctx, id)
}

// Reject transitions pending → rejected. A rejection reason is
// mandatory; the admin's verified_count is not incremented.
func (vs *verificationService) Reject(ctx context.Context, actor policy.Actor, verificationID string, req *request.RejectVerificationRequest) (*response.VerificationResponse, error) {
	admin, err := vs.requireDecider(actor)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(verificationID)
	if err != nil {
		return nil, apperrors.Validation("invalid verification ID")
	}

	if req == nil || strings.TrimSpace(req.Remarks) == "" {
		return nil, apperrors.ValidationFields("validation failed", map[string]string{
			"remarks": "This field is required",
		})
	}

	decidedAt := time.Now()
	if err := vs.repo.Verification.Reject(ctx, id, admin.Profile.ID, strings.TrimSpace(req.Remarks), decidedAt); err != nil {
		return nil, err
	}

	vs.log.Info("Verification rejected",
		zap.String("verification_id", id.String()),
		zap.String("admin_id", admin.Profile.ID.String()),
	)

	return vs.reload(ctx, id)
}

// requireDecider enforces that only admin actors transition records;
// ownership never grants a customer decision rights on their own
// record.
func (vs *verificationService) requireDecider(actor policy.Actor) (*policy.AdminActor, error) {
	if !policy.Can(actor, policy.ActionDecide, policy.Resource{Kind: policy.ResourceVerification}) {
		return nil, apperrors.Authorization("only admins can decide verification requests")
	}

	admin, ok := actor.(*policy.AdminActor)
	if !ok {
		return nil, apperrors.Authorization("only admins can decide verification requests")
	}
	return admin, nil
}

func (vs *verificationService) reload(ctx context.Context, id uuid.UUID) (*response.VerificationResponse, error) {
	v, err := vs.repo.Verification.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload verification: %w", err)
	}
	if v == nil {
		return nil, apperrors.NotFound("verification not found")
	}

	resp := response.VerificationToResponse(v)
	return &resp, nil
}
