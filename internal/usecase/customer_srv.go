package usecase

import (
	"context"
	"fmt"
	"time"

	"kyc-service/internal/data/repository"
	"kyc-service/internal/dto/request"
	"kyc-service/internal/dto/response"
	"kyc-service/internal/policy"
	"kyc-service/pkg/apperrors"
	"kyc-service/pkg/storage"
	"kyc-service/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	Get(ctx context.Context, actor policy.Actor, customerID string) (*response.CustomerResponse, error)
	List(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	Update(ctx context.Context, actor policy.Actor, customerID string, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error)
	UploadKYCDocument(ctx context.Context, actor policy.Actor, req *request.UploadKYCDocumentRequest) (*response.CustomerResponse, error)
}

type customerService struct {
	repo *repository.Repository
	docs storage.DocumentStore
	log  *zap.Logger
}

func NewCustomerService(repo *repository.Repository, docs storage.DocumentStore, log *zap.Logger) CustomerService {
	return &customerService{
		repo: repo,
		docs: docs,
		log:  log,
	}
}

func (cs *customerService) Get(ctx context.Context, actor policy.Actor, customerID string) (*response.CustomerResponse, error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, apperrors.Validation("invalid customer ID")
	}

	customer, err := cs.repo.Customer.FindByID(ctx, id)
	if err != nil {
		cs.log.Error("Failed to find customer", zap.Error(err), zap.String("customer_id", customerID))
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, apperrors.NotFound("customer not found")
	}

	// NotFound for actors without read rights, so existence is not
	// leaked to other customers.
	if !policy.Can(actor, policy.ActionRead, policy.Resource{Kind: policy.ResourceCustomer, OwnerID: customer.UserID}) {
		return nil, apperrors.NotFound("customer not found")
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

// List returns all customers for admins, or the actor's own profile
// for customers.
func (cs *customerService) List(ctx context.Context, actor policy.Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}

	if policy.Can(actor, policy.ActionList, policy.Resource{Kind: policy.ResourceCustomer}) {
		customers, err := cs.repo.Customer.FindAll(ctx, req.Limit(), req.Offset())
		if err != nil {
			cs.log.Error("Failed to list customers", zap.Error(err))
			return nil, fmt.Errorf("list customers: %w", err)
		}

		total, err := cs.repo.Customer.CountAll(ctx)
		if err != nil {
			cs.log.Error("Failed to count customers", zap.Error(err))
			return nil, fmt.Errorf("count customers: %w", err)
		}

		items := make([]response.CustomerResponse, len(customers))
		for i, c := range customers {
			items[i] = response.CustomerToResponse(c)
		}
		return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
	}

	// Customers see only themselves.
	if customer, ok := actor.(*policy.CustomerActor); ok {
		items := []response.CustomerResponse{response.CustomerToResponse(customer.Profile)}
		return response.NewPaginatedResponse(items, 1, req.PerPage, 1), nil
	}

	return nil, apperrors.Authorization("not permitted")
}

func (cs *customerService) Update(ctx context.Context, actor policy.Actor, customerID string, req *request.UpdateCustomerRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		cs.log.Warn("Customer update validation failed", zap.Any("errors", errs))
		return nil, apperrors.ValidationFields("validation failed", errs)
	}

	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, apperrors.Validation("invalid customer ID")
	}

	customer, err := cs.repo.Customer.FindByID(ctx, id)
	if err != nil {
		cs.log.Error("Failed to find customer for update", zap.Error(err), zap.String("customer_id", customerID))
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if customer == nil {
		return nil, apperrors.NotFound("customer not found")
	}

	if !policy.Can(actor, policy.ActionUpdate, policy.Resource{Kind: policy.ResourceCustomer, OwnerID: customer.UserID}) {
		return nil, apperrors.NotFound("customer not found")
	}

	customer.Address = req.Address
	customer.Phone = req.Phone
	customer.UpdatedAt = time.Now()

	if err := cs.repo.Customer.Update(ctx, customer); err != nil {
		cs.log.Error("Failed to update customer", zap.Error(err), zap.String("customer_id", customerID))
		return nil, err
	}

	resp := response.CustomerToResponse(customer)
	return &resp, nil
}

// UploadKYCDocument stores an inline base64 document and records its
// reference on the actor's own profile.
func (cs *customerService) UploadKYCDocument(ctx context.Context, actor policy.Actor, req *request.UploadKYCDocumentRequest) (*response.CustomerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		cs.log.Warn("KYC upload validation failed", zap.Any("errors", errs))
		return nil, apperrors.ValidationFields("validation failed", errs)
	}

	customer, ok := actor.(*policy.CustomerActor)
	if !ok {
		return nil, apperrors.Authorization("only customers can upload KYC documents")
	}

	reference, err := cs.docs.SaveBase64(customer.UserID(), req.Filename, req.Payload)
	if err != nil {
		cs.log.Error("Failed to store KYC document",
			zap.Error(err),
			zap.String("user_id", customer.UserID().String()),
		)
		return nil, apperrors.Wrap(apperrors.CodeValidation, "could not store document", err)
	}

	if err := cs.repo.Customer.UpdateKYCFile(ctx, customer.Profile.ID, reference); err != nil {
		cs.log.Error("Failed to record KYC reference",
			zap.Error(err),
			zap.String("customer_id", customer.Profile.ID.String()),
		)
		return nil, err
	}

	updated := *customer.Profile
	updated.KYCFile = &reference
	updated.UpdatedAt = time.Now()

	cs.log.Info("KYC document attached",
		zap.String("customer_id", customer.Profile.ID.String()),
		zap.String("reference", reference),
	)

	resp := response.CustomerToResponse(&updated)
	return &resp, nil
}
