package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"kyc-service/internal/data/entity"
	"kyc-service/internal/data/repository"
	"kyc-service/internal/dto/request"
	"kyc-service/internal/policy"
	"kyc-service/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedCustomer(t *testing.T, repo *repository.Repository, withDocument bool) *policy.CustomerActor {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "irrelevant",
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}
	profile := &entity.Customer{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:        user.ID,
		Phone:         "0811111111",
		AccountStatus: entity.AccountStatusActive,
	}
	if withDocument {
		ref := "kyc_files/" + user.ID.String() + "/id-card.png"
		profile.KYCFile = &ref
	}
	require.NoError(t, repo.Provision.CreateCustomer(context.Background(), user, profile))
	return &policy.CustomerActor{User: user, Profile: profile}
}

func seedAdmin(t *testing.T, repo *repository.Repository) *policy.AdminActor {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "irrelevant",
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	profile := &entity.Admin{
		BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:       user.ID,
		EmployeeID:   "EMP-" + uuid.NewString()[:8],
		Department:   "compliance",
		LastActivity: now,
	}
	require.NoError(t, repo.Provision.CreateAdmin(context.Background(), user, profile))
	return &policy.AdminActor{User: user, Profile: profile}
}

func seedAuditor(t *testing.T, repo *repository.Repository) *policy.AuditorActor {
	t.Helper()
	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "irrelevant",
		Role:         entity.RoleAuditor,
		IsActive:     true,
	}
	profile := &entity.Auditor{
		BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		UserID:      user.ID,
		AuditorID:   "AUD-" + uuid.NewString()[:8],
		AccessScope: "verifications",
	}
	require.NoError(t, repo.Provision.CreateAuditor(context.Background(), user, profile))
	return &policy.AuditorActor{User: user, Profile: profile}
}

func TestSubmitVerification(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	customer := seedCustomer(t, repo, true)

	resp, err := svc.Submit(context.Background(), customer)
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationStatusPending, resp.Status)
	assert.Equal(t, customer.Profile.ID.String(), resp.CustomerID)
	assert.Nil(t, resp.AdminID)
	assert.Nil(t, resp.DecidedAt)
}

func TestSubmitWithoutDocument(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	customer := seedCustomer(t, repo, false)

	_, err := svc.Submit(context.Background(), customer)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestSubmitDuplicatePending(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	customer := seedCustomer(t, repo, true)

	_, err := svc.Submit(context.Background(), customer)
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), customer)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.CodeOf(err))
}

func TestSubmitByNonCustomer(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	admin := seedAdmin(t, repo)

	_, err := svc.Submit(context.Background(), admin)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAuthorization, apperrors.CodeOf(err))
}

func TestApproveVerification(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	customer := seedCustomer(t, repo, true)
	admin := seedAdmin(t, repo)

	submitted, err := svc.Submit(context.Background(), customer)
	require.NoError(t, err)

	decided, err := svc.Approve(context.Background(), admin, submitted.ID, &request.ApproveVerificationRequest{Remarks: "documents check out"})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationStatusApproved, decided.Status)
	require.NotNil(t, decided.AdminID)
	assert.Equal(t, admin.Profile.ID.String(), *decided.AdminID)
	assert.NotNil(t, decided.DecidedAt)

	// Side effects land with the decision: admin counter and the
	// customer's verified projection.
	updatedAdmin, err := repo.Admin.FindByID(context.Background(), admin.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updatedAdmin.VerifiedCount)

	updatedCustomer, err := repo.Customer.FindByID(context.Background(), customer.Profile.ID)
	require.NoError(t, err)
	assert.True(t, updatedCustomer.IsVerified)
	assert.Equal(t, entity.AccountStatusActive, updatedCustomer.AccountStatus)
}

func TestApproveAlreadyDecided(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	customer := seedCustomer(t, repo, true)
	admin := seedAdmin(t, repo)

	submitted, err := svc.Submit(context.Background(), customer)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), admin, submitted.ID, nil)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), admin, submitted.ID, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidState, apperrors.CodeOf(err))

	_, err = svc.Reject(context.Background(), admin, submitted.ID, &request.RejectVerificationRequest{Remarks: "too late"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidState, apperrors.CodeOf(err))

	// The counter moved exactly once.
	updatedAdmin, err := repo.Admin.FindByID(context.Background(), admin.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updatedAdmin.VerifiedCount)
}

func TestRejectRequiresRemarks(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	customer := seedCustomer(t, repo, true)
	admin := seedAdmin(t, repo)

	submitted, err := svc.Submit(context.Background(), customer)
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), admin, submitted.ID, &request.RejectVerificationRequest{Remarks: "   "})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "remarks")

	// Still pending after the failed rejection.
	got, err := svc.Get(context.Background(), admin, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationStatusPending, got.Status)
}

func TestRejectThenResubmit(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	customer := seedCustomer(t, repo, true)
	admin := seedAdmin(t, repo)

	first, err := svc.Submit(context.Background(), customer)
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), admin, first.ID, &request.RejectVerificationRequest{Remarks: "blurry document"})
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationStatusRejected, rejected.Status)
	require.NotNil(t, rejected.Remarks)
	assert.Equal(t, "blurry document", *rejected.Remarks)

	// Rejection never increments the approval counter.
	updatedAdmin, err := repo.Admin.FindByID(context.Background(), admin.Profile.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updatedAdmin.VerifiedCount)

	// A rejected record does not block a fresh submission.
	second, err := svc.Submit(context.Background(), customer)
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationStatusPending, second.Status)
	assert.NotEqual(t, first.ID, second.ID)

	// The terminal record stays in the audit history untouched.
	old, err := svc.Get(context.Background(), admin, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationStatusRejected, old.Status)
	assert.Equal(t, "blurry document", *old.Remarks)
}

func TestCustomerCannotDecide(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	customer := seedCustomer(t, repo, true)

	submitted, err := svc.Submit(context.Background(), customer)
	require.NoError(t, err)

	// Ownership grants no decision rights, not even on one's own record.
	_, err = svc.Approve(context.Background(), customer, submitted.ID, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAuthorization, apperrors.CodeOf(err))

	auditor := seedAuditor(t, repo)
	_, err = svc.Reject(context.Background(), auditor, submitted.ID, &request.RejectVerificationRequest{Remarks: "no"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAuthorization, apperrors.CodeOf(err))
}

func TestCustomerCannotReadOthers(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	owner := seedCustomer(t, repo, true)
	other := seedCustomer(t, repo, true)

	submitted, err := svc.Submit(context.Background(), owner)
	require.NoError(t, err)

	// Denial surfaces as not-found so existence is not leaked.
	_, err = svc.Get(context.Background(), other, submitted.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.CodeOf(err))

	got, err := svc.Get(context.Background(), owner, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, submitted.ID, got.ID)
}

func TestConcurrentApprovalsSingleWinner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	customer := seedCustomer(t, repo, true)

	submitted, err := svc.Submit(context.Background(), customer)
	require.NoError(t, err)

	const deciders = 8
	admins := make([]*policy.AdminActor, deciders)
	for i := range admins {
		admins[i] = seedAdmin(t, repo)
	}

	var wg sync.WaitGroup
	errs := make([]error, deciders)
	for i := 0; i < deciders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Approve(context.Background(), admins[i], submitted.ID, nil)
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		losses++
		assert.Equal(t, apperrors.CodeInvalidState, apperrors.CodeOf(err))
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, deciders-1, losses)

	// Exactly one admin got credit.
	var credited int64
	for _, a := range admins {
		updated, err := repo.Admin.FindByID(context.Background(), a.Profile.ID)
		require.NoError(t, err)
		credited += updated.VerifiedCount
	}
	assert.Equal(t, int64(1), credited)
}

func TestListVerifications(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	admin := seedAdmin(t, repo)
	first := seedCustomer(t, repo, true)
	second := seedCustomer(t, repo, true)

	_, err := svc.Submit(context.Background(), first)
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), second)
	require.NoError(t, err)

	all, err := svc.List(context.Background(), admin, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, all.Data, 2)

	// A customer only sees their own history.
	own, err := svc.List(context.Background(), first, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, own.Data, 1)
	assert.Equal(t, first.Profile.ID.String(), own.Data[0].CustomerID)
}

func TestAuditorListRecordsAuditDate(t *testing.T) {
	repo := newFakeRepository()
	svc := NewVerificationService(repo, zap.NewNop())
	auditor := seedAuditor(t, repo)
	customer := seedCustomer(t, repo, true)

	_, err := svc.Submit(context.Background(), customer)
	require.NoError(t, err)

	require.Nil(t, auditor.Profile.LastAuditDate)

	_, err = svc.List(context.Background(), auditor, &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)

	updated, err := repo.Auditor.FindByID(context.Background(), auditor.Profile.ID)
	require.NoError(t, err)
	assert.NotNil(t, updated.LastAuditDate)
}
