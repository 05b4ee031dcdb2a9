package usecase

import (
	"context"
	"sync"
	"time"

	"kyc-service/internal/data/entity"
	"kyc-service/internal/data/repository"
	"kyc-service/pkg/apperrors"

	"github.com/google/uuid"
)

// In-memory repository fakes mirroring the postgres behavior the
// services rely on: (nil, nil) for missing rows, ConflictError on
// uniqueness violations, and compare-and-swap decision semantics.

func newFakeRepository() *repository.Repository {
	users := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	customers := &fakeCustomerRepo{customers: map[uuid.UUID]*entity.Customer{}}
	admins := &fakeAdminRepo{admins: map[uuid.UUID]*entity.Admin{}}
	auditors := &fakeAuditorRepo{auditors: map[uuid.UUID]*entity.Auditor{}}
	verifications := &fakeVerificationRepo{
		records:   map[uuid.UUID]*entity.Verification{},
		admins:    admins,
		customers: customers,
	}

	return &repository.Repository{
		User:         users,
		Customer:     customers,
		Admin:        admins,
		Auditor:      auditors,
		Verification: verifications,
		Provision:    &fakeProvisionRepo{users: users, customers: customers, admins: admins, auditors: auditors},
	}
}

// ==================== USER ====================

type fakeUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(user)
}

func (f *fakeUserRepo) insert(user *entity.User) error {
	for _, u := range f.users {
		if u.Email == user.Email && u.DeletedAt == nil {
			return apperrors.Conflict("email already registered")
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, u := range f.users {
		if u.Email == email && u.DeletedAt == nil {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var all []*entity.User
	for _, u := range f.users {
		if u.DeletedAt == nil {
			cp := *u
			all = append(all, &cp)
		}
	}
	return paginate(all, limit, offset), nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var n int64
	for _, u := range f.users {
		if u.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.users[user.ID]
	if !ok || existing.DeletedAt != nil {
		return apperrors.NotFound("user not found")
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.users[id]
	if !ok || existing.DeletedAt != nil {
		return apperrors.NotFound("user not found")
	}
	now := time.Now()
	existing.DeletedAt = &now
	return nil
}

// ==================== CUSTOMER ====================

type fakeCustomerRepo struct {
	mu        sync.RWMutex
	customers map[uuid.UUID]*entity.Customer
}

func (f *fakeCustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(customer)
}

func (f *fakeCustomerRepo) insert(customer *entity.Customer) error {
	for _, c := range f.customers {
		if c.UserID == customer.UserID {
			return apperrors.Conflict("customer profile already exists")
		}
	}
	cp := *customer
	f.customers[customer.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Customer, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, c := range f.customers {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var all []*entity.Customer
	for _, c := range f.customers {
		cp := *c
		all = append(all, &cp)
	}
	return paginate(all, limit, offset), nil
}

func (f *fakeCustomerRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int64(len(f.customers)), nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, customer *entity.Customer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.customers[customer.ID]
	if !ok {
		return apperrors.NotFound("customer not found")
	}
	existing.Address = customer.Address
	existing.Phone = customer.Phone
	existing.UpdatedAt = customer.UpdatedAt
	return nil
}

func (f *fakeCustomerRepo) UpdateKYCFile(_ context.Context, id uuid.UUID, reference string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.customers[id]
	if !ok {
		return apperrors.NotFound("customer not found")
	}
	existing.KYCFile = &reference
	existing.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCustomerRepo) markVerified(id uuid.UUID, at time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.customers[id]; ok {
		c.IsVerified = true
		c.AccountStatus = entity.AccountStatusActive
		c.UpdatedAt = at
	}
}

// ==================== ADMIN ====================

type fakeAdminRepo struct {
	mu     sync.RWMutex
	admins map[uuid.UUID]*entity.Admin
}

func (f *fakeAdminRepo) Create(_ context.Context, admin *entity.Admin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(admin)
}

func (f *fakeAdminRepo) insert(admin *entity.Admin) error {
	for _, a := range f.admins {
		if a.EmployeeID == admin.EmployeeID {
			return apperrors.Conflict("employee id already in use")
		}
	}
	cp := *admin
	f.admins[admin.ID] = &cp
	return nil
}

func (f *fakeAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Admin, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	a, ok := f.admins[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Admin, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, a := range f.admins {
		if a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Admin, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var all []*entity.Admin
	for _, a := range f.admins {
		cp := *a
		all = append(all, &cp)
	}
	return paginate(all, limit, offset), nil
}

func (f *fakeAdminRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int64(len(f.admins)), nil
}

func (f *fakeAdminRepo) TouchActivity(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.admins[id]
	if !ok {
		return apperrors.NotFound("admin not found")
	}
	a.LastActivity = at
	return nil
}

func (f *fakeAdminRepo) recordDecision(id uuid.UUID, at time.Time, approved bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.admins[id]; ok {
		if approved {
			a.VerifiedCount++
		}
		a.LastActivity = at
	}
}

// ==================== AUDITOR ====================

type fakeAuditorRepo struct {
	mu       sync.RWMutex
	auditors map[uuid.UUID]*entity.Auditor
}

func (f *fakeAuditorRepo) Create(_ context.Context, auditor *entity.Auditor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insert(auditor)
}

func (f *fakeAuditorRepo) insert(auditor *entity.Auditor) error {
	for _, a := range f.auditors {
		if a.AuditorID == auditor.AuditorID {
			return apperrors.Conflict("auditor id already in use")
		}
	}
	cp := *auditor
	f.auditors[auditor.ID] = &cp
	return nil
}

func (f *fakeAuditorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Auditor, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	a, ok := f.auditors[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAuditorRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Auditor, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, a := range f.auditors {
		if a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAuditorRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Auditor, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var all []*entity.Auditor
	for _, a := range f.auditors {
		cp := *a
		all = append(all, &cp)
	}
	return paginate(all, limit, offset), nil
}

func (f *fakeAuditorRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return int64(len(f.auditors)), nil
}

func (f *fakeAuditorRepo) TouchAudit(_ context.Context, id uuid.UUID, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.auditors[id]
	if !ok {
		return apperrors.NotFound("auditor not found")
	}
	a.LastAuditDate = &at
	return nil
}

// ==================== VERIFICATION ====================

type fakeVerificationRepo struct {
	mu        sync.Mutex
	records   map[uuid.UUID]*entity.Verification
	admins    *fakeAdminRepo
	customers *fakeCustomerRepo
}

func (f *fakeVerificationRepo) CreatePending(_ context.Context, v *entity.Verification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.CustomerID == v.CustomerID && r.Status == entity.VerificationStatusPending {
			return apperrors.Conflict("a pending verification request already exists")
		}
	}
	cp := *v
	f.records[v.ID] = &cp
	return nil
}

func (f *fakeVerificationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Verification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeVerificationRepo) FindByCustomerID(_ context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Verification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*entity.Verification
	for _, r := range f.records {
		if r.CustomerID == customerID {
			cp := *r
			all = append(all, &cp)
		}
	}
	return paginate(all, limit, offset), nil
}

func (f *fakeVerificationRepo) FindLatestByCustomerID(_ context.Context, customerID uuid.UUID) (*entity.Verification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entity.Verification
	for _, r := range f.records {
		if r.CustomerID != customerID {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakeVerificationRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Verification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*entity.Verification
	for _, r := range f.records {
		cp := *r
		all = append(all, &cp)
	}
	return paginate(all, limit, offset), nil
}

func (f *fakeVerificationRepo) CountAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.records)), nil
}

// Approve mirrors the transactional compare-and-swap: under one lock
// the status is checked and flipped, so a concurrent second approval
// always observes the terminal state.
func (f *fakeVerificationRepo) Approve(_ context.Context, verificationID, adminID uuid.UUID, remarks *string, decidedAt time.Time) error {
	f.mu.Lock()
	r, ok := f.records[verificationID]
	if !ok {
		f.mu.Unlock()
		return apperrors.NotFound("verification not found")
	}
	if r.Status != entity.VerificationStatusPending {
		status := r.Status
		f.mu.Unlock()
		return apperrors.Newf(apperrors.CodeInvalidState, "verification is already %s", status)
	}
	r.Status = entity.VerificationStatusApproved
	r.AdminID = &adminID
	r.DecidedAt = &decidedAt
	r.Remarks = remarks
	customerID := r.CustomerID
	f.mu.Unlock()

	f.admins.recordDecision(adminID, decidedAt, true)
	f.customers.markVerified(customerID, decidedAt)
	return nil
}

func (f *fakeVerificationRepo) Reject(_ context.Context, verificationID, adminID uuid.UUID, remarks string, decidedAt time.Time) error {
	f.mu.Lock()
	r, ok := f.records[verificationID]
	if !ok {
		f.mu.Unlock()
		return apperrors.NotFound("verification not found")
	}
	if r.Status != entity.VerificationStatusPending {
		status := r.Status
		f.mu.Unlock()
		return apperrors.Newf(apperrors.CodeInvalidState, "verification is already %s", status)
	}
	r.Status = entity.VerificationStatusRejected
	r.AdminID = &adminID
	r.DecidedAt = &decidedAt
	r.Remarks = &remarks
	f.mu.Unlock()

	f.admins.recordDecision(adminID, decidedAt, false)
	return nil
}

// ==================== PROVISION ====================

type fakeProvisionRepo struct {
	users     *fakeUserRepo
	customers *fakeCustomerRepo
	admins    *fakeAdminRepo
	auditors  *fakeAuditorRepo
}

func (f *fakeProvisionRepo) CreateCustomer(ctx context.Context, user *entity.User, profile *entity.Customer) error {
	if err := f.users.Create(ctx, user); err != nil {
		return err
	}
	if err := f.customers.Create(ctx, profile); err != nil {
		f.rollbackUser(user.ID)
		return err
	}
	return nil
}

func (f *fakeProvisionRepo) CreateAdmin(ctx context.Context, user *entity.User, profile *entity.Admin) error {
	if err := f.users.Create(ctx, user); err != nil {
		return err
	}
	if err := f.admins.Create(ctx, profile); err != nil {
		f.rollbackUser(user.ID)
		return err
	}
	return nil
}

func (f *fakeProvisionRepo) CreateAuditor(ctx context.Context, user *entity.User, profile *entity.Auditor) error {
	if err := f.users.Create(ctx, user); err != nil {
		return err
	}
	if err := f.auditors.Create(ctx, profile); err != nil {
		f.rollbackUser(user.ID)
		return err
	}
	return nil
}

func (f *fakeProvisionRepo) rollbackUser(id uuid.UUID) {
	f.users.mu.Lock()
	defer f.users.mu.Unlock()
	delete(f.users.users, id)
}

// ==================== HELPERS ====================

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}
