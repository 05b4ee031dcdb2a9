package policy

import (
	"context"

	"kyc-service/internal/data/entity"
	"kyc-service/internal/data/repository"
	"kyc-service/pkg/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor is the authenticated entity behind a request, resolved to
// exactly one role variant. Resolution happens once per request from
// the user's role tag plus a profile lookup; a role-tagged user whose
// profile is missing fails resolution closed rather than falling back
// to any access level.
type Actor interface {
	UserID() uuid.UUID
	Role() entity.UserRole
	actor()
}

type CustomerActor struct {
	User    *entity.User
	Profile *entity.Customer
}

func (a *CustomerActor) UserID() uuid.UUID     { return a.User.ID }
func (a *CustomerActor) Role() entity.UserRole { return entity.RoleCustomer }
func (a *CustomerActor) actor()                {}

type AdminActor struct {
	User    *entity.User
	Profile *entity.Admin
}

func (a *AdminActor) UserID() uuid.UUID     { return a.User.ID }
func (a *AdminActor) Role() entity.UserRole { return entity.RoleAdmin }
func (a *AdminActor) actor()                {}

type AuditorActor struct {
	User    *entity.User
	Profile *entity.Auditor
}

func (a *AuditorActor) UserID() uuid.UUID     { return a.User.ID }
func (a *AuditorActor) Role() entity.UserRole { return entity.RoleAuditor }
func (a *AuditorActor) actor()                {}

// Resolver loads the user and its matching profile.
type Resolver struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewResolver(repo *repository.Repository, log *zap.Logger) *Resolver {
	return &Resolver{repo: repo, log: log}
}

func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (Actor, error) {
	user, err := r.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.Authorization("account is not active")
	}

	switch user.Role {
	case entity.RoleCustomer:
		profile, err := r.repo.Customer.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, r.missingProfile(user)
		}
		return &CustomerActor{User: user, Profile: profile}, nil

	case entity.RoleAdmin:
		profile, err := r.repo.Admin.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, r.missingProfile(user)
		}
		return &AdminActor{User: user, Profile: profile}, nil

	case entity.RoleAuditor:
		profile, err := r.repo.Auditor.FindByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if profile == nil {
			return nil, r.missingProfile(user)
		}
		return &AuditorActor{User: user, Profile: profile}, nil
	}

	r.log.Warn("Unknown role tag on user",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return nil, apperrors.Authorization("not permitted")
}

// missingProfile is the data-inconsistency edge: the role tag exists
// but the profile row does not. Deny, never escalate.
func (r *Resolver) missingProfile(user *entity.User) error {
	r.log.Error("Role tag without matching profile, denying access",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return apperrors.Authorization("not permitted")
}

type contextKey string

const actorKey contextKey = "actor"

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey).(Actor)
	return actor, ok
}
