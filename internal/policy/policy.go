package policy

import (
	"github.com/google/uuid"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
	ActionSubmit Action = "submit"
	ActionDecide Action = "decide"
)

type ResourceKind string

const (
	ResourceUser         ResourceKind = "user"
	ResourceCustomer     ResourceKind = "customer"
	ResourceAdmin        ResourceKind = "admin"
	ResourceAuditor      ResourceKind = "auditor"
	ResourceVerification ResourceKind = "verification"
)

// Resource identifies the target of an action. OwnerID is the user id
// that owns the record (for verifications, the owning customer's user
// id); it is uuid.Nil for collection-level actions.
type Resource struct {
	Kind    ResourceKind
	OwnerID uuid.UUID
}

// Can is the pure authorization decision: stateless, side-effect-free,
// evaluated per request. Anything not explicitly granted is denied.
func Can(actor Actor, action Action, res Resource) bool {
	switch a := actor.(type) {
	case *CustomerActor:
		return customerCan(a, action, res)
	case *AdminActor:
		return adminCan(action, res)
	case *AuditorActor:
		return auditorCan(a, action, res)
	}
	return false
}

// customerCan: own identity and own profile only; may submit a
// verification request for themselves; never decides.
func customerCan(a *CustomerActor, action Action, res Resource) bool {
	if res.OwnerID != a.UserID() {
		return false
	}

	switch res.Kind {
	case ResourceUser, ResourceCustomer:
		return action == ActionRead || action == ActionUpdate
	case ResourceVerification:
		return action == ActionRead || action == ActionSubmit
	}
	return false
}

// adminCan: full access to customers and verifications, user
// management, read-only visibility of the auditor roster and fellow
// admins. Admins cannot act as customers (no submit) and cannot mutate
// auditor-owned fields.
func adminCan(action Action, res Resource) bool {
	switch res.Kind {
	case ResourceUser:
		return action == ActionRead || action == ActionList || action == ActionDelete
	case ResourceCustomer:
		return action == ActionRead || action == ActionList || action == ActionUpdate
	case ResourceVerification:
		return action == ActionRead || action == ActionList || action == ActionUpdate || action == ActionDecide
	case ResourceAdmin:
		return action == ActionRead || action == ActionList
	case ResourceAuditor:
		return action == ActionRead || action == ActionList
	}
	return false
}

// auditorCan: own profile plus read-only verification access for audit
// purposes; never approves or rejects.
func auditorCan(a *AuditorActor, action Action, res Resource) bool {
	switch res.Kind {
	case ResourceAuditor:
		return (action == ActionRead || action == ActionUpdate) && res.OwnerID == a.UserID()
	case ResourceUser:
		return action == ActionRead && res.OwnerID == a.UserID()
	case ResourceVerification:
		return action == ActionRead || action == ActionList
	}
	return false
}
