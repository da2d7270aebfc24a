package entities

type Operation string

const (
	OperationRead   Operation = "read"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

type Reason string

const (
	ReasonAdminOverride   Reason = "admin_override"
	ReasonOwner           Reason = "owner"
	ReasonPublic          Reason = "public"
	ReasonAuthenticated   Reason = "authenticated"
	ReasonNotOwner        Reason = "not_owner"
	ReasonNotAdmin        Reason = "not_admin"
	ReasonUnauthenticated Reason = "unauthenticated"
)

// ResourcePost is public for reads; every other resource type is private.
const ResourcePost = "post"

// Decision is returned by the policy engine.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func Allow(reason Reason) Decision {
	return Decision{Allowed: true, Reason: reason}
}

func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}
