// Package v1 holds the authorization contract shared by every context that
// gates a mutation on the policy engine.
package v1

// Actor is the authenticated identity derived from a verified token.
type Actor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Operation string

const (
	OperationRead   Operation = "read"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

type ResourceType string

const (
	ResourcePost ResourceType = "post"
	ResourceUser ResourceType = "user"
)

// Resource is the target of an operation. OwnerID is the post author or, for
// user records, the user itself.
type Resource struct {
	Type    ResourceType `json:"type"`
	ID      string       `json:"id"`
	OwnerID string       `json:"owner_id"`
}

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

// Decision is the ephemeral result of a policy evaluation. It is never persisted.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason"`
}
