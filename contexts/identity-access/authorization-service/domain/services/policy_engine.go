package services

import (
	"strings"

	"scribe/contexts/identity-access/authorization-service/domain/entities"
)

// PolicyEngine decides whether an actor may perform an operation on a resource.
// Rules, first match wins: admin override, then ownership, then deny.
// The zero value has an empty admin set.
type PolicyEngine struct {
	admins map[string]struct{}
}

func NewPolicyEngine(adminUsernames []string) PolicyEngine {
	admins := make(map[string]struct{}, len(adminUsernames))
	for _, name := range adminUsernames {
		name = strings.TrimSpace(name)
		if name != "" {
			admins[name] = struct{}{}
		}
	}
	return PolicyEngine{admins: admins}
}

// IsAdmin reports whether the actor belongs to the configured admin set.
func (p PolicyEngine) IsAdmin(actor entities.Actor) bool {
	if actor.Username == "" {
		return false
	}
	_, ok := p.admins[actor.Username]
	return ok
}

func (p PolicyEngine) Authorize(
	actor entities.Actor,
	operation entities.Operation,
	resource entities.Resource,
) entities.Decision {
	if operation == entities.OperationRead && resource.Type == entities.ResourcePost {
		return entities.Allow(entities.ReasonPublic)
	}
	if actor.ID == "" {
		return entities.Deny(entities.ReasonUnauthenticated)
	}

	switch operation {
	case entities.OperationCreate:
		return entities.Allow(entities.ReasonAuthenticated)
	case entities.OperationRead, entities.OperationUpdate, entities.OperationDelete:
	default:
		return entities.Deny(entities.ReasonNotOwner)
	}

	if p.IsAdmin(actor) {
		return entities.Allow(entities.ReasonAdminOverride)
	}
	if resource.OwnerID != "" && actor.ID == resource.OwnerID {
		return entities.Allow(entities.ReasonOwner)
	}
	return entities.Deny(entities.ReasonNotOwner)
}

// RequireAdmin gates admin-only listings.
func (p PolicyEngine) RequireAdmin(actor entities.Actor) entities.Decision {
	if actor.ID == "" {
		return entities.Deny(entities.ReasonUnauthenticated)
	}
	if p.IsAdmin(actor) {
		return entities.Allow(entities.ReasonAdminOverride)
	}
	return entities.Deny(entities.ReasonNotAdmin)
}
