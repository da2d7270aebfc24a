package queries

import (
	"log/slog"

	application "scribe/contexts/identity-access/authorization-service/application"
	"scribe/contexts/identity-access/authorization-service/domain/entities"
	"scribe/contexts/identity-access/authorization-service/domain/services"
	authzv1 "scribe/contracts/gen/authz/v1"
)

// AuthorizeUseCase exposes the policy engine to other contexts through the
// shared authz contract. It only adds logging around the pure decision.
type AuthorizeUseCase struct {
	Policy services.PolicyEngine
	Logger *slog.Logger
}

// Authorize evaluates one operation against one resource.
func (u AuthorizeUseCase) Authorize(
	actor authzv1.Actor,
	operation authzv1.Operation,
	resource authzv1.Resource,
) authzv1.Decision {
	decision := u.Policy.Authorize(
		toActor(actor),
		entities.Operation(operation),
		entities.Resource{
			Type:    string(resource.Type),
			ID:      resource.ID,
			OwnerID: resource.OwnerID,
		},
	)
	u.logDecision("authorize", actor, decision,
		"operation", string(operation),
		"resource_type", string(resource.Type),
		"resource_id", resource.ID,
	)
	return fromDecision(decision)
}

// RequireAdmin allows only members of the configured admin set.
func (u AuthorizeUseCase) RequireAdmin(actor authzv1.Actor) authzv1.Decision {
	decision := u.Policy.RequireAdmin(toActor(actor))
	u.logDecision("require_admin", actor, decision)
	return fromDecision(decision)
}

func (u AuthorizeUseCase) logDecision(check string, actor authzv1.Actor, decision entities.Decision, attrs ...any) {
	logger := application.ResolveLogger(u.Logger)
	base := []any{
		"module", "identity-access/authorization-service",
		"layer", "application",
		"check", check,
		"actor_id", actor.ID,
		"reason", string(decision.Reason),
	}
	base = append(base, attrs...)
	if decision.Allowed {
		logger.Debug("authorization allowed", append([]any{"event", "authz_decision_allowed"}, base...)...)
		return
	}
	logger.Warn("authorization denied", append([]any{"event", "authz_decision_denied"}, base...)...)
}

func toActor(actor authzv1.Actor) entities.Actor {
	return entities.Actor{ID: actor.ID, Username: actor.Username}
}

func fromDecision(decision entities.Decision) authzv1.Decision {
	return authzv1.Decision{
		Allowed: decision.Allowed,
		Reason:  authzv1.Reason(decision.Reason),
	}
}
