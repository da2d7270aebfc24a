package authorization

import (
	"log/slog"

	"scribe/contexts/identity-access/authorization-service/application/queries"
	"scribe/contexts/identity-access/authorization-service/domain/services"
)

// Module is the authorization-service composition root exposed to runtime wiring.
type Module struct {
	Authorizer queries.AuthorizeUseCase
}

// Dependencies captures the runtime configuration required by NewModule.
type Dependencies struct {
	AdminUsernames []string
	Logger         *slog.Logger
}

// NewModule wires the policy engine behind the contract-facing use case.
func NewModule(deps Dependencies) Module {
	return Module{
		Authorizer: queries.AuthorizeUseCase{
			Policy: services.NewPolicyEngine(deps.AdminUsernames),
			Logger: deps.Logger,
		},
	}
}
