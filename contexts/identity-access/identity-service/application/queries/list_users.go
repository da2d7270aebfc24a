package queries

import (
	"context"
	"log/slog"

	application "scribe/contexts/identity-access/identity-service/application"
	"scribe/contexts/identity-access/identity-service/domain/entities"
	domainerrors "scribe/contexts/identity-access/identity-service/domain/errors"
	"scribe/contexts/identity-access/identity-service/ports"
	authzv1 "scribe/contracts/gen/authz/v1"
)

type ListUsersUseCase struct {
	Users  ports.UserRepository
	Policy ports.AccessPolicy
	Logger *slog.Logger
}

func (u ListUsersUseCase) Execute(ctx context.Context, actor authzv1.Actor) ([]entities.User, error) {
	logger := application.ResolveLogger(u.Logger)
	if decision := u.Policy.RequireAdmin(actor); !decision.Allowed {
		return nil, domainerrors.ErrAdminRequired
	}

	users, err := u.Users.ListUsers(ctx)
	if err != nil {
		logger.Error("list users failed",
			"event", "identity_list_users_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil, err
	}
	return users, nil
}
