package queries

import (
	"context"
	"log/slog"

	"scribe/contexts/identity-access/identity-service/domain/entities"
	domainerrors "scribe/contexts/identity-access/identity-service/domain/errors"
	"scribe/contexts/identity-access/identity-service/ports"
	authzv1 "scribe/contracts/gen/authz/v1"
)

type GetUserUseCase struct {
	Users  ports.UserRepository
	Policy ports.AccessPolicy
	Logger *slog.Logger
}

// Execute returns one account to itself or to an admin. The access check runs
// before the lookup so foreign ids do not leak existence.
func (u GetUserUseCase) Execute(ctx context.Context, actor authzv1.Actor, userID string) (entities.User, error) {
	decision := u.Policy.Authorize(actor, authzv1.OperationRead, authzv1.Resource{
		Type:    authzv1.ResourceUser,
		ID:      userID,
		OwnerID: userID,
	})
	if !decision.Allowed {
		return entities.User{}, domainerrors.ErrNotSelf
	}
	return u.Users.GetUser(ctx, userID)
}
