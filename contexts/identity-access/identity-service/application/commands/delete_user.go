package commands

import (
	"context"
	"log/slog"

	application "scribe/contexts/identity-access/identity-service/application"
	domainerrors "scribe/contexts/identity-access/identity-service/domain/errors"
	"scribe/contexts/identity-access/identity-service/ports"
	authzv1 "scribe/contracts/gen/authz/v1"
)

type DeleteUserUseCase struct {
	Users  ports.UserRepository
	Policy ports.AccessPolicy
	Logger *slog.Logger
}

// Execute removes an account. Only the account itself or an admin may do so.
func (u DeleteUserUseCase) Execute(ctx context.Context, actor authzv1.Actor, userID string) error {
	logger := application.ResolveLogger(u.Logger)

	decision := u.Policy.Authorize(actor, authzv1.OperationDelete, authzv1.Resource{
		Type:    authzv1.ResourceUser,
		ID:      userID,
		OwnerID: userID,
	})
	if !decision.Allowed {
		return domainerrors.ErrNotSelf
	}

	if _, err := u.Users.GetUser(ctx, userID); err != nil {
		return err
	}
	if err := u.Users.DeleteUser(ctx, userID); err != nil {
		logger.Error("user delete failed",
			"event", "identity_user_delete_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"user_id", userID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("user deleted",
		"event", "identity_user_deleted",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", userID,
		"actor_id", actor.ID,
		"reason", string(decision.Reason),
	)
	return nil
}
