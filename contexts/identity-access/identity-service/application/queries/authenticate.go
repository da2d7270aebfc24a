package queries

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "scribe/contexts/identity-access/identity-service/application"
	domainerrors "scribe/contexts/identity-access/identity-service/domain/errors"
	"scribe/contexts/identity-access/identity-service/ports"
	authzv1 "scribe/contracts/gen/authz/v1"
)

type AuthenticateUseCase struct {
	Users  ports.UserRepository
	Tokens ports.TokenService
	Logger *slog.Logger
}

// Execute resolves a bearer token to the actor it was issued for. Tokens of
// deleted accounts are rejected.
func (u AuthenticateUseCase) Execute(ctx context.Context, token string) (authzv1.Actor, error) {
	logger := application.ResolveLogger(u.Logger)
	if strings.TrimSpace(token) == "" {
		return authzv1.Actor{}, domainerrors.ErrMissingToken
	}

	claims, err := u.Tokens.Verify(token)
	if err != nil {
		logger.Warn("token verification failed",
			"event", "identity_token_rejected",
			"module", "identity-access/identity-service",
			"layer", "application",
			"error", err.Error(),
		)
		return authzv1.Actor{}, domainerrors.ErrInvalidToken
	}
	if claims.Subject == "" {
		return authzv1.Actor{}, domainerrors.ErrInvalidTokenPayload
	}

	user, err := u.Users.GetUser(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			logger.Warn("token subject no longer exists",
				"event", "identity_token_subject_missing",
				"module", "identity-access/identity-service",
				"layer", "application",
				"user_id", claims.Subject,
			)
			return authzv1.Actor{}, domainerrors.ErrInvalidToken
		}
		return authzv1.Actor{}, err
	}
	return authzv1.Actor{ID: user.UserID, Username: user.Username}, nil
}
