package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	application "scribe/contexts/identity-access/identity-service/application"
	"scribe/contexts/identity-access/identity-service/domain/entities"
	domainerrors "scribe/contexts/identity-access/identity-service/domain/errors"
	"scribe/contexts/identity-access/identity-service/ports"
)

const defaultTokenTTL = 24 * time.Hour

type LoginCommand struct {
	Username string
	Password string
}

type LoginUseCase struct {
	Users    ports.UserRepository
	Hasher   ports.PasswordHasher
	Tokens   ports.TokenService
	Clock    ports.Clock
	TokenTTL time.Duration
	Logger   *slog.Logger
}

// Execute verifies credentials and issues an access token. Unknown users and
// wrong passwords fail identically.
func (u LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (entities.AccessToken, error) {
	logger := application.ResolveLogger(u.Logger)

	user, err := u.Users.GetUserByUsername(ctx, cmd.Username)
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			logger.Warn("login rejected",
				"event", "identity_login_rejected",
				"module", "identity-access/identity-service",
				"layer", "application",
				"cause", "unknown_user",
			)
			return entities.AccessToken{}, domainerrors.ErrInvalidCredentials
		}
		return entities.AccessToken{}, err
	}
	if !u.Hasher.Verify(user.PasswordHash, cmd.Password) {
		logger.Warn("login rejected",
			"event", "identity_login_rejected",
			"module", "identity-access/identity-service",
			"layer", "application",
			"cause", "password_mismatch",
			"user_id", user.UserID,
		)
		return entities.AccessToken{}, domainerrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if u.Clock != nil {
		now = u.Clock.Now().UTC()
	}
	ttl := u.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	claims := entities.TokenClaims{
		Subject:   user.UserID,
		Username:  user.Username,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	token, err := u.Tokens.Issue(claims)
	if err != nil {
		return entities.AccessToken{}, err
	}

	logger.Info("login succeeded",
		"event", "identity_login_succeeded",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return entities.AccessToken{Token: token, ExpiresAt: claims.ExpiresAt}, nil
}
