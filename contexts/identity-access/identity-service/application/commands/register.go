package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "scribe/contexts/identity-access/identity-service/application"
	"scribe/contexts/identity-access/identity-service/domain/entities"
	domainerrors "scribe/contexts/identity-access/identity-service/domain/errors"
	"scribe/contexts/identity-access/identity-service/domain/services"
	"scribe/contexts/identity-access/identity-service/ports"
)

type RegisterCommand struct {
	Username        string
	Password        string
	ConfirmPassword string
}

type RegisterUseCase struct {
	Users       ports.UserRepository
	Hasher      ports.PasswordHasher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute creates a new account. The existence pre-check gives the common
// case a clean error; concurrent registrations are settled by the storage
// uniqueness constraint.
func (u RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (entities.User, error) {
	logger := application.ResolveLogger(u.Logger)
	username := strings.TrimSpace(cmd.Username)
	if err := services.ValidateRegistration(username, cmd.Password, cmd.ConfirmPassword); err != nil {
		return entities.User{}, err
	}
	return u.create(ctx, logger, username, cmd.Password)
}

// Provision creates an account unless one with the same username exists. It
// skips the username charset rule so operator accounts such as dev-admin can
// be bootstrapped.
func (u RegisterUseCase) Provision(ctx context.Context, username string, password string) (entities.User, bool, error) {
	logger := application.ResolveLogger(u.Logger)
	username = strings.TrimSpace(username)
	if username == "" {
		return entities.User{}, false, domainerrors.ErrInvalidUsername
	}
	if err := services.ValidatePassword(password); err != nil {
		return entities.User{}, false, err
	}

	existing, err := u.Users.GetUserByUsername(ctx, username)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domainerrors.ErrUserNotFound) {
		return entities.User{}, false, err
	}
	user, err := u.create(ctx, logger, username, password)
	if err != nil {
		return entities.User{}, false, err
	}
	return user, true, nil
}

func (u RegisterUseCase) create(ctx context.Context, logger *slog.Logger, username string, password string) (entities.User, error) {
	_, err := u.Users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		logger.Warn("registration rejected for existing username",
			"event", "identity_register_username_taken",
			"module", "identity-access/identity-service",
			"layer", "application",
		)
		return entities.User{}, domainerrors.ErrUsernameTaken
	case !errors.Is(err, domainerrors.ErrUserNotFound):
		return entities.User{}, err
	}

	hash, err := u.Hasher.Hash(password)
	if err != nil {
		return entities.User{}, err
	}
	userID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.User{}, err
	}
	now := u.now()
	user := entities.User{
		UserID:       userID,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.Users.CreateUser(ctx, user); err != nil {
		logger.Error("user insert failed",
			"event", "identity_register_insert_failed",
			"module", "identity-access/identity-service",
			"layer", "application",
			"error", err.Error(),
		)
		return entities.User{}, err
	}

	logger.Info("user registered",
		"event", "identity_user_registered",
		"module", "identity-access/identity-service",
		"layer", "application",
		"user_id", user.UserID,
	)
	return user, nil
}

func (u RegisterUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
