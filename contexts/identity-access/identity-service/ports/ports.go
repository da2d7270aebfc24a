package ports

import (
	"context"
	"time"

	"scribe/contexts/identity-access/identity-service/domain/entities"
	authzv1 "scribe/contracts/gen/authz/v1"
)

// UserRepository owns account persistence. Username uniqueness is enforced by
// storage; a violating insert returns an error wrapping ErrConflict.
type UserRepository interface {
	GetUserByUsername(ctx context.Context, username string) (entities.User, error)
	GetUser(ctx context.Context, userID string) (entities.User, error)
	CreateUser(ctx context.Context, user entities.User) error
	ListUsers(ctx context.Context) ([]entities.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	Issue(claims entities.TokenClaims) (string, error)
	Verify(token string) (entities.TokenClaims, error)
}

// AccessPolicy is satisfied by the authorization policy engine.
type AccessPolicy interface {
	Authorize(actor authzv1.Actor, operation authzv1.Operation, resource authzv1.Resource) authzv1.Decision
	RequireAdmin(actor authzv1.Actor) authzv1.Decision
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
