package identity

import (
	"log/slog"
	"time"

	httpadapter "scribe/contexts/identity-access/identity-service/adapters/http"
	"scribe/contexts/identity-access/identity-service/adapters/memory"
	"scribe/contexts/identity-access/identity-service/adapters/security"
	"scribe/contexts/identity-access/identity-service/application/commands"
	"scribe/contexts/identity-access/identity-service/application/queries"
	"scribe/contexts/identity-access/identity-service/ports"
)

// Module is the identity-service composition surface.
// Runtime wiring should consume Handler; Store is exposed for tests/inspection.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Users       ports.UserRepository
	Hasher      ports.PasswordHasher
	Tokens      ports.TokenService
	Policy      ports.AccessPolicy
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	TokenTTL    time.Duration
	Logger      *slog.Logger
}

// NewModule wires identity use cases against explicit ports.
func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		Register: commands.RegisterUseCase{
			Users:       deps.Users,
			Hasher:      deps.Hasher,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		Login: commands.LoginUseCase{
			Users:    deps.Users,
			Hasher:   deps.Hasher,
			Tokens:   deps.Tokens,
			Clock:    deps.Clock,
			TokenTTL: deps.TokenTTL,
			Logger:   deps.Logger,
		},
		DeleteUser: commands.DeleteUserUseCase{
			Users:  deps.Users,
			Policy: deps.Policy,
			Logger: deps.Logger,
		},
		Authenticate: queries.AuthenticateUseCase{
			Users:  deps.Users,
			Tokens: deps.Tokens,
			Logger: deps.Logger,
		},
		ListUsers: queries.ListUsersUseCase{
			Users:  deps.Users,
			Policy: deps.Policy,
			Logger: deps.Logger,
		},
		GetUser: queries.GetUserUseCase{
			Users:  deps.Users,
			Policy: deps.Policy,
			Logger: deps.Logger,
		},
		Logger: deps.Logger,
	}
	return Module{Handler: handler}
}

// NewInMemoryModule wires identity use cases against the in-memory store.
// Bcrypt runs at its minimum cost so tests stay fast.
func NewInMemoryModule(policy ports.AccessPolicy, jwtSecret string, logger *slog.Logger) (Module, error) {
	tokens, err := security.NewJWTService(jwtSecret)
	if err != nil {
		return Module{}, err
	}
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Users:       store,
		Hasher:      security.BcryptHasher{Cost: 4},
		Tokens:      tokens,
		Policy:      policy,
		Clock:       store,
		IDGenerator: store,
		TokenTTL:    24 * time.Hour,
		Logger:      logger,
	})
	module.Store = store
	return module, nil
}
