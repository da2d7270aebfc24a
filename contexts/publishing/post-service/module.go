package postservice

import (
	"log/slog"

	httpadapter "scribe/contexts/publishing/post-service/adapters/http"
	"scribe/contexts/publishing/post-service/adapters/memory"
	"scribe/contexts/publishing/post-service/application/commands"
	"scribe/contexts/publishing/post-service/application/queries"
	"scribe/contexts/publishing/post-service/application/workers"
	"scribe/contexts/publishing/post-service/ports"
)

// Module is the post-service composition surface.
// Runtime wiring should consume Handler; Store is exposed for tests/inspection.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Posts       ports.PostRepository
	Policy      ports.Authorizer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	handler := httpadapter.Handler{
		CreatePost: commands.CreatePostUseCase{
			Posts:       deps.Posts,
			Policy:      deps.Policy,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		UpdatePost: commands.UpdatePostUseCase{
			Posts:       deps.Posts,
			Policy:      deps.Policy,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		DeletePost: commands.DeletePostUseCase{
			Posts:       deps.Posts,
			Policy:      deps.Policy,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
		ListPosts: queries.ListPostsUseCase{Posts: deps.Posts},
		GetPost:   queries.GetPostUseCase{Posts: deps.Posts},
		Logger:    deps.Logger,
	}
	return Module{Handler: handler}
}

func NewInMemoryModule(policy ports.Authorizer, logger *slog.Logger) Module {
	store := memory.NewStore(logger)
	module := NewModule(Dependencies{
		Posts:       store,
		Policy:      policy,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

type WorkerDependencies struct {
	Outbox     ports.OutboxRepository
	Publisher  ports.EventPublisher
	Subscriber ports.EventSubscriber
	Clock      ports.Clock
	Topic      string
	Logger     *slog.Logger
}

// Workers groups the background processes of the post service.
type Workers struct {
	Relay   workers.OutboxRelay
	Auditor workers.PostEventAuditor
}

func NewWorkers(deps WorkerDependencies) Workers {
	return Workers{
		Relay: workers.OutboxRelay{
			Outbox:    deps.Outbox,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Topic:     deps.Topic,
			Logger:    deps.Logger,
		},
		Auditor: workers.PostEventAuditor{
			Subscriber: deps.Subscriber,
			Topic:      deps.Topic,
			Logger:     deps.Logger,
		},
	}
}
