package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	identity "scribe/contexts/identity-access/identity-service"
	postservice "scribe/contexts/publishing/post-service"
	authzv1 "scribe/contracts/gen/authz/v1"
	_ "scribe/internal/platform/httpserver/docs"
	"scribe/internal/platform/validation"
)

type Options struct {
	Addr               string
	RateLimitPerMinute int
	EnableSwagger      bool
	// Now overrides the clock used for error timestamps and rate limiting.
	Now func() time.Time
}

type Server struct {
	mux      *http.ServeMux
	handler  http.Handler
	logger   *slog.Logger
	addr     string
	identity identity.Module
	posts    postservice.Module
	limiter  *clientLimiter
	swagger  bool
	now      func() time.Time
}

func New(
	identityModule identity.Module,
	postsModule postservice.Module,
	logger *slog.Logger,
	opts Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Addr == "" {
		opts.Addr = ":3000"
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	s := &Server{
		mux:      http.NewServeMux(),
		logger:   logger,
		addr:     opts.Addr,
		identity: identityModule,
		posts:    postsModule,
		limiter:  newClientLimiter(opts.RateLimitPerMinute),
		swagger:  opts.EnableSwagger,
		now:      opts.Now,
	}
	s.registerRoutes()
	s.handler = s.withRecovery(s.withRequestLogging(s.withRateLimit(s.mux)))
	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("http server stopped",
		"event", "http_server_stopped",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return nil
}

func (s *Server) registerRoutes() {
	if s.swagger {
		s.mux.Handle("GET /swagger/", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.mux.HandleFunc("POST /auth/register", s.handleRegister)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)

	s.mux.HandleFunc("GET /posts", s.handleListPosts)
	s.mux.HandleFunc("GET /posts/{id}", s.handleGetPost)
	s.mux.HandleFunc("POST /posts", s.requireActor(s.handleCreatePost))
	s.mux.HandleFunc("PATCH /posts/{id}", s.requireActor(s.handleUpdatePost))
	s.mux.HandleFunc("DELETE /posts/{id}", s.requireActor(s.handleDeletePost))

	s.mux.HandleFunc("GET /users", s.requireActor(s.handleListUsers))
	s.mux.HandleFunc("GET /users/{id}", s.requireActor(s.handleGetUser))
	s.mux.HandleFunc("DELETE /users/{id}", s.requireActor(s.handleDeleteUser))

	s.mux.HandleFunc("/", s.handleNotFound)
}

type actorHandlerFunc func(w http.ResponseWriter, r *http.Request, actor authzv1.Actor)

// requireActor resolves the bearer token into an actor before calling next.
func (s *Server) requireActor(next actorHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			s.writeFailure(w, r, http.StatusUnauthorized, rawUnauthorized)
			return
		}
		actor, err := s.identity.Handler.AuthenticateHandler(r.Context(), token)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next(w, r, actor)
	}
}

// decodeJSON decodes and validates the body into dst, writing the failure
// response itself when it returns false.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := validation.DecodeJSON(r.Body, dst); err != nil {
		s.writeError(w, r, err)
		return false
	}
	return true
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeFailure(w, r, http.StatusNotFound, "Cannot "+r.Method+" "+r.URL.Path)
}
