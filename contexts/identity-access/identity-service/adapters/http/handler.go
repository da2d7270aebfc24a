package httpadapter

import (
	"context"
	"log/slog"

	application "scribe/contexts/identity-access/identity-service/application"
	"scribe/contexts/identity-access/identity-service/application/commands"
	"scribe/contexts/identity-access/identity-service/application/queries"
	"scribe/contexts/identity-access/identity-service/domain/entities"
	httptransport "scribe/contexts/identity-access/identity-service/transport/http"
	authzv1 "scribe/contracts/gen/authz/v1"
)

const (
	registeredMessage  = "User registered successfully"
	userDeletedMessage = "User deleted successfully"
)

type Handler struct {
	Register     commands.RegisterUseCase
	Login        commands.LoginUseCase
	DeleteUser   commands.DeleteUserUseCase
	Authenticate queries.AuthenticateUseCase
	ListUsers    queries.ListUsersUseCase
	GetUser      queries.GetUserUseCase
	Logger       *slog.Logger
}

// RegisterHandler godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body httptransport.RegisterRequest true "Registration"
// @Success 201 {object} httptransport.RegisterResponse
// @Failure 400 {object} sanitize.ErrorPayload
// @Failure 409 {object} sanitize.ErrorPayload
// @Router /auth/register [post]
func (h Handler) RegisterHandler(ctx context.Context, req httptransport.RegisterRequest) (httptransport.RegisterResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("register request received",
		"event", "http_register_received",
		"module", "identity-access/identity-service",
		"layer", "transport",
	)

	if _, err := h.Register.Execute(ctx, commands.RegisterCommand{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return httptransport.RegisterResponse{}, err
	}
	return httptransport.RegisterResponse{Message: registeredMessage}, nil
}

// LoginHandler godoc
// @Summary Exchange credentials for an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body httptransport.LoginRequest true "Credentials"
// @Success 200 {object} httptransport.LoginResponse
// @Failure 400 {object} sanitize.ErrorPayload
// @Failure 401 {object} sanitize.ErrorPayload
// @Router /auth/login [post]
func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	token, err := h.Login.Execute(ctx, commands.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	return httptransport.LoginResponse{AccessToken: token.Token}, nil
}

// AuthenticateHandler resolves a bearer token for the HTTP middleware.
func (h Handler) AuthenticateHandler(ctx context.Context, token string) (authzv1.Actor, error) {
	return h.Authenticate.Execute(ctx, token)
}

// ListUsersHandler godoc
// @Summary List all users (admin only)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} httptransport.UserResponse
// @Failure 401 {object} sanitize.ErrorPayload
// @Failure 403 {object} sanitize.ErrorPayload
// @Router /users [get]
func (h Handler) ListUsersHandler(ctx context.Context, actor authzv1.Actor) ([]httptransport.UserResponse, error) {
	users, err := h.ListUsers.Execute(ctx, actor)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, toUserResponse(user))
	}
	return items, nil
}

// GetUserHandler godoc
// @Summary Get a user by id (self or admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} httptransport.UserResponse
// @Failure 401 {object} sanitize.ErrorPayload
// @Failure 403 {object} sanitize.ErrorPayload
// @Failure 404 {object} sanitize.ErrorPayload
// @Router /users/{id} [get]
func (h Handler) GetUserHandler(ctx context.Context, actor authzv1.Actor, userID string) (httptransport.UserResponse, error) {
	user, err := h.GetUser.Execute(ctx, actor, userID)
	if err != nil {
		return httptransport.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

// DeleteUserHandler godoc
// @Summary Delete a user (self or admin)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User id"
// @Success 200 {object} httptransport.MessageResponse
// @Failure 401 {object} sanitize.ErrorPayload
// @Failure 403 {object} sanitize.ErrorPayload
// @Failure 404 {object} sanitize.ErrorPayload
// @Router /users/{id} [delete]
func (h Handler) DeleteUserHandler(ctx context.Context, actor authzv1.Actor, userID string) (httptransport.MessageResponse, error) {
	if err := h.DeleteUser.Execute(ctx, actor, userID); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: userDeletedMessage}, nil
}

func toUserResponse(user entities.User) httptransport.UserResponse {
	return httptransport.UserResponse{
		ID:        user.UserID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
