package httpadapter

import (
	"context"
	"log/slog"

	application "scribe/contexts/publishing/post-service/application"
	"scribe/contexts/publishing/post-service/application/commands"
	"scribe/contexts/publishing/post-service/application/queries"
	"scribe/contexts/publishing/post-service/domain/entities"
	httptransport "scribe/contexts/publishing/post-service/transport/http"
	authzv1 "scribe/contracts/gen/authz/v1"
)

const postDeletedMessage = "Post deleted successfully"

type Handler struct {
	CreatePost commands.CreatePostUseCase
	UpdatePost commands.UpdatePostUseCase
	DeletePost commands.DeletePostUseCase
	ListPosts  queries.ListPostsUseCase
	GetPost    queries.GetPostUseCase
	Logger     *slog.Logger
}

// ListPostsHandler godoc
// @Summary List all posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} httptransport.PostResponse
// @Router /posts [get]
func (h Handler) ListPostsHandler(ctx context.Context) ([]httptransport.PostResponse, error) {
	posts, err := h.ListPosts.Execute(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]httptransport.PostResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostResponse(post))
	}
	return items, nil
}

// GetPostHandler godoc
// @Summary Get a post by id
// @Tags posts
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} httptransport.PostResponse
// @Failure 404 {object} sanitize.ErrorPayload
// @Router /posts/{id} [get]
func (h Handler) GetPostHandler(ctx context.Context, postID string) (httptransport.PostResponse, error) {
	post, err := h.GetPost.Execute(ctx, postID)
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return toPostResponse(post), nil
}

// CreatePostHandler godoc
// @Summary Create a post as the authenticated user
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CreatePostRequest true "Post"
// @Success 201 {object} httptransport.PostResponse
// @Failure 400 {object} sanitize.ErrorPayload
// @Failure 401 {object} sanitize.ErrorPayload
// @Router /posts [post]
func (h Handler) CreatePostHandler(
	ctx context.Context,
	actor authzv1.Actor,
	req httptransport.CreatePostRequest,
) (httptransport.PostResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	logger.Info("create post request received",
		"event", "http_create_post_received",
		"module", "publishing/post-service",
		"layer", "transport",
		"actor_id", actor.ID,
	)

	post, err := h.CreatePost.Execute(ctx, actor, commands.CreatePostCommand{
		Title:   req.Title,
		Content: req.Content,
		Desc:    req.Desc,
		Tags:    req.Tags,
	})
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return toPostResponse(post), nil
}

// UpdatePostHandler godoc
// @Summary Partially update a post (author or admin)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param request body httptransport.UpdatePostRequest true "Fields to change"
// @Success 200 {object} httptransport.PostResponse
// @Failure 400 {object} sanitize.ErrorPayload
// @Failure 401 {object} sanitize.ErrorPayload
// @Failure 403 {object} sanitize.ErrorPayload
// @Failure 404 {object} sanitize.ErrorPayload
// @Router /posts/{id} [patch]
func (h Handler) UpdatePostHandler(
	ctx context.Context,
	actor authzv1.Actor,
	postID string,
	req httptransport.UpdatePostRequest,
) (httptransport.PostResponse, error) {
	post, err := h.UpdatePost.Execute(ctx, actor, postID, entities.PostPatch{
		Title:   req.Title,
		Content: req.Content,
		Desc:    req.Desc,
		Tags:    req.Tags,
	})
	if err != nil {
		return httptransport.PostResponse{}, err
	}
	return toPostResponse(post), nil
}

// DeletePostHandler godoc
// @Summary Delete a post (author or admin)
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Success 200 {object} httptransport.MessageResponse
// @Failure 401 {object} sanitize.ErrorPayload
// @Failure 403 {object} sanitize.ErrorPayload
// @Failure 404 {object} sanitize.ErrorPayload
// @Router /posts/{id} [delete]
func (h Handler) DeletePostHandler(ctx context.Context, actor authzv1.Actor, postID string) (httptransport.MessageResponse, error) {
	if err := h.DeletePost.Execute(ctx, actor, postID); err != nil {
		return httptransport.MessageResponse{}, err
	}
	return httptransport.MessageResponse{Message: postDeletedMessage}, nil
}

func toPostResponse(post entities.Post) httptransport.PostResponse {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}
	return httptransport.PostResponse{
		ID:       post.PostID,
		Title:    post.Title,
		Content:  post.Content,
		Desc:     post.Desc,
		Tags:     tags,
		AuthorID: post.AuthorID,
		Author: httptransport.AuthorResponse{
			ID:       post.AuthorID,
			Username: post.AuthorUsername,
		},
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
