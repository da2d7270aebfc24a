package commands

import (
	"context"
	"log/slog"
	"strings"

	application "scribe/contexts/publishing/post-service/application"
	"scribe/contexts/publishing/post-service/domain/entities"
	domainerrors "scribe/contexts/publishing/post-service/domain/errors"
	"scribe/contexts/publishing/post-service/domain/services"
	"scribe/contexts/publishing/post-service/ports"
	authzv1 "scribe/contracts/gen/authz/v1"
	eventsv1 "scribe/contracts/gen/events/v1"
)

type CreatePostCommand struct {
	Title   string
	Content string
	Desc    string
	Tags    []string
}

type CreatePostUseCase struct {
	Posts       ports.PostRepository
	Policy      ports.Authorizer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute stores a new post authored by the actor.
func (u CreatePostUseCase) Execute(ctx context.Context, actor authzv1.Actor, cmd CreatePostCommand) (entities.Post, error) {
	logger := application.ResolveLogger(u.Logger)

	decision := u.Policy.Authorize(actor, authzv1.OperationCreate, authzv1.Resource{Type: authzv1.ResourcePost})
	if !decision.Allowed {
		return entities.Post{}, domainerrors.ErrUnauthenticated
	}

	now := resolveNow(u.Clock)
	postID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Post{}, err
	}
	post := entities.Post{
		PostID:         postID,
		Title:          cmd.Title,
		Content:        cmd.Content,
		Desc:           strings.TrimSpace(cmd.Desc),
		Tags:           normalizeTags(cmd.Tags),
		AuthorID:       actor.ID,
		AuthorUsername: actor.Username,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := services.ValidatePost(post); err != nil {
		return entities.Post{}, err
	}

	event, err := newPostEvent(ctx, u.IDGenerator, eventsv1.EventPostCreated, post, actor.ID, now)
	if err != nil {
		return entities.Post{}, err
	}
	if err := u.Posts.CreatePostWithOutbox(ctx, post, event); err != nil {
		logger.Error("create post failed",
			"event", "post_create_failed",
			"module", "publishing/post-service",
			"layer", "application",
			"actor_id", actor.ID,
			"error", err.Error(),
		)
		return entities.Post{}, err
	}

	logger.Info("post created",
		"event", "post_created",
		"module", "publishing/post-service",
		"layer", "application",
		"post_id", post.PostID,
		"author_id", post.AuthorID,
	)
	return post, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
