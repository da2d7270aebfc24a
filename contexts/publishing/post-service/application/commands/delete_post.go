package commands

import (
	"context"
	"log/slog"

	application "scribe/contexts/publishing/post-service/application"
	domainerrors "scribe/contexts/publishing/post-service/domain/errors"
	"scribe/contexts/publishing/post-service/ports"
	authzv1 "scribe/contracts/gen/authz/v1"
	eventsv1 "scribe/contracts/gen/events/v1"
)

type DeletePostUseCase struct {
	Posts       ports.PostRepository
	Policy      ports.Authorizer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u DeletePostUseCase) Execute(ctx context.Context, actor authzv1.Actor, postID string) error {
	logger := application.ResolveLogger(u.Logger)

	post, err := u.Posts.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	decision := u.Policy.Authorize(actor, authzv1.OperationDelete, authzv1.Resource{
		Type:    authzv1.ResourcePost,
		ID:      post.PostID,
		OwnerID: post.AuthorID,
	})
	if !decision.Allowed {
		logger.Warn("post delete denied",
			"event", "post_delete_denied",
			"module", "publishing/post-service",
			"layer", "application",
			"post_id", post.PostID,
			"actor_id", actor.ID,
			"reason", string(decision.Reason),
		)
		if decision.Reason == authzv1.ReasonUnauthenticated {
			return domainerrors.ErrUnauthenticated
		}
		return domainerrors.ErrDeleteForbidden
	}

	event, err := newPostEvent(ctx, u.IDGenerator, eventsv1.EventPostDeleted, post, actor.ID, resolveNow(u.Clock))
	if err != nil {
		return err
	}
	if err := u.Posts.DeletePostWithOutbox(ctx, post.PostID, event); err != nil {
		logger.Error("delete post failed",
			"event", "post_delete_failed",
			"module", "publishing/post-service",
			"layer", "application",
			"post_id", post.PostID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("post deleted",
		"event", "post_deleted",
		"module", "publishing/post-service",
		"layer", "application",
		"post_id", post.PostID,
		"actor_id", actor.ID,
		"reason", string(decision.Reason),
	)
	return nil
}
