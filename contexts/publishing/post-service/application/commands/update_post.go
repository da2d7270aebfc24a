package commands

import (
	"context"
	"log/slog"

	application "scribe/contexts/publishing/post-service/application"
	"scribe/contexts/publishing/post-service/domain/entities"
	domainerrors "scribe/contexts/publishing/post-service/domain/errors"
	"scribe/contexts/publishing/post-service/domain/services"
	"scribe/contexts/publishing/post-service/ports"
	authzv1 "scribe/contracts/gen/authz/v1"
	eventsv1 "scribe/contracts/gen/events/v1"
)

type UpdatePostUseCase struct {
	Posts       ports.PostRepository
	Policy      ports.Authorizer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute applies a partial update in this order:
// 1) load the post
// 2) policy check against its author
// 3) validate and apply the patch
// 4) atomic row + outbox write.
func (u UpdatePostUseCase) Execute(ctx context.Context, actor authzv1.Actor, postID string, patch entities.PostPatch) (entities.Post, error) {
	logger := application.ResolveLogger(u.Logger)

	post, err := u.Posts.GetPost(ctx, postID)
	if err != nil {
		return entities.Post{}, err
	}

	decision := u.Policy.Authorize(actor, authzv1.OperationUpdate, authzv1.Resource{
		Type:    authzv1.ResourcePost,
		ID:      post.PostID,
		OwnerID: post.AuthorID,
	})
	if !decision.Allowed {
		logger.Warn("post update denied",
			"event", "post_update_denied",
			"module", "publishing/post-service",
			"layer", "application",
			"post_id", post.PostID,
			"actor_id", actor.ID,
			"reason", string(decision.Reason),
		)
		if decision.Reason == authzv1.ReasonUnauthenticated {
			return entities.Post{}, domainerrors.ErrUnauthenticated
		}
		return entities.Post{}, domainerrors.ErrUpdateForbidden
	}

	if err := services.ValidatePatch(patch); err != nil {
		return entities.Post{}, err
	}
	if patch.Tags != nil {
		tags := normalizeTags(*patch.Tags)
		patch.Tags = &tags
	}

	now := resolveNow(u.Clock)
	updated := post.Apply(patch, now)
	event, err := newPostEvent(ctx, u.IDGenerator, eventsv1.EventPostUpdated, updated, actor.ID, now)
	if err != nil {
		return entities.Post{}, err
	}
	if err := u.Posts.UpdatePostWithOutbox(ctx, updated, event); err != nil {
		logger.Error("update post failed",
			"event", "post_update_failed",
			"module", "publishing/post-service",
			"layer", "application",
			"post_id", post.PostID,
			"error", err.Error(),
		)
		return entities.Post{}, err
	}

	logger.Info("post updated",
		"event", "post_updated",
		"module", "publishing/post-service",
		"layer", "application",
		"post_id", updated.PostID,
		"actor_id", actor.ID,
		"reason", string(decision.Reason),
	)
	return updated, nil
}
