package queries

import (
	"context"
	"strings"

	"scribe/contexts/publishing/post-service/domain/entities"
	domainerrors "scribe/contexts/publishing/post-service/domain/errors"
	"scribe/contexts/publishing/post-service/ports"
)

type GetPostUseCase struct {
	Posts ports.PostRepository
}

func (u GetPostUseCase) Execute(ctx context.Context, postID string) (entities.Post, error) {
	if strings.TrimSpace(postID) == "" {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return u.Posts.GetPost(ctx, postID)
}
